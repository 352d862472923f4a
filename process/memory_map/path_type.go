package memory_map

import "strings"

// PathKind enumerates what backs a mapping.
type PathKind int

const (
	KindAnonymous PathKind = iota
	KindFile
	KindDeleted
	KindHeap
	KindStack
	KindVdso
	KindVvar
	KindVsyscall
)

const (
	anonymousLabel = "[anonymous]"
	deletedSuffix  = " (deleted)"
)

var pseudoTokens = map[string]PathKind{
	"[heap]":     KindHeap,
	"[stack]":    KindStack,
	"[vdso]":     KindVdso,
	"[vvar]":     KindVvar,
	"[vsyscall]": KindVsyscall,
}

func (k PathKind) String() string {
	switch k {
	case KindAnonymous:
		return "anonymous"
	case KindFile:
		return "file"
	case KindDeleted:
		return "deleted"
	case KindHeap:
		return "heap"
	case KindStack:
		return "stack"
	case KindVdso:
		return "vdso"
	case KindVvar:
		return "vvar"
	case KindVsyscall:
		return "vsyscall"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name in reports.
func (k PathKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// PathType is the classified pathname field of a mapping. Path is only set
// for KindFile and KindDeleted.
type PathType struct {
	Kind PathKind
	Path string
}

// ClassifyPath maps the trailing field of a header line onto a PathType.
// It never fails: anything unrecognised and non-empty is a file.
func ClassifyPath(s string) PathType {
	if s == "" {
		return PathType{Kind: KindAnonymous}
	}
	if kind, ok := pseudoTokens[s]; ok {
		return PathType{Kind: kind}
	}
	if strings.HasSuffix(s, deletedSuffix) {
		return PathType{Kind: KindDeleted, Path: strings.TrimSuffix(s, deletedSuffix)}
	}
	return PathType{Kind: KindFile, Path: s}
}

// Label is the grouping key used when aggregating. A deleted file shares
// its label with the live file of the same path.
func (p PathType) Label() string {
	switch p.Kind {
	case KindFile, KindDeleted:
		return p.Path
	case KindAnonymous:
		return anonymousLabel
	default:
		return "[" + p.Kind.String() + "]"
	}
}

func (p PathType) String() string {
	if p.Kind == KindDeleted {
		return p.Path + deletedSuffix
	}
	return p.Label()
}

// IsPseudo reports whether the mapping is one of the kernel special regions.
func (p PathType) IsPseudo() bool {
	switch p.Kind {
	case KindHeap, KindStack, KindVdso, KindVvar, KindVsyscall:
		return true
	}
	return false
}
