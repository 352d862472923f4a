package memory_map

import (
	"fmt"
	"strings"
	"unicode"
)

// MemoryRegion is one line of /proc/<pid>/maps.
type MemoryRegion struct {
	Start  uint64
	End    uint64
	Perms  Permissions
	Offset uint64
	Device Device
	Inode  uint64
	// Path is nil when the header line had no trailing field.
	Path *PathType
}

// Size returns End-Start, or 0 for a malformed range where End <= Start.
func (r MemoryRegion) Size() uint64 {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// Contains reports whether addr falls within [Start, End).
func (r MemoryRegion) Contains(addr uint64) bool {
	return addr >= r.Start && addr < r.End
}

// PathType returns the classified path, Anonymous when none was given.
func (r MemoryRegion) PathType() PathType {
	if r.Path == nil {
		return PathType{Kind: KindAnonymous}
	}
	return *r.Path
}

func (r MemoryRegion) String() string {
	path := ""
	if r.Path != nil {
		path = r.Path.String()
	}
	return fmt.Sprintf("%012x-%012x %s %8x %10s %s %8d %s",
		r.Start, r.End, r.Perms, r.Offset, FormatSize(r.Size()), r.Device, r.Inode, path)
}

// IsHeaderLine reports whether line starts a new region: its first byte is
// an ASCII hex digit and its first token is not a "Key:" of a detail line.
// smaps has keys such as "Anonymous:" that begin with a hex letter.
func IsHeaderLine(line string) bool {
	if line == "" || !isHexDigit(line[0]) {
		return false
	}
	tok, _ := nextField(line)
	return !strings.HasSuffix(tok, ":")
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// ParseRegion parses a header line of the form
//
//	start-end perms offset major:minor inode [path]
//
// The path is whatever follows the inode, trimmed, and may contain spaces.
func ParseRegion(line string) (MemoryRegion, error) {
	var region MemoryRegion
	rest := line

	var tok string
	if tok, rest = nextField(rest); tok == "" {
		return region, missingField("address range")
	}
	start, end, err := ParseAddressRange(tok)
	if err != nil {
		return region, err
	}
	region.Start, region.End = start, end

	if tok, rest = nextField(rest); tok == "" {
		return region, missingField("permissions")
	}
	if region.Perms, err = ParsePermissions(tok); err != nil {
		return region, err
	}

	if tok, rest = nextField(rest); tok == "" {
		return region, missingField("offset")
	}
	if region.Offset, err = parseOffset(tok); err != nil {
		return region, err
	}

	if tok, rest = nextField(rest); tok == "" {
		return region, missingField("device")
	}
	if region.Device, err = ParseDevice(tok); err != nil {
		return region, err
	}

	if tok, rest = nextField(rest); tok == "" {
		return region, missingField("inode")
	}
	if region.Inode, err = parseInode(tok); err != nil {
		return region, err
	}

	if rest != "" {
		path := ClassifyPath(strings.TrimSpace(rest))
		region.Path = &path
	}

	return region, nil
}

// nextField skips leading whitespace and returns the next token along with
// the unconsumed remainder, which starts at the separating whitespace.
func nextField(s string) (string, string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if s == "" {
		return "", ""
	}
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}

// FormatSize renders a byte count with a binary unit, e.g. "1.5 MiB".
func FormatSize(bytes uint64) string {
	const (
		KiB = 1024
		MiB = 1024 * KiB
		GiB = 1024 * MiB
	)

	switch {
	case bytes >= GiB:
		return fmt.Sprintf("%.1f GiB", float64(bytes)/GiB)
	case bytes >= MiB:
		return fmt.Sprintf("%.1f MiB", float64(bytes)/MiB)
	case bytes >= KiB:
		return fmt.Sprintf("%.1f KiB", float64(bytes)/KiB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
