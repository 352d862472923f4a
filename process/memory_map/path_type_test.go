package memory_map

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPath(t *testing.T) {
	tests := []struct {
		input string
		want  PathType
	}{
		{"", PathType{Kind: KindAnonymous}},
		{"[heap]", PathType{Kind: KindHeap}},
		{"[stack]", PathType{Kind: KindStack}},
		{"[vdso]", PathType{Kind: KindVdso}},
		{"[vvar]", PathType{Kind: KindVvar}},
		{"[vsyscall]", PathType{Kind: KindVsyscall}},
		{"/usr/lib/libc.so.6", PathType{Kind: KindFile, Path: "/usr/lib/libc.so.6"}},
		{"/tmp/old.so (deleted)", PathType{Kind: KindDeleted, Path: "/tmp/old.so"}},
		{"/home/me/My Documents/a.bin", PathType{Kind: KindFile, Path: "/home/me/My Documents/a.bin"}},
		{"[vectors]", PathType{Kind: KindFile, Path: "[vectors]"}},
		{"[anon:scudo:primary]", PathType{Kind: KindFile, Path: "[anon:scudo:primary]"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyPath(tt.input))
		})
	}
}

func TestPathType_Label(t *testing.T) {
	assert.Equal(t, "[anonymous]", ClassifyPath("").Label())
	assert.Equal(t, "[heap]", ClassifyPath("[heap]").Label())
	assert.Equal(t, "[vsyscall]", ClassifyPath("[vsyscall]").Label())
	assert.Equal(t, "/usr/bin/cat", ClassifyPath("/usr/bin/cat").Label())

	// deleted and live mappings of one path group together
	assert.Equal(t, ClassifyPath("/tmp/x.so").Label(), ClassifyPath("/tmp/x.so (deleted)").Label())
}

func TestPathType_String(t *testing.T) {
	assert.Equal(t, "/tmp/x.so (deleted)", ClassifyPath("/tmp/x.so (deleted)").String())
	assert.Equal(t, "[anonymous]", ClassifyPath("").String())
	assert.Equal(t, "[stack]", ClassifyPath("[stack]").String())
}

func TestPathType_IsPseudo(t *testing.T) {
	assert.True(t, ClassifyPath("[heap]").IsPseudo())
	assert.True(t, ClassifyPath("[vvar]").IsPseudo())
	assert.False(t, ClassifyPath("").IsPseudo())
	assert.False(t, ClassifyPath("/bin/sh").IsPseudo())
}
