package memory_map

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRegion_FileBacked(t *testing.T) {
	r, err := ParseRegion("7f2a1b3c4000-7f2a1b5c4000 r-xp 00001000 08:01 1234567 /usr/lib/libc.so.6")
	require.NoError(t, err)

	assert.Equal(t, uint64(0x7f2a1b3c4000), r.Start)
	assert.Equal(t, uint64(0x7f2a1b5c4000), r.End)
	assert.Equal(t, Permissions{Read: true, Execute: true}, r.Perms)
	assert.Equal(t, uint64(0x1000), r.Offset)
	assert.Equal(t, Device{Major: 8, Minor: 1}, r.Device)
	assert.Equal(t, uint64(1234567), r.Inode)
	require.NotNil(t, r.Path)
	assert.Equal(t, PathType{Kind: KindFile, Path: "/usr/lib/libc.so.6"}, *r.Path)
	assert.Equal(t, uint64(0x200000), r.Size())
}

func TestParseRegion_TrailingEmptyField(t *testing.T) {
	r, err := ParseRegion("7f2a1b3c4000-7f2a1b5c4000 r--p 00000000 00:00 0 ")
	require.NoError(t, err)
	assert.Equal(t, KindAnonymous, r.PathType().Kind)
}

func TestParseRegion_NoPathField(t *testing.T) {
	r, err := ParseRegion("7f2a1b3c4000-7f2a1b5c4000 rw-p 00000000 00:00 0")
	require.NoError(t, err)
	assert.Nil(t, r.Path)
	assert.Equal(t, KindAnonymous, r.PathType().Kind)
}

func TestParseRegion_Heap(t *testing.T) {
	r, err := ParseRegion("7f2a1b3c4000-7f2a1b5c4000 rw-p 00000000 00:00 0 [heap]")
	require.NoError(t, err)
	assert.Equal(t, KindHeap, r.PathType().Kind)
}

func TestParseRegion_Deleted(t *testing.T) {
	r, err := ParseRegion("7f2a1b3c4000-7f2a1b5c4000 r-xp 00000000 08:01 42 /tmp/old.so (deleted)")
	require.NoError(t, err)
	assert.Equal(t, PathType{Kind: KindDeleted, Path: "/tmp/old.so"}, r.PathType())
}

func TestParseRegion_PaddedColumnsAndSpacesInPath(t *testing.T) {
	line := "55d0c0a00000-55d0c0a21000 rw-p 00000000 fd:01 9175        \t  /opt/My App/bin/app server  "
	r, err := ParseRegion(line)
	require.NoError(t, err)
	assert.Equal(t, Device{Major: 0xfd, Minor: 1}, r.Device)
	assert.Equal(t, uint64(9175), r.Inode)
	assert.Equal(t, PathType{Kind: KindFile, Path: "/opt/My App/bin/app server"}, r.PathType())
}

func TestParseRegion_MissingFields(t *testing.T) {
	tests := []struct {
		line  string
		field string
	}{
		{"", "address range"},
		{"   ", "address range"},
		{"7f2a1b3c4000-7f2a1b5c4000", "permissions"},
		{"7f2a1b3c4000-7f2a1b5c4000 r-xp", "offset"},
		{"7f2a1b3c4000-7f2a1b5c4000 r-xp 00001000", "device"},
		{"7f2a1b3c4000-7f2a1b5c4000 r-xp 00001000 08:01", "inode"},
		{"7f2a1b3c4000-7f2a1b5c4000 r-xp 00001000 08:01   ", "inode"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			_, err := ParseRegion(tt.line)
			require.ErrorIs(t, err, ErrMissingField)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.field, perr.Field)
			assert.Equal(t, "missing field: "+tt.field, err.Error())
		})
	}
}

func TestParseRegion_InvalidContent(t *testing.T) {
	tests := []struct {
		name string
		line string
		kind error
	}{
		{"address", "7f2a1b3c4000 r-xp 00001000 08:01 1 /x", ErrInvalidAddress},
		{"address hex", "7f2a1b3c4000-zz r-xp 00001000 08:01 1 /x", ErrInvalidInt},
		{"permissions", "1000-2000 r-x 00001000 08:01 1 /x", ErrInvalidPermissions},
		{"offset", "1000-2000 r-xp 0000g000 08:01 1 /x", ErrInvalidInt},
		{"device", "1000-2000 r-xp 00001000 0801 1 /x", ErrInvalidDevice},
		{"device hex", "1000-2000 r-xp 00001000 08:xx 1 /x", ErrInvalidInt},
		{"inode", "1000-2000 r-xp 00001000 08:01 ff /x", ErrInvalidInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRegion(tt.line)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestMemoryRegion_SizeDoesNotUnderflow(t *testing.T) {
	r, err := ParseRegion("2000-1000 r--p 00000000 00:00 0")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x2000), r.Start)
	assert.Equal(t, uint64(0x1000), r.End)
	assert.Equal(t, uint64(0), r.Size())

	r, err = ParseRegion("1000-1000 r--p 00000000 00:00 0")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), r.Size())
}

func TestMemoryRegion_Contains(t *testing.T) {
	r := MemoryRegion{Start: 0x1000, End: 0x2000}
	assert.False(t, r.Contains(0xfff))
	assert.True(t, r.Contains(0x1000))
	assert.True(t, r.Contains(0x1fff))
	assert.False(t, r.Contains(0x2000))
}

func TestMemoryRegion_String(t *testing.T) {
	r, err := ParseRegion("7f2a1b3c4000-7f2a1b5c4000 r-xp 00001000 08:01 1234567 /usr/lib/libc.so.6")
	require.NoError(t, err)
	assert.Equal(t,
		"7f2a1b3c4000-7f2a1b5c4000 r-xp     1000    2.0 MiB 08:01  1234567 /usr/lib/libc.so.6",
		r.String())
}

func TestIsHeaderLine(t *testing.T) {
	assert.True(t, IsHeaderLine("7f2a1b3c4000-7f2a1b5c4000 r-xp"))
	assert.True(t, IsHeaderLine("00400000-0040b000 r-xp"))
	assert.True(t, IsHeaderLine("ffffffffff600000-ffffffffff601000 --xp"))
	assert.True(t, IsHeaderLine("A000-B000 r--p"))
	assert.False(t, IsHeaderLine("Rss:      100 kB"))
	assert.False(t, IsHeaderLine("Anonymous:            0 kB"))
	assert.False(t, IsHeaderLine("AnonHugePages:        0 kB"))
	assert.False(t, IsHeaderLine("FilePmdMapped:        0 kB"))
	// malformed headers are still headers so that they fail loudly
	assert.True(t, IsHeaderLine("7f2a1b3c4000 r-xp 00000000 08:01 1 /x"))
	assert.False(t, IsHeaderLine("VmFlags: rd ex mr mw me"))
	assert.False(t, IsHeaderLine(" 1000-2000"))
	assert.False(t, IsHeaderLine(""))
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "0 B", FormatSize(0))
	assert.Equal(t, "1023 B", FormatSize(1023))
	assert.Equal(t, "1.0 KiB", FormatSize(1024))
	assert.Equal(t, "1.5 MiB", FormatSize(1536*1024))
	assert.Equal(t, "2.0 GiB", FormatSize(2<<30))
}
