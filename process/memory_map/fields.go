package memory_map

import (
	"fmt"
	"strconv"
	"strings"
)

// Permissions holds the access flags of a mapping.
// Shared is false for private (copy-on-write) mappings.
type Permissions struct {
	Read    bool
	Write   bool
	Execute bool
	Shared  bool
}

// String returns the 4 character form used by the kernel, e.g. "r-xp"
func (p Permissions) String() string {
	b := [4]byte{'-', '-', '-', 'p'}
	if p.Read {
		b[0] = 'r'
	}
	if p.Write {
		b[1] = 'w'
	}
	if p.Execute {
		b[2] = 'x'
	}
	if p.Shared {
		b[3] = 's'
	}
	return string(b[:])
}

// Device is the major:minor pair of the device holding the backing file.
type Device struct {
	Major uint8
	Minor uint8
}

func (d Device) String() string {
	return fmt.Sprintf("%02x:%02x", d.Major, d.Minor)
}

// ParseAddressRange parses "start-end" where both halves are hexadecimal.
func ParseAddressRange(s string) (start, end uint64, err error) {
	startStr, endStr, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, &ParseError{Kind: ErrInvalidAddress, Field: "address range", Input: s}
	}

	start, err = strconv.ParseUint(startStr, 16, 64)
	if err != nil {
		return 0, 0, invalidInt("address range", startStr, err)
	}

	end, err = strconv.ParseUint(endStr, 16, 64)
	if err != nil {
		return 0, 0, invalidInt("address range", endStr, err)
	}

	return start, end, nil
}

// ParsePermissions parses a permission token such as "rw-p".
// Any fourth character other than 's' is treated as private.
func ParsePermissions(s string) (Permissions, error) {
	if len(s) != 4 {
		return Permissions{}, &ParseError{Kind: ErrInvalidPermissions, Field: "permissions", Input: s}
	}

	return Permissions{
		Read:    s[0] == 'r',
		Write:   s[1] == 'w',
		Execute: s[2] == 'x',
		Shared:  s[3] == 's',
	}, nil
}

// ParseDevice parses a "major:minor" pair, both halves hexadecimal bytes.
func ParseDevice(s string) (Device, error) {
	majorStr, minorStr, ok := strings.Cut(s, ":")
	if !ok {
		return Device{}, &ParseError{Kind: ErrInvalidDevice, Field: "device", Input: s}
	}

	major, err := strconv.ParseUint(majorStr, 16, 8)
	if err != nil {
		return Device{}, invalidInt("device", majorStr, err)
	}

	minor, err := strconv.ParseUint(minorStr, 16, 8)
	if err != nil {
		return Device{}, invalidInt("device", minorStr, err)
	}

	return Device{Major: uint8(major), Minor: uint8(minor)}, nil
}

func parseOffset(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, invalidInt("offset", s, err)
	}
	return v, nil
}

func parseInode(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, invalidInt("inode", s, err)
	}
	return v, nil
}
