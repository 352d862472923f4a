package memory_map

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is returned when a mandatory header token is absent.
	ErrMissingField = errors.New("missing field")

	// ErrInvalidAddress is returned when an address range has no '-' separator.
	ErrInvalidAddress = errors.New("invalid address range")

	// ErrInvalidPermissions is returned when a permission token is not 4 characters long.
	ErrInvalidPermissions = errors.New("invalid permissions")

	// ErrInvalidDevice is returned when a device token has no ':' separator.
	ErrInvalidDevice = errors.New("invalid device")

	// ErrInvalidInt is returned when a numeric token does not parse under its radix.
	ErrInvalidInt = errors.New("invalid integer")
)

// ParseError describes a failure to parse one field of a region header.
// Kind is one of the Err* sentinels above, Err the underlying cause if any.
type ParseError struct {
	Kind  error
	Field string
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	switch {
	case e.Kind == ErrMissingField:
		return fmt.Sprintf("%v: %s", e.Kind, e.Field)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v %q: %v", e.Field, e.Kind, e.Input, e.Err)
	default:
		return fmt.Sprintf("%s: %v %q", e.Field, e.Kind, e.Input)
	}
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// LineError attaches the 1-based input line to a header parse failure.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

func missingField(field string) error {
	return &ParseError{Kind: ErrMissingField, Field: field}
}

func invalidInt(field, input string, err error) error {
	return &ParseError{Kind: ErrInvalidInt, Field: field, Input: input, Err: err}
}
