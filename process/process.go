// Package process builds immutable memory snapshots of a running process.
package process

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrRead is matched by every failure to obtain raw text for a process,
	// as opposed to failures to parse it.
	ErrRead = errors.New("read failed")

	// ErrProcessNotFound is returned when the process does not exist or has already exited.
	ErrProcessNotFound = errors.New("process not found")

	// ErrAccessDenied is returned when the caller may not inspect the process.
	ErrAccessDenied = errors.New("access denied")
)

// ReadError wraps a failure from a Source.
type ReadError struct {
	PID  ProcessID
	What string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s of process %d: %v", e.What, e.PID, e.Err)
}

func (e *ReadError) Unwrap() []error {
	errs := []error{ErrRead, e.Err}
	switch {
	case errors.Is(e.Err, fs.ErrNotExist):
		errs = append(errs, ErrProcessNotFound)
	case errors.Is(e.Err, fs.ErrPermission):
		errs = append(errs, ErrAccessDenied)
	}
	return errs
}
