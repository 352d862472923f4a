//go:build linux

package process_linux

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"memmap/process"

	"golang.org/x/sys/unix"
)

// Candidate is a process matched by name.
type Candidate struct {
	PID  process.ProcessID
	Name string // best-effort: comm or exe basename
}

// ListByName returns all processes whose comm or exe basename equals name.
// name match is case-sensitive (like pidof). The calling process is skipped.
func ListByName(name string) ([]Candidate, error) {
	return listByName(DefaultRoot, name, os.Getpid())
}

// OneByName returns the first match for name (lowest PID), or os.ErrNotExist if none.
func OneByName(name string) (Candidate, error) {
	return oneByName(DefaultRoot, name, os.Getpid())
}

// OneByNameIn is OneByName for a procfs mounted at root.
func OneByNameIn(root, name string) (Candidate, error) {
	return oneByName(root, name, os.Getpid())
}

func listByName(root, name string, selfPID int) ([]Candidate, error) {
	if name == "" {
		return nil, errors.New("empty name")
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", root, err)
	}

	var out []Candidate

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(e.Name())
		if err != nil || pid <= 0 {
			continue // not a PID dir
		}
		if pid == selfPID {
			continue
		}

		comm, _ := os.ReadFile(filepath.Join(root, e.Name(), "comm"))
		comm = bytesTrimNL(comm)
		if string(comm) == name {
			out = append(out, Candidate{PID: process.ProcessID(pid), Name: string(comm)})
			continue
		}

		// Resolve <root>/<pid>/exe symlink; may fail if zombie or permission
		exe, _ := os.Readlink(filepath.Join(root, e.Name(), "exe"))
		if exe != "" && filepath.Base(exe) == name {
			out = append(out, Candidate{PID: process.ProcessID(pid), Name: filepath.Base(exe)})
		}
	}

	return out, nil
}

func oneByName(root, name string, selfPID int) (Candidate, error) {
	ps, err := listByName(root, name, selfPID)
	if err != nil {
		return Candidate{}, err
	}
	if len(ps) == 0 {
		return Candidate{}, fmt.Errorf("no process named %q: %w", name, os.ErrNotExist)
	}
	// pick the lowest PID for determinism
	minIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i].PID < ps[minIdx].PID {
			minIdx = i
		}
	}
	return ps[minIdx], nil
}

// procExists probes pid with signal 0. EPERM means the process exists but
// belongs to someone else.
func procExists(pid int) bool {
	err := unix.Kill(pid, 0)
	return err == nil || errors.Is(err, unix.EPERM)
}

func bytesTrimNL(b []byte) []byte {
	// Trim trailing '\n' if present (comm has a newline).
	for len(b) > 0 {
		switch b[len(b)-1] {
		case '\n', '\r', ' ', '\t':
			b = b[:len(b)-1]
		default:
			return b
		}
	}
	return b
}
