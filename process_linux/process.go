//go:build linux

package process_linux

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"memmap/process"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	"golang.org/x/sys/unix"
)

// DefaultRoot is where procfs is normally mounted.
const DefaultRoot = "/proc"

// ProcSource implements process.Source on top of procfs.
type ProcSource struct {
	// Root is the procfs mount point, DefaultRoot when empty.
	Root string
	// MapsOnly reads /proc/<pid>/maps instead of smaps. maps carries no
	// per-region counters but is readable for more processes.
	MapsOnly bool
	// Log receives per-read debug output when set.
	Log *logger.Logger
}

// NewProcSource creates a ProcSource reading from root.
func NewProcSource(root string, mapsOnly bool) *ProcSource {
	if root == "" {
		root = DefaultRoot
	}
	return &ProcSource{
		Root:     root,
		MapsOnly: mapsOnly,
	}
}

// NewLogger returns the logger used for everything concerning pid.
func NewLogger(pid process.ProcessID) *logger.Logger {
	return logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, fmt.Sprintf("process-%d", pid)))
}

func (s *ProcSource) ReadCmdline(pid process.ProcessID) ([]byte, error) {
	return s.read(pid, "cmdline")
}

func (s *ProcSource) ReadMappings(pid process.ProcessID) ([]byte, error) {
	if s.MapsOnly {
		return s.read(pid, "maps")
	}
	return s.read(pid, "smaps")
}

func (s *ProcSource) root() string {
	if s.Root == "" {
		return DefaultRoot
	}
	return s.Root
}

func (s *ProcSource) read(pid process.ProcessID, name string) ([]byte, error) {
	if !s.exists(pid) {
		return nil, fmt.Errorf("%w: pid %d", process.ErrProcessNotFound, pid)
	}

	path := filepath.Join(s.root(), strconv.Itoa(int(pid)), name)
	data, err := os.ReadFile(path)
	if err != nil {
		if s.Log != nil {
			s.Log.Warn("Failed to read ", path, ": ", err)
		}
		return nil, classifyErr(err)
	}

	if s.Log != nil {
		s.Log.Debugln("Read", path, len(data), "bytes")
	}
	return data, nil
}

// exists checks <root>/<pid>. For the real procfs a stat failure other than
// ENOENT falls back to kill(pid, 0), where EPERM still means the pid is live.
func (s *ProcSource) exists(pid process.ProcessID) bool {
	if pid <= 0 {
		return false
	}

	_, err := os.Stat(filepath.Join(s.root(), strconv.Itoa(int(pid))))
	if err == nil {
		return true
	}
	if errors.Is(err, fs.ErrNotExist) || s.root() != DefaultRoot {
		return false
	}
	return procExists(int(pid))
}

// classifyErr attaches the process error kinds to errnos procfs returns
// for exited or protected processes.
func classifyErr(err error) error {
	switch {
	case errors.Is(err, unix.ESRCH):
		return fmt.Errorf("%w: %w", process.ErrProcessNotFound, err)
	case errors.Is(err, unix.EACCES), errors.Is(err, unix.EPERM):
		return fmt.Errorf("%w: %w", process.ErrAccessDenied, err)
	default:
		return err
	}
}
