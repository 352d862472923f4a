package process

import (
	"bytes"
	"strings"

	"memmap/process/memory_map"
)

// Source supplies the raw text a snapshot is built from.
type Source interface {
	// ReadCmdline returns the NUL separated invocation of pid.
	ReadCmdline(pid ProcessID) ([]byte, error)

	// ReadMappings returns the maps or smaps document of pid.
	ReadMappings(pid ProcessID) ([]byte, error)
}

// Process is a snapshot of one process's address space, taken once.
// Regions are in kernel order, ascending by address.
type Process struct {
	PID     ProcessID
	Cmdline string
	Regions []memory_map.DetailedMemoryRegion
}

// NewProcess reads and parses a snapshot of pid from src. Any header parse
// failure aborts the snapshot; there is no partial result.
func NewProcess(pid ProcessID, src Source) (*Process, error) {
	rawCmdline, err := src.ReadCmdline(pid)
	if err != nil {
		return nil, &ReadError{PID: pid, What: "cmdline", Err: err}
	}

	rawMappings, err := src.ReadMappings(pid)
	if err != nil {
		return nil, &ReadError{PID: pid, What: "memory mappings", Err: err}
	}

	regions, err := memory_map.Parse(bytes.NewReader(rawMappings))
	if err != nil {
		return nil, err
	}

	return &Process{
		PID:     pid,
		Cmdline: NormalizeCmdline(rawCmdline),
		Regions: regions,
	}, nil
}

// NormalizeCmdline turns the NUL separated argv blob into a single line.
func NormalizeCmdline(raw []byte) string {
	return strings.TrimSpace(strings.ReplaceAll(string(raw), "\x00", " "))
}

// FindRegion returns the region of the snapshot containing addr, or nil.
func (p *Process) FindRegion(addr uint64) *memory_map.DetailedMemoryRegion {
	return memory_map.FindRegion(p.Regions, addr)
}

// VirtualSize is the total size of every mapping in bytes.
func (p *Process) VirtualSize() uint64 {
	return memory_map.TotalSize(p.Regions)
}
