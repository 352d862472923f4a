//go:build linux

package process_linux

import (
	"fmt"

	"memmap/process"

	gops "github.com/shirou/gopsutil/v3/process"
)

// Describe collects display metadata for pid from the process table.
// Fields that cannot be read are left empty.
func Describe(pid process.ProcessID) (process.ProcessInfo, error) {
	info := process.ProcessInfo{PID: pid}

	p, err := gops.NewProcess(int32(pid))
	if err != nil {
		return info, fmt.Errorf("describe process %d: %w", pid, err)
	}

	if name, err := p.Name(); err == nil {
		info.Name = name
	}
	if ppid, err := p.Ppid(); err == nil {
		info.PPID = process.ProcessID(ppid)
	}
	if exe, err := p.Exe(); err == nil {
		info.Exe = exe
	}
	if user, err := p.Username(); err == nil {
		info.User = user
	}
	if st, err := p.Status(); err == nil && len(st) > 0 {
		info.State = process.ProcessState(st[0])
	}
	if n, err := p.NumThreads(); err == nil {
		info.Threads = int(n)
	}
	if mem, err := p.MemoryInfo(); err == nil && mem != nil {
		info.Memory = mem.RSS
	}

	return info, nil
}
