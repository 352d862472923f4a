package main

import (
	"memmap/config"
	"memmap/process"
	"memmap/process_linux"
)

func newSource(cfg *config.Config, pid process.ProcessID) process.Source {
	src := process_linux.NewProcSource(cfg.ProcRoot, cfg.MapsOnly)
	if cfg.Debug {
		src.Log = process_linux.NewLogger(pid)
	}
	return src
}

func resolveName(root, name string) (process.ProcessID, error) {
	c, err := process_linux.OneByNameIn(root, name)
	if err != nil {
		return 0, err
	}
	return c.PID, nil
}

// describe only consults the live process table when reading the real procfs.
func describe(root string, pid process.ProcessID) (*process.ProcessInfo, error) {
	if root != process_linux.DefaultRoot {
		return nil, nil
	}
	info, err := process_linux.Describe(pid)
	if err != nil {
		return nil, err
	}
	return &info, nil
}
