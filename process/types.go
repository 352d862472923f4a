package process

// ProcessID represents a unique identifier for a process
type ProcessID int

// ProcessInfo contains descriptive information about a process.
// Every field is best effort and may be left zero.
type ProcessInfo struct {
	PID     ProcessID    `json:"pid" yaml:"pid"`
	PPID    ProcessID    `json:"ppid,omitempty" yaml:"ppid,omitempty"`
	Name    string       `json:"name,omitempty" yaml:"name,omitempty"`
	Exe     string       `json:"exe,omitempty" yaml:"exe,omitempty"`
	User    string       `json:"user,omitempty" yaml:"user,omitempty"`
	State   ProcessState `json:"state,omitempty" yaml:"state,omitempty"`
	Threads int          `json:"threads,omitempty" yaml:"threads,omitempty"`
	Memory  uint64       `json:"rss_bytes,omitempty" yaml:"rss_bytes,omitempty"` // Resident Set Size in bytes
}
