package process

// ProcessState is the scheduler state of a process as reported by the
// process table (the status words gopsutil derives from /proc/<pid>/stat).
type ProcessState string

const (
	ProcessRunning  ProcessState = "running" // R
	ProcessSleeping ProcessState = "sleep"   // S
	ProcessBlocked  ProcessState = "blocked" // D, uninterruptible disk sleep
	ProcessIdle     ProcessState = "idle"    // I
	ProcessStopped  ProcessState = "stop"    // T or t
	ProcessWaiting  ProcessState = "wait"    // W, paging
	ProcessZombie   ProcessState = "zombie"  // Z
	ProcessUnknown  ProcessState = ""
)

// Letter returns the single character ps(1) uses for s, or "?".
func (s ProcessState) Letter() string {
	switch s {
	case ProcessRunning:
		return "R"
	case ProcessSleeping:
		return "S"
	case ProcessBlocked:
		return "D"
	case ProcessIdle:
		return "I"
	case ProcessStopped:
		return "T"
	case ProcessWaiting:
		return "W"
	case ProcessZombie:
		return "Z"
	default:
		return "?"
	}
}
