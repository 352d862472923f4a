package memory_map

import (
	"strconv"
	"strings"
)

// Counter names as they appear in /proc/<pid>/smaps. Values are in kB.
const (
	CounterSize           = "Size"
	CounterKernelPageSize = "KernelPageSize"
	CounterMMUPageSize    = "MMUPageSize"
	CounterRss            = "Rss"
	CounterPss            = "Pss"
	CounterSharedClean    = "Shared_Clean"
	CounterSharedDirty    = "Shared_Dirty"
	CounterPrivateClean   = "Private_Clean"
	CounterPrivateDirty   = "Private_Dirty"
	CounterReferenced     = "Referenced"
	CounterAnonymous      = "Anonymous"
	CounterLazyFree       = "LazyFree"
	CounterAnonHugePages  = "AnonHugePages"
	CounterSwap           = "Swap"
	CounterSwapPss        = "SwapPss"
	CounterLocked         = "Locked"
)

// DetailedMemoryRegion is a region together with the accounting lines that
// followed its header in smaps. Counters only holds keys that were present.
type DetailedMemoryRegion struct {
	MemoryRegion
	Counters map[string]uint64
}

// NewDetailedRegion wraps a base region with an empty counter set.
func NewDetailedRegion(region MemoryRegion) DetailedMemoryRegion {
	return DetailedMemoryRegion{
		MemoryRegion: region,
		Counters:     make(map[string]uint64),
	}
}

// Counter returns the named counter, 0 if it was not reported.
func (r *DetailedMemoryRegion) Counter(name string) uint64 {
	return r.Counters[name]
}

// ApplyDetail folds one "Key: value [unit]" line into the counters.
// It returns false and leaves the region untouched if the line does not
// have that shape.
func (r *DetailedMemoryRegion) ApplyDetail(line string) bool {
	key, value, ok := parseDetail(line)
	if !ok {
		return false
	}
	if r.Counters == nil {
		r.Counters = make(map[string]uint64)
	}
	r.Counters[key] = value
	return true
}

func parseDetail(line string) (string, uint64, bool) {
	key, rest, ok := strings.Cut(line, ":")
	if !ok || key == "" || strings.ContainsAny(key, " \t") {
		return "", 0, false
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 || len(fields) > 2 {
		return "", 0, false
	}

	value, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return "", 0, false
	}

	return key, value, true
}
