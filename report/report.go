// Package report turns a process snapshot into the ranked usage view shown
// to the user, as a terminal table or as YAML/JSON.
package report

import (
	"fmt"

	"memmap/process"
	"memmap/process/memory_map"
	"memmap/usage"
)

// Options selects what goes into a Document.
type Options struct {
	Counter string
	Top     int
	// Regions lists every region in addition to the ranked groups.
	Regions bool
	// Addr, when set, looks up the region containing this address.
	Addr *uint64
}

// Region is the flattened form of a mapping used in output.
type Region struct {
	Start    string              `json:"start" yaml:"start"`
	End      string              `json:"end" yaml:"end"`
	Perms    string              `json:"perms" yaml:"perms"`
	Offset   uint64              `json:"offset" yaml:"offset"`
	Device   string              `json:"device" yaml:"device"`
	Inode    uint64              `json:"inode" yaml:"inode"`
	Path     string              `json:"path,omitempty" yaml:"path,omitempty"`
	Kind     memory_map.PathKind `json:"kind" yaml:"kind"`
	Size     uint64              `json:"size" yaml:"size"`
	Counters map[string]uint64   `json:"counters,omitempty" yaml:"counters,omitempty"`
}

// Lookup is the answer to an address query.
type Lookup struct {
	Addr   string  `json:"addr" yaml:"addr"`
	Region *Region `json:"region,omitempty" yaml:"region,omitempty"`
}

// Document is everything a report shows about one snapshot.
type Document struct {
	PID         process.ProcessID    `json:"pid" yaml:"pid"`
	Cmdline     string               `json:"cmdline" yaml:"cmdline"`
	Info        *process.ProcessInfo `json:"info,omitempty" yaml:"info,omitempty"`
	RegionCount int                  `json:"region_count" yaml:"region_count"`
	VirtualSize uint64               `json:"virtual_size" yaml:"virtual_size"`
	Totals      map[string]uint64    `json:"totals" yaml:"totals"`
	Summary     usage.Summary        `json:"summary" yaml:"summary"`
	Regions     []Region             `json:"regions,omitempty" yaml:"regions,omitempty"`
	Lookup      *Lookup              `json:"lookup,omitempty" yaml:"lookup,omitempty"`
}

// NewDocument ranks p's regions according to opts. info may be nil.
func NewDocument(p *process.Process, info *process.ProcessInfo, opts Options) *Document {
	doc := &Document{
		PID:         p.PID,
		Cmdline:     p.Cmdline,
		Info:        info,
		RegionCount: len(p.Regions),
		VirtualSize: p.VirtualSize(),
		Totals:      usage.Totals(p.Regions),
		Summary:     usage.Rank(p.Regions, opts.Counter, opts.Top),
	}

	if opts.Regions {
		doc.Regions = make([]Region, 0, len(p.Regions))
		for i := range p.Regions {
			doc.Regions = append(doc.Regions, newRegion(&p.Regions[i]))
		}
	}

	if opts.Addr != nil {
		doc.Lookup = &Lookup{Addr: fmt.Sprintf("0x%x", *opts.Addr)}
		if r := p.FindRegion(*opts.Addr); r != nil {
			region := newRegion(r)
			doc.Lookup.Region = &region
		}
	}

	return doc
}

func newRegion(r *memory_map.DetailedMemoryRegion) Region {
	path := r.PathType()
	out := Region{
		Start:  fmt.Sprintf("%012x", r.Start),
		End:    fmt.Sprintf("%012x", r.End),
		Perms:  r.Perms.String(),
		Offset: r.Offset,
		Device: r.Device.String(),
		Inode:  r.Inode,
		Kind:   path.Kind,
		Size:   r.Size(),
	}
	if r.Path != nil {
		out.Path = r.Path.String()
	}
	if len(r.Counters) > 0 {
		out.Counters = r.Counters
	}
	return out
}
