// Package usage groups memory regions by what backs them and ranks the
// groups by a chosen smaps counter.
package usage

import (
	"sort"

	"memmap/process/memory_map"
)

// DefaultCounter is used when no counter is named.
const DefaultCounter = memory_map.CounterRss

// Group is the sum of one counter over every region sharing a label.
type Group struct {
	Label   string              `json:"label" yaml:"label"`
	Kind    memory_map.PathKind `json:"kind" yaml:"kind"`
	Value   uint64              `json:"value" yaml:"value"`
	Regions int                 `json:"regions" yaml:"regions"`
	// Ratio is Value over the grand total, 0 when the total is 0.
	Ratio float64 `json:"ratio" yaml:"ratio"`
}

// Summary is the ranked result. Total and GroupCount cover every group,
// including those cut off by truncation, whose sum is Remainder.
type Summary struct {
	Counter    string  `json:"counter" yaml:"counter"`
	Total      uint64  `json:"total" yaml:"total"`
	GroupCount int     `json:"group_count" yaml:"group_count"`
	Remainder  uint64  `json:"remainder" yaml:"remainder"`
	Groups     []Group `json:"groups" yaml:"groups"`
}

// Rank groups regions by PathType label, sums counter per group and sorts
// groups by value descending, ties by label ascending. When top > 0 only the
// first top groups are kept.
func Rank(regions []memory_map.DetailedMemoryRegion, counter string, top int) Summary {
	if counter == "" {
		counter = DefaultCounter
	}

	byLabel := make(map[string]*Group)
	var total uint64
	for i := range regions {
		path := regions[i].PathType()
		label := path.Label()

		g, ok := byLabel[label]
		if !ok {
			g = &Group{Label: label, Kind: path.Kind}
			byLabel[label] = g
		}

		v := regions[i].Counter(counter)
		g.Value += v
		g.Regions++
		total += v
	}

	groups := make([]Group, 0, len(byLabel))
	for _, g := range byLabel {
		if total > 0 {
			g.Ratio = float64(g.Value) / float64(total)
		}
		groups = append(groups, *g)
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Value != groups[j].Value {
			return groups[i].Value > groups[j].Value
		}
		return groups[i].Label < groups[j].Label
	})

	summary := Summary{
		Counter:    counter,
		Total:      total,
		GroupCount: len(groups),
	}

	if top > 0 && top < len(groups) {
		for _, g := range groups[top:] {
			summary.Remainder += g.Value
		}
		groups = groups[:top]
	}
	summary.Groups = groups

	return summary
}

// Totals sums every counter seen across regions.
func Totals(regions []memory_map.DetailedMemoryRegion) map[string]uint64 {
	totals := make(map[string]uint64)
	for i := range regions {
		for k, v := range regions[i].Counters {
			totals[k] += v
		}
	}
	return totals
}

// Counters returns the counter names present in regions, sorted.
func Counters(regions []memory_map.DetailedMemoryRegion) []string {
	totals := Totals(regions)
	names := make([]string, 0, len(totals))
	for k := range totals {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
