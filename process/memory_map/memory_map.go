package memory_map

import (
	"bufio"
	"fmt"
	"io"
	"sort"
)

const maxLineSize = 1024 * 1024

// Parse reads maps or smaps text and returns the regions in the order they
// appear. Lines following a header, up to the next header, are applied to
// that region as counters; lines before the first header are ignored.
//
// A malformed header aborts the whole parse and no regions are returned.
func Parse(r io.Reader) ([]DetailedMemoryRegion, error) {
	var regions []DetailedMemoryRegion
	var current *DetailedMemoryRegion

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if !IsHeaderLine(line) {
			if current != nil {
				current.ApplyDetail(line)
			}
			continue
		}

		base, err := ParseRegion(line)
		if err != nil {
			return nil, &LineError{Line: lineNo, Text: line, Err: err}
		}

		if current != nil {
			regions = append(regions, *current)
		}
		region := NewDetailedRegion(base)
		current = &region
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading memory map: %w", err)
	}

	if current != nil {
		regions = append(regions, *current)
	}

	return regions, nil
}

// FindRegion returns the region containing addr, or nil if addr is not
// mapped. regions must be sorted by address, which kernel output is.
func FindRegion(regions []DetailedMemoryRegion, addr uint64) *DetailedMemoryRegion {
	i := sort.Search(len(regions), func(i int) bool {
		return regions[i].End > addr
	})
	if i < len(regions) && regions[i].Start <= addr {
		return &regions[i]
	}
	return nil
}

// TotalSize sums the virtual size of every region in bytes.
func TotalSize(regions []DetailedMemoryRegion) uint64 {
	var total uint64
	for i := range regions {
		total += regions[i].Size()
	}
	return total
}
