package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"memmap/coloransi"
	"memmap/process"
	"memmap/process/memory_map"
)

const (
	barWidth      = 20
	maxLabelWidth = 60
)

var kindColors = map[memory_map.PathKind]coloransi.ColorCode{
	memory_map.KindAnonymous: coloransi.BrightBlack,
	memory_map.KindFile:      coloransi.Cyan,
	memory_map.KindDeleted:   coloransi.Red,
	memory_map.KindHeap:      coloransi.Green,
	memory_map.KindStack:     coloransi.Yellow,
	memory_map.KindVdso:      coloransi.Magenta,
	memory_map.KindVvar:      coloransi.Magenta,
	memory_map.KindVsyscall:  coloransi.Magenta,
}

// RenderTable writes the human readable report.
func RenderTable(w io.Writer, doc *Document, color bool) error {
	paint := func(c coloransi.ColorCode) FormatFunc {
		if !color {
			return nil
		}
		return func(s string) string { return coloransi.Foreground(c, s) }
	}
	bold := func(s string) string {
		if !color {
			return s
		}
		return coloransi.Style(coloransi.Bold, s)
	}

	title := fmt.Sprintf(" Process: %d: %s", doc.PID, doc.Cmdline)
	if color {
		title = coloransi.Foreground(coloransi.Yellow, fmt.Sprintf(" Process: %d:", doc.PID)) + " " + doc.Cmdline
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	if doc.Info != nil {
		if _, err := fmt.Fprintln(w, " "+describe(doc)); err != nil {
			return err
		}
	}

	s := doc.Summary
	if _, err := fmt.Fprintf(w, " %d regions, %s virtual, %s %s in %d groups\n\n",
		doc.RegionCount, memory_map.FormatSize(doc.VirtualSize),
		s.Counter, kbSize(s.Total), s.GroupCount); err != nil {
		return err
	}

	table := NewTable(
		ColumnSpec{Header: "#", AlignRight: true, BlankValue: " "},
		ColumnSpec{Header: "LABEL"},
		ColumnSpec{Header: "KIND"},
		ColumnSpec{Header: "REGIONS", AlignRight: true},
		ColumnSpec{Header: strings.ToUpper(s.Counter), AlignRight: true},
		ColumnSpec{Header: "%", AlignRight: true},
		ColumnSpec{Header: "", BlankValue: " "},
	)

	for i, g := range s.Groups {
		c := paint(kindColors[g.Kind])
		table.AddStyledRow(
			[]string{
				strconv.Itoa(i + 1),
				shorten(g.Label, maxLabelWidth),
				g.Kind.String(),
				strconv.Itoa(g.Regions),
				kbSize(g.Value),
				percent(g.Ratio),
				bar(g.Ratio, barWidth),
			},
			[]FormatFunc{nil, c, c, nil, nil, nil, c},
		)
	}

	if shown := len(s.Groups); shown < s.GroupCount {
		ratio := 0.0
		if s.Total > 0 {
			ratio = float64(s.Remainder) / float64(s.Total)
		}
		table.AddRow("", fmt.Sprintf("(%d more)", s.GroupCount-shown), " ", " ",
			kbSize(s.Remainder), percent(ratio), " ")
	}

	table.AddSeparator()
	totalRatio := 0.0
	if s.Total > 0 {
		totalRatio = 1
	}
	table.AddStyledRow(
		[]string{"", "total", " ", " ", kbSize(s.Total), percent(totalRatio), " "},
		[]FormatFunc{nil, bold, nil, nil, bold, nil, nil},
	)

	if err := table.Render(w); err != nil {
		return err
	}

	if len(doc.Regions) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := renderRegions(w, doc, paint); err != nil {
			return err
		}
	}

	if doc.Lookup != nil {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		line := fmt.Sprintf(" %s is not mapped", doc.Lookup.Addr)
		if r := doc.Lookup.Region; r != nil {
			line = fmt.Sprintf(" %s is in %s-%s %s %s", doc.Lookup.Addr, r.Start, r.End, r.Perms, pathOrAnon(r.Path))
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return nil
}

func renderRegions(w io.Writer, doc *Document, paint func(coloransi.ColorCode) FormatFunc) error {
	counter := doc.Summary.Counter
	table := NewTable(
		ColumnSpec{Header: "ADDRESS"},
		ColumnSpec{Header: "PERMS"},
		ColumnSpec{Header: "OFFSET", AlignRight: true},
		ColumnSpec{Header: "SIZE", AlignRight: true},
		ColumnSpec{Header: "DEV"},
		ColumnSpec{Header: "INODE", AlignRight: true},
		ColumnSpec{Header: strings.ToUpper(counter), AlignRight: true},
		ColumnSpec{Header: "PATH"},
	)

	for _, r := range doc.Regions {
		c := paint(kindColors[r.Kind])
		table.AddStyledRow(
			[]string{
				r.Start + "-" + r.End,
				r.Perms,
				strconv.FormatUint(r.Offset, 16),
				memory_map.FormatSize(r.Size),
				r.Device,
				strconv.FormatUint(r.Inode, 10),
				kbSize(r.Counters[counter]),
				r.Path,
			},
			[]FormatFunc{nil, nil, nil, nil, nil, nil, nil, c},
		)
	}

	return table.Render(w)
}

func describe(doc *Document) string {
	info := doc.Info
	parts := []string{}
	if info.Name != "" {
		parts = append(parts, info.Name)
	}
	if info.PPID > 0 {
		parts = append(parts, fmt.Sprintf("ppid %d", info.PPID))
	}
	if info.User != "" {
		parts = append(parts, "user "+info.User)
	}
	if info.State != process.ProcessUnknown {
		parts = append(parts, fmt.Sprintf("state %s (%s)", info.State.Letter(), info.State))
	}
	if info.Threads > 0 {
		parts = append(parts, fmt.Sprintf("%d threads", info.Threads))
	}
	if info.Memory > 0 {
		parts = append(parts, "rss "+memory_map.FormatSize(info.Memory))
	}
	if info.Exe != "" {
		parts = append(parts, info.Exe)
	}
	return strings.Join(parts, ", ")
}

// kbSize formats a counter value, which smaps reports in kB.
func kbSize(kb uint64) string {
	return memory_map.FormatSize(kb * 1024)
}

func percent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}

func bar(ratio float64, width int) string {
	filled := int(ratio*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// shorten keeps the tail of long labels, which is the informative part of a path.
func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return "..." + string(r[len(r)-(n-3):])
}

func pathOrAnon(p string) string {
	if p == "" {
		return "[anonymous]"
	}
	return p
}
