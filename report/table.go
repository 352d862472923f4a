package report

import (
	"fmt"
	"io"
	"strings"

	"memmap/coloransi"
)

// FormatFunc is a callback to colorize a cell value
type FormatFunc func(value string) string

// ColumnSpec defines a column's properties
type ColumnSpec struct {
	Header     string
	BlankValue string // Value to show for empty cells (default: "-")
	AlignRight bool
	MinWidth   int
}

type cell struct {
	text   string
	format FormatFunc
}

// Table is a plain text table whose column widths ignore ANSI escapes.
type Table struct {
	columns []ColumnSpec
	rows    [][]cell
	widths  []int
}

// NewTable creates a new table with the given column specifications
func NewTable(cols ...ColumnSpec) *Table {
	t := &Table{
		columns: cols,
		widths:  make([]int, len(cols)),
	}

	for i, col := range cols {
		t.widths[i] = max(col.MinWidth, len(col.Header))
		if t.columns[i].BlankValue == "" {
			t.columns[i].BlankValue = "-"
		}
	}

	return t
}

// AddRow adds a row of plain cells.
func (t *Table) AddRow(data ...string) {
	cells := make([]cell, len(data))
	for i, d := range data {
		cells[i] = cell{text: d}
	}
	t.addCells(cells)
}

// AddStyledRow adds a row where format[i], if non-nil, colours cell i.
func (t *Table) AddStyledRow(data []string, format []FormatFunc) {
	cells := make([]cell, len(data))
	for i, d := range data {
		cells[i] = cell{text: d}
		if i < len(format) {
			cells[i].format = format[i]
		}
	}
	t.addCells(cells)
}

func (t *Table) addCells(data []cell) {
	row := make([]cell, len(t.columns))
	for i := range row {
		if i < len(data) {
			row[i] = data[i]
		}
		if row[i].text == "" {
			row[i].text = t.columns[i].BlankValue
		}
		if n := coloransi.VisibleLength(row[i].text); n > t.widths[i] {
			t.widths[i] = n
		}
	}
	t.rows = append(t.rows, row)
}

// AddSeparator adds a separator line
func (t *Table) AddSeparator() {
	t.rows = append(t.rows, nil)
}

// Render writes the table to the given writer
func (t *Table) Render(w io.Writer) error {
	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = t.pad(i, col.Header)
	}
	if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(headers, " "), " ")); err != nil {
		return err
	}
	if err := t.renderSeparator(w); err != nil {
		return err
	}

	for _, row := range t.rows {
		if row == nil {
			if err := t.renderSeparator(w); err != nil {
				return err
			}
			continue
		}

		formatted := make([]string, len(row))
		for i, c := range row {
			padded := t.pad(i, c.text)
			if c.format != nil {
				// pad before colouring so escapes do not shift columns
				padded = c.format(padded)
			}
			formatted[i] = padded
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(formatted, " "), " ")); err != nil {
			return err
		}
	}

	return nil
}

func (t *Table) renderSeparator(w io.Writer) error {
	sep := make([]string, len(t.columns))
	for i := range sep {
		sep[i] = strings.Repeat("-", t.widths[i])
	}
	_, err := fmt.Fprintln(w, strings.Join(sep, " "))
	return err
}

// pad pads s to the width of column i
func (t *Table) pad(i int, s string) string {
	n := coloransi.VisibleLength(s)
	if n >= t.widths[i] {
		return s
	}
	fill := strings.Repeat(" ", t.widths[i]-n)
	if t.columns[i].AlignRight {
		return fill + s
	}
	return s + fill
}
