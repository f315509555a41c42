package squery

import (
	"fmt"
	"io"
	"strings"
)

// markdownRenderer pads every column to its widest cell, so it measures the
// whole table in prepare.
type markdownRenderer struct {
	w       io.Writer
	o       *sinkOptions
	header  []string
	aligns  []Alignment
	widths  []int
	started bool
}

func (r *markdownRenderer) schema(cols []Column) error {
	r.header = make([]string, len(cols))
	for i, c := range cols {
		r.header[i] = c.Name
	}
	r.aligns = columnAligns(r.o, cols)
	return nil
}

func (r *markdownRenderer) prepare(t *Table) error {
	acc := t.Random()
	// Minimum 3 for alignment markers.
	r.widths = make([]int, len(r.header))
	for i := range r.widths {
		r.widths[i] = 3
	}
	measure(r.widths, r.header)
	for i := range acc.NumRows() {
		row, err := acc.Row(i)
		if err != nil {
			return err
		}
		measure(r.widths, row.Strings())
	}
	return nil
}

func (r *markdownRenderer) begin() error {
	if r.started {
		return nil
	}
	r.started = true
	if err := writeMarkdownRow(r.w, r.header, r.widths, r.aligns); err != nil {
		return err
	}
	sep := make([]string, len(r.widths))
	for i, width := range r.widths {
		switch r.aligns[i] {
		case AlignRight:
			sep[i] = strings.Repeat("-", width-1) + ":"
		case AlignCenter:
			sep[i] = ":" + strings.Repeat("-", width-2) + ":"
		default:
			sep[i] = strings.Repeat("-", width)
		}
	}
	_, err := fmt.Fprintf(r.w, "| %s |\n", strings.Join(sep, " | "))
	return err
}

func (r *markdownRenderer) record(row *Row) error {
	if err := r.begin(); err != nil {
		return err
	}
	return writeMarkdownRow(r.w, row.Strings(), r.widths, r.aligns)
}

func (r *markdownRenderer) close() error { return r.begin() }

func writeMarkdownRow(w io.Writer, cells []string, widths []int, aligns []Alignment) error {
	padded := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		padded[i] = alignCell(cell, width, aligns[i])
	}
	_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(padded, " | "))
	return err
}
