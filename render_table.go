package squery

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// BorderStyle selects the line-drawing characters of the table format.
type BorderStyle int

const (
	BorderRounded BorderStyle = iota // ╭─╮╰╯│┬┴├┤┼
	BorderNone                       // No borders, space-separated columns
	BorderASCII                      // +-+|
	BorderHeavy                      // ┏━┓┗┛┃┳┻┣┫╋
	BorderDouble                     // ╔═╗╚╝║╦╩╠╣╬
)

// Alignment positions text within a column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	topTee, bottomTee, leftTee, rightTee       string
	cross                                      string
}

var borderSets = map[BorderStyle]borderChars{
	BorderRounded: {
		topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
		horizontal: "─", vertical: "│",
		topTee: "┬", bottomTee: "┴", leftTee: "├", rightTee: "┤",
		cross: "┼",
	},
	BorderASCII: {
		topLeft: "+", topRight: "+", bottomLeft: "+", bottomRight: "+",
		horizontal: "-", vertical: "|",
		topTee: "+", bottomTee: "+", leftTee: "+", rightTee: "+",
		cross: "+",
	},
	BorderHeavy: {
		topLeft: "┏", topRight: "┓", bottomLeft: "┗", bottomRight: "┛",
		horizontal: "━", vertical: "┃",
		topTee: "┳", bottomTee: "┻", leftTee: "┣", rightTee: "┫",
		cross: "╋",
	},
	BorderDouble: {
		topLeft: "╔", topRight: "╗", bottomLeft: "╚", bottomRight: "╝",
		horizontal: "═", vertical: "║",
		topTee: "╦", bottomTee: "╩", leftTee: "╠", rightTee: "╣",
		cross: "╬",
	},
}

// tableRenderer measures every cell in prepare and only then draws, so a
// streaming table is materialized before the first line is written.
type tableRenderer struct {
	w       io.Writer
	o       *sinkOptions
	header  []string
	aligns  []Alignment
	widths  []int
	started bool
	n       int
}

func (r *tableRenderer) schema(cols []Column) error {
	r.aligns = columnAligns(r.o, cols)
	if !r.o.noHeader {
		r.header = make([]string, len(cols))
		for i, c := range cols {
			r.header[i] = c.Name
		}
	}
	if r.o.numbered {
		if r.header != nil {
			r.header = append([]string{r.o.numberHeader}, r.header...)
		}
		r.aligns = append([]Alignment{AlignRight}, r.aligns...)
	}
	return nil
}

func (r *tableRenderer) prepare(t *Table) error {
	acc := t.Random()
	numCols := len(r.aligns)
	r.widths = make([]int, numCols)
	measure(r.widths, r.header)
	for i := range acc.NumRows() {
		row, err := acc.Row(i)
		if err != nil {
			return err
		}
		measure(r.widths, r.cells(i+1, row))
	}
	for i, limit := range r.o.maxWidths {
		col := i
		if r.o.numbered {
			col++
		}
		if col < numCols && limit > 0 && r.widths[col] > limit {
			r.widths[col] = limit
		}
	}
	return nil
}

func measure(widths []int, cells []string) {
	for i, cell := range cells {
		if w := runewidth.StringWidth(cell); i < len(widths) && w > widths[i] {
			widths[i] = w
		}
	}
}

func (r *tableRenderer) cells(n int, row *Row) []string {
	cells := row.Strings()
	if r.o.numbered {
		cells = append([]string{strconv.Itoa(n)}, cells...)
	}
	return cells
}

func (r *tableRenderer) begin() error {
	if r.started {
		return nil
	}
	r.started = true
	if r.o.border == BorderNone {
		if len(r.header) == 0 {
			return nil
		}
		if err := writePlainRow(r.w, r.header, r.widths, r.aligns); err != nil {
			return err
		}
		return writePlainSep(r.w, r.widths)
	}
	bc := borderSets[r.o.border]
	if r.o.title != "" {
		if err := drawHLine(r.w, r.widths, bc.topLeft, bc.horizontal, bc.horizontal, bc.topRight); err != nil {
			return err
		}
		inner := tableInnerWidth(r.widths) - 2
		padded := alignCell(r.o.title, inner, AlignCenter)
		if _, err := fmt.Fprintf(r.w, "%s %s %s\n", bc.vertical, padded, bc.vertical); err != nil {
			return err
		}
		if err := drawHLine(r.w, r.widths, bc.leftTee, bc.horizontal, bc.topTee, bc.rightTee); err != nil {
			return err
		}
	} else {
		if err := drawHLine(r.w, r.widths, bc.topLeft, bc.horizontal, bc.topTee, bc.topRight); err != nil {
			return err
		}
	}
	if len(r.header) > 0 {
		if err := drawBorderedRow(r.w, r.header, r.widths, r.aligns, bc.vertical); err != nil {
			return err
		}
		return drawHLine(r.w, r.widths, bc.leftTee, bc.horizontal, bc.cross, bc.rightTee)
	}
	return nil
}

func (r *tableRenderer) record(row *Row) error {
	if r.widths == nil {
		return errors.New("table layout not measured")
	}
	if err := r.begin(); err != nil {
		return err
	}
	r.n++
	cells := r.cells(r.n, row)
	if r.o.border == BorderNone {
		return writePlainRow(r.w, cells, r.widths, r.aligns)
	}
	return drawBorderedRow(r.w, cells, r.widths, r.aligns, borderSets[r.o.border].vertical)
}

func (r *tableRenderer) close() error {
	if err := r.begin(); err != nil {
		return err
	}
	if r.o.border != BorderNone {
		bc := borderSets[r.o.border]
		if err := drawHLine(r.w, r.widths, bc.bottomLeft, bc.horizontal, bc.bottomTee, bc.bottomRight); err != nil {
			return err
		}
	}
	if r.o.caption != "" {
		if _, err := fmt.Fprintln(r.w, r.o.caption); err != nil {
			return err
		}
	}
	return nil
}

// tableInnerWidth is the width between the outer borders: padded cells plus
// one separator between each pair.
func tableInnerWidth(widths []int) int {
	n := 0
	for _, w := range widths {
		n += w + 2
	}
	if len(widths) > 1 {
		n += len(widths) - 1
	}
	return n
}

func drawHLine(w io.Writer, widths []int, left, fill, mid, right string) error {
	var sb strings.Builder
	sb.WriteString(left)
	for i, width := range widths {
		sb.WriteString(strings.Repeat(fill, width+2))
		if i < len(widths)-1 {
			sb.WriteString(mid)
		}
	}
	sb.WriteString(right)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func drawBorderedRow(w io.Writer, cells []string, widths []int, aligns []Alignment, vert string) error {
	var sb strings.Builder
	sb.WriteString(vert)
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		sb.WriteString(" ")
		sb.WriteString(formatTableCell(cell, width, aligns[i]))
		sb.WriteString(" ")
		if i < len(widths)-1 {
			sb.WriteString(vert)
		}
	}
	sb.WriteString(vert)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func writePlainSep(w io.Writer, widths []int) error {
	sep := make([]string, len(widths))
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}
	_, err := fmt.Fprintln(w, strings.Join(sep, "  "))
	return err
}

func writePlainRow(w io.Writer, cells []string, widths []int, aligns []Alignment) error {
	parts := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = formatTableCell(cell, width, aligns[i])
	}
	line := strings.TrimRight(strings.Join(parts, "  "), " ")
	_, err := fmt.Fprintln(w, line)
	return err
}

func formatTableCell(s string, width int, align Alignment) string {
	if width > 0 && runewidth.StringWidth(s) > width {
		if width <= 3 {
			s = runewidth.Truncate(s, width, "")
		} else {
			s = runewidth.Truncate(s, width, "...")
		}
	}
	return alignCell(s, width, align)
}

func alignCell(s string, width int, align Alignment) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	case AlignCenter:
		left := pad / 2
		right := pad - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default:
		return s + strings.Repeat(" ", pad)
	}
}
