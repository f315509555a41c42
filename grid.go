package squery

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Grid is a table rendered to display strings: one header row and the body.
type Grid struct {
	Header []string
	Body   [][]string
}

// GridSink collects a table into a [Grid]. It implements Output[*Grid] and
// can be dumped once; later dumps fail.
type GridSink struct {
	grid *Grid
}

var _ Output[*Grid] = (*GridSink)(nil)

// NewGridSink returns an empty grid sink.
func NewGridSink() *GridSink {
	return &GridSink{grid: &Grid{}}
}

func (s *GridSink) WriteSchema(t *Table) Result {
	if s.grid == nil {
		return Fail
	}
	s.grid.Header = t.Schema().Names()
	return Success
}

func (s *GridSink) Preprocess(*Table) Result { return Success }

func (s *GridSink) WriteRecords(t *Table) Result {
	if s.grid == nil {
		return Fail
	}
	for row := range t.Rows() {
		s.grid.Body = append(s.grid.Body, row.Strings())
	}
	if t.Err() != nil {
		return Fail
	}
	return Success
}

// OutputResult hands over the grid. The sink is spent afterwards.
func (s *GridSink) OutputResult() *Grid {
	g := s.grid
	s.grid = nil
	return g
}

// Layout returns the width of every column. Columns start at their widest
// cell; if the table including separators is narrower than minWidth the
// spare room is spread across the columns, and if it is wider than maxWidth
// the widest columns are narrowed. maxWidth wins when the two conflict. A
// zero maxWidth means no limit.
func (g *Grid) Layout(maxWidth, minWidth int) []int {
	widths := make([]int, len(g.Header))
	if len(widths) == 0 {
		return widths
	}
	measure(widths, g.Header)
	for _, row := range g.Body {
		measure(widths, row)
	}

	total := len(widths) + 1
	for _, w := range widths {
		total += w
	}
	if total < minWidth {
		rem := minWidth - total
		for i := range widths {
			widths[i] += rem / len(widths)
			if i < rem%len(widths) {
				widths[i]++
			}
		}
		total = minWidth
	}
	for maxWidth > 0 && total > maxWidth {
		widest := 0
		for i, w := range widths {
			if w > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= 1 {
			break
		}
		widths[widest]--
		total--
	}
	return widths
}

// Print writes the grid framed with +-| borders, one separator line after
// every row, each cell centered. Cells wider than their column wrap onto
// extra lines. A maxWidth of zero uses the terminal width when w is a
// terminal.
func (g *Grid) Print(w io.Writer, maxWidth, minWidth int) error {
	if maxWidth <= 0 {
		maxWidth, _ = TerminalWidth(w)
	}
	layout := g.Layout(maxWidth, minWidth)
	if err := printHLine(w, layout); err != nil {
		return err
	}
	if err := printGridRow(w, layout, g.Header); err != nil {
		return err
	}
	if err := printHLine(w, layout); err != nil {
		return err
	}
	for _, row := range g.Body {
		if err := printGridRow(w, layout, row); err != nil {
			return err
		}
		if err := printHLine(w, layout); err != nil {
			return err
		}
	}
	return nil
}

// TerminalWidth reports the column count of w if it is a terminal.
func TerminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, false
	}
	return width, true
}

func printHLine(w io.Writer, layout []int) error {
	var sb strings.Builder
	sb.WriteString("+")
	for _, width := range layout {
		sb.WriteString(strings.Repeat("-", width))
		sb.WriteString("+")
	}
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func printGridRow(w io.Writer, layout []int, cells []string) error {
	wrapped := make([][]string, len(layout))
	lines := 1
	for i, width := range layout {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		wrapped[i] = wrapCell(cell, width)
		lines = max(lines, len(wrapped[i]))
	}
	for line := range lines {
		var sb strings.Builder
		sb.WriteString("|")
		for i, width := range layout {
			text := ""
			if line < len(wrapped[i]) {
				text = wrapped[i][line]
			}
			sb.WriteString(alignCell(text, width, AlignCenter))
			sb.WriteString("|")
		}
		if _, err := fmt.Fprintln(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

func wrapCell(s string, width int) []string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return []string{s}
	}
	var lines []string
	for len(s) > 0 {
		line := runewidth.Truncate(s, width, "")
		if line == "" {
			// Safety: advance at least one rune to avoid infinite loop.
			line = string([]rune(s)[0])
		}
		lines = append(lines, line)
		s = s[len(line):]
	}
	return lines
}
