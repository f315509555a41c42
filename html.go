package squery

import (
	"fmt"
	"html"
	"io"
)

type htmlRenderer struct {
	w      io.Writer
	o      *sinkOptions
	aligns []Alignment
}

func (r *htmlRenderer) schema(cols []Column) error {
	r.aligns = columnAligns(r.o, cols)
	if _, err := fmt.Fprintln(r.w, "<table>"); err != nil {
		return err
	}
	if r.o.title != "" {
		if _, err := fmt.Fprintf(r.w, "  <caption>%s</caption>\n", html.EscapeString(r.o.title)); err != nil {
			return err
		}
	}
	if r.o.noHeader {
		return nil
	}
	if _, err := fmt.Fprintln(r.w, "  <thead>"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(r.w, "    <tr>"); err != nil {
		return err
	}
	for i, col := range cols {
		style := alignStyle(r.aligns, i)
		if _, err := fmt.Fprintf(r.w, "      <th%s>%s</th>\n", style, html.EscapeString(col.Name)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(r.w, "    </tr>"); err != nil {
		return err
	}
	_, err := fmt.Fprintln(r.w, "  </thead>")
	return err
}

func (r *htmlRenderer) prepare(*Table) error {
	_, err := fmt.Fprintln(r.w, "  <tbody>")
	return err
}

func (r *htmlRenderer) record(row *Row) error {
	if _, err := fmt.Fprintln(r.w, "    <tr>"); err != nil {
		return err
	}
	for i, cell := range row.Strings() {
		style := alignStyle(r.aligns, i)
		if _, err := fmt.Fprintf(r.w, "      <td%s>%s</td>\n", style, html.EscapeString(cell)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(r.w, "    </tr>")
	return err
}

func (r *htmlRenderer) close() error {
	if _, err := fmt.Fprintln(r.w, "  </tbody>"); err != nil {
		return err
	}
	_, err := fmt.Fprintln(r.w, "</table>")
	return err
}

func alignStyle(aligns []Alignment, col int) string {
	if col >= len(aligns) {
		return ""
	}
	switch aligns[col] {
	case AlignRight:
		return ` style="text-align: right"`
	case AlignCenter:
		return ` style="text-align: center"`
	default:
		return ""
	}
}
