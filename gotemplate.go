package squery

import (
	"fmt"
	"io"
	"strings"
	"text/template"
)

// templateRenderer executes a template once per row. The row is passed as a
// map from column name to the cell's Go value (int64, float64, string or
// nil), so {{.pid}} prints the pid column.
type templateRenderer struct {
	w    io.Writer
	tmpl *template.Template
	cols []Column
}

func cutTemplate(f Format) (string, bool) {
	return strings.CutPrefix(string(f), goTemplatePrefix)
}

func newTemplateRenderer(w io.Writer, tmplStr string) (*templateRenderer, error) {
	tmpl, err := template.New("").Parse(tmplStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTemplate, err)
	}
	return &templateRenderer{w: w, tmpl: tmpl}, nil
}

func (r *templateRenderer) schema(cols []Column) error {
	r.cols = cols
	return nil
}

func (r *templateRenderer) prepare(*Table) error { return nil }

func (r *templateRenderer) record(row *Row) error {
	data := make(map[string]any, len(r.cols))
	for i := len(r.cols) - 1; i >= 0; i-- {
		// Walk backwards so the first of duplicate names wins.
		data[r.cols[i].Name] = row.ValueAt(i).Any()
	}
	if err := r.tmpl.Execute(r.w, data); err != nil {
		return err
	}
	_, err := fmt.Fprintln(r.w)
	return err
}

func (r *templateRenderer) close() error { return nil }
