package squery

import (
	"fmt"
	"io"
	"strings"
)

type tsvRenderer struct {
	w io.Writer
	o *sinkOptions
}

func (r *tsvRenderer) schema(cols []Column) error {
	if r.o.noHeader {
		return nil
	}
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	_, err := fmt.Fprintln(r.w, strings.Join(names, "\t"))
	return err
}

func (r *tsvRenderer) prepare(*Table) error { return nil }

func (r *tsvRenderer) record(row *Row) error {
	_, err := fmt.Fprintln(r.w, strings.Join(row.Strings(), "\t"))
	return err
}

func (r *tsvRenderer) close() error { return nil }
