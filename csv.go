package squery

import (
	"encoding/csv"
	"io"
)

type csvRenderer struct {
	cw *csv.Writer
	o  *sinkOptions
}

func newCSVRenderer(w io.Writer, o *sinkOptions) *csvRenderer {
	cw := csv.NewWriter(w)
	cw.Comma = o.delimiter
	return &csvRenderer{cw: cw, o: o}
}

func (r *csvRenderer) schema(cols []Column) error {
	if r.o.noHeader {
		return nil
	}
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Name
	}
	return r.cw.Write(header)
}

func (r *csvRenderer) prepare(*Table) error { return nil }

func (r *csvRenderer) record(row *Row) error {
	return r.cw.Write(row.Strings())
}

func (r *csvRenderer) close() error {
	r.cw.Flush()
	return r.cw.Error()
}
