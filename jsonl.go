package squery

import (
	"bytes"
	"io"
)

type jsonlRenderer struct {
	w    io.Writer
	cols []Column
}

func (r *jsonlRenderer) schema(cols []Column) error {
	r.cols = cols
	return nil
}

func (r *jsonlRenderer) prepare(*Table) error { return nil }

func (r *jsonlRenderer) record(row *Row) error {
	var buf bytes.Buffer
	if err := appendObject(&buf, r.cols, row); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := r.w.Write(buf.Bytes())
	return err
}

func (r *jsonlRenderer) close() error { return nil }
