package squery

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"strconv"
)

// jsonRenderer buffers the whole array and writes it once records end, so
// it can be indented in one pass. Each row is an object whose keys follow
// the schema's column order.
type jsonRenderer struct {
	w     io.Writer
	o     *sinkOptions
	cols  []Column
	body  bytes.Buffer
	count int
}

func (r *jsonRenderer) schema(cols []Column) error {
	r.cols = cols
	return nil
}

func (r *jsonRenderer) prepare(*Table) error { return nil }

func (r *jsonRenderer) record(row *Row) error {
	if r.count == 0 {
		r.body.WriteByte('[')
	} else {
		r.body.WriteByte(',')
	}
	r.count++
	return appendObject(&r.body, r.cols, row)
}

func (r *jsonRenderer) close() error {
	if r.count == 0 {
		r.body.WriteByte('[')
	}
	r.body.WriteByte(']')
	out := r.body.Bytes()
	if r.o.indent != "" {
		var indented bytes.Buffer
		if err := json.Indent(&indented, out, "", r.o.indent); err != nil {
			return err
		}
		out = indented.Bytes()
	}
	if _, err := r.w.Write(out); err != nil {
		return err
	}
	_, err := io.WriteString(r.w, "\n")
	return err
}

// appendObject writes row as a JSON object keyed by column name.
func appendObject(buf *bytes.Buffer, cols []Column, row *Row) error {
	buf.WriteByte('{')
	for i, c := range cols {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Name)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := jsonValue(row.ValueAt(i))
		if err != nil {
			return err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return nil
}

func jsonValue(v Value) ([]byte, error) {
	switch v.Kind() {
	case KindInt:
		n, _ := v.Int()
		return strconv.AppendInt(nil, n, 10), nil
	case KindFloat:
		f, _ := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			// JSON has no literal for these.
			return []byte("null"), nil
		}
		return json.Marshal(f)
	case KindStr:
		s, _ := v.Str()
		return json.Marshal(s)
	default:
		return []byte("null"), nil
	}
}
