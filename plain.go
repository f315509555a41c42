package squery

import (
	"fmt"
	"io"
	"strings"
)

// plainRenderer writes each row's cells separated by single spaces, with no
// header. The result reads back through a LineReader with the same schema
// as long as no string cell contains a separator.
type plainRenderer struct {
	w io.Writer
}

func (r *plainRenderer) schema([]Column) error { return nil }
func (r *plainRenderer) prepare(*Table) error  { return nil }
func (r *plainRenderer) close() error          { return nil }

func (r *plainRenderer) record(row *Row) error {
	_, err := fmt.Fprintln(r.w, strings.Join(row.Strings(), " "))
	return err
}
