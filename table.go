package squery

import (
	"errors"
	"fmt"
	"io"
	"iter"

	log "github.com/sirupsen/logrus"
)

// stream is the bound source of a table that has not been drained yet.
type stream struct {
	input  Input
	retain bool
	done   bool
}

// Table holds rows of a single schema. A table is either streaming, pulling
// rows from a bound [Input] on demand, or materialized with every row in
// memory. The only transition is streaming to materialized, made by [Table.Random].
type Table struct {
	schema *Schema
	rows   []*Row
	src    *stream // nil once materialized
	cursor int
	err    error
}

// NewTable returns an empty materialized table. Rows are added through
// [Accessor.Append].
func NewTable(schema *Schema) *Table {
	return &Table{schema: schema}
}

// NewStreamingTable binds input to a new table. With retain set every pulled
// row is kept; otherwise a single slot is reused and at most one row is ever
// resident.
func NewStreamingTable(schema *Schema, input Input, retain bool) *Table {
	return &Table{
		schema: schema,
		src:    &stream{input: input, retain: retain},
	}
}

// Schema returns the table's schema.
func (t *Table) Schema() *Schema { return t.schema }

// NumColumns returns the number of columns in the schema.
func (t *Table) NumColumns() int { return t.schema.NumColumns() }

// NumRows returns the number of resident rows.
func (t *Table) NumRows() int { return len(t.rows) }

// Streaming reports whether the table is still bound to a source.
func (t *Table) Streaming() bool { return t.src != nil }

// Err returns the error that ended the source, or nil if it ended cleanly.
func (t *Table) Err() error { return t.err }

// Rows returns a forward-only sequence of rows. On a materialized table it
// advances a cursor over the resident rows; on a streaming table it pulls
// from the source. An exhausted sequence stays exhausted.
//
// With retain off the yielded row is overwritten by the next pull.
func (t *Table) Rows() iter.Seq[*Row] {
	return func(yield func(*Row) bool) {
		for {
			row, ok := t.next()
			if !ok || !yield(row) {
				return
			}
		}
	}
}

func (t *Table) next() (*Row, bool) {
	if t.src == nil {
		if t.cursor >= len(t.rows) {
			return nil, false
		}
		t.cursor++
		return t.rows[t.cursor-1], true
	}
	row, ok := t.pull()
	if !ok {
		return nil, false
	}
	if len(t.rows) == 0 || t.src.retain {
		t.rows = append(t.rows, row)
	} else {
		t.rows[0] = row
	}
	return row, true
}

func (t *Table) pull() (*Row, bool) {
	if t.src.done {
		return nil, false
	}
	row, err := t.src.input.ParseNextRow(t.schema)
	if err == nil && !row.ValidateSchema(t.schema) {
		err = fmt.Errorf("%w: source row has schema %q", ErrSchemaMismatch, row.Schema().Spec())
	}
	if err != nil {
		t.src.done = true
		if !errors.Is(err, io.EOF) {
			t.err = err
			log.WithError(err).Debug("table source failed")
		}
		return nil, false
	}
	return row, true
}

// drain pulls the rest of the source into memory and unbinds it.
func (t *Table) drain() {
	if t.src == nil {
		return
	}
	n := len(t.rows)
	for {
		row, ok := t.pull()
		if !ok {
			break
		}
		t.rows = append(t.rows, row)
	}
	t.src = nil
	log.Debugf("table materialized: %d rows drained, %d resident", len(t.rows)-n, len(t.rows))
}

// Random drains any bound source and returns random access to the rows.
func (t *Table) Random() *Accessor {
	t.drain()
	return &Accessor{t: t}
}

// Accessor gives random access to a materialized table.
type Accessor struct {
	t *Table
}

// NumRows returns the number of rows.
func (a *Accessor) NumRows() int { return len(a.t.rows) }

// NumColumns returns the number of columns.
func (a *Accessor) NumColumns() int { return a.t.NumColumns() }

// Row returns the i-th row.
func (a *Accessor) Row(i int) (*Row, error) {
	if i < 0 || i >= len(a.t.rows) {
		return nil, fmt.Errorf("%w: %d of %d", ErrRowRange, i, len(a.t.rows))
	}
	return a.t.rows[i], nil
}

// Cell returns the value at row, col.
func (a *Accessor) Cell(row, col int) (Value, error) {
	r, err := a.Row(row)
	if err != nil {
		return Value{}, err
	}
	if col < 0 || col >= r.Len() {
		return Value{}, fmt.Errorf("%w: %d of %d", ErrColumnRange, col, r.Len())
	}
	return r.ValueAt(col), nil
}

// Append adds row to the table. The row must have been built from the
// table's schema or one equal to it.
func (a *Accessor) Append(row *Row) error {
	if !row.ValidateSchema(a.t.schema) {
		return ErrSchemaMismatch
	}
	a.t.rows = append(a.t.rows, row)
	return nil
}
