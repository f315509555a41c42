package squery

import (
	"fmt"
	"slices"
)

// Row is one record: exactly Schema().NumColumns() cells, each either Nothing
// or a value of its column's declared category.
type Row struct {
	schema *Schema
	cells  []Value
}

// NewRow returns a row bound to schema with every cell set to Nothing.
func NewRow(schema *Schema) *Row {
	return &Row{
		schema: schema,
		cells:  make([]Value, schema.NumColumns()),
	}
}

// Set stores v at column idx. The row is left untouched when idx is out of
// range or T does not map to the column's category.
func Set[T Primitive](r *Row, idx int, v T) error {
	return r.set(idx, CategoryOf[T](), ValueOf(v))
}

// SetValue stores v at column idx under the same rules as [Set]. Nothing has
// no category and is always rejected.
func (r *Row) SetValue(idx int, v Value) error {
	c, ok := v.Category()
	if !ok {
		return fmt.Errorf("%w: cannot store Nothing in column %d", ErrTypeMismatch, idx)
	}
	return r.set(idx, c, v)
}

func (r *Row) set(idx int, c Category, v Value) error {
	if !r.schema.CheckSchema(idx, c) {
		if idx < 0 || idx >= len(r.cells) {
			return fmt.Errorf("%w: %d of %d", ErrColumnRange, idx, len(r.cells))
		}
		col := r.schema.Column(idx)
		return fmt.Errorf("%w: column %q is %s, got %s", ErrTypeMismatch, col.Name, col.Category, c)
	}
	r.cells[idx] = v
	return nil
}

// ValueAt returns the cell at idx. It panics when idx is out of range.
func (r *Row) ValueAt(idx int) Value { return r.cells[idx] }

// Values returns a copy of the cells.
func (r *Row) Values() []Value { return slices.Clone(r.cells) }

// Len returns the number of cells.
func (r *Row) Len() int { return len(r.cells) }

// Schema returns the schema the row was built from.
func (r *Row) Schema() *Schema { return r.schema }

// ValidateSchema reports whether the row was built from schema, or from one
// structurally equal to it.
func (r *Row) ValidateSchema(schema *Schema) bool {
	return r.schema == schema || r.schema.Equal(schema)
}

// Strings returns the human readable text of every cell.
func (r *Row) Strings() []string {
	out := make([]string, len(r.cells))
	for i, v := range r.cells {
		out[i] = v.HumanReadable()
	}
	return out
}
