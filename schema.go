package squery

import (
	"fmt"
	"slices"
)

// Column is a named, typed column declaration.
type Column struct {
	Name     string
	Category Category
}

// Schema describes the columns of a table and the order its data claims to be
// sorted by. A Schema is immutable once built and is shared by pointer between
// every row and table that uses it.
type Schema struct {
	columns  []Column
	sortKeys []int
	sorted   bool
}

// NewSchema builds a schema. Every sort key must index an existing column.
// The sorted flag is recorded as given and never verified against the data.
func NewSchema(columns []Column, sortKeys []int, sorted bool) (*Schema, error) {
	for _, k := range sortKeys {
		if k < 0 || k >= len(columns) {
			return nil, fmt.Errorf("%w: key %d with %d columns", ErrSortKeyRange, k, len(columns))
		}
	}
	return &Schema{
		columns:  slices.Clone(columns),
		sortKeys: slices.Clone(sortKeys),
		sorted:   sorted,
	}, nil
}

// NumColumns returns the number of columns.
func (s *Schema) NumColumns() int { return len(s.columns) }

// Column returns the i-th column declaration.
func (s *Schema) Column(i int) Column { return s.columns[i] }

// Columns returns a copy of the column declarations.
func (s *Schema) Columns() []Column { return slices.Clone(s.columns) }

// Names returns the column names in order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.Name
	}
	return names
}

// Index returns the position of the first column called name, or -1.
func (s *Schema) Index(name string) int {
	return slices.IndexFunc(s.columns, func(c Column) bool { return c.Name == name })
}

// SortKeys returns a copy of the declared sort key column indices.
func (s *Schema) SortKeys() []int { return slices.Clone(s.sortKeys) }

// Sorted reports whether the source declared its data already sorted by the
// sort keys.
func (s *Schema) Sorted() bool { return s.sorted }

// CheckSchema reports whether a value of category c may be stored at column idx.
func (s *Schema) CheckSchema(idx int, c Category) bool {
	if idx < 0 || idx >= len(s.columns) {
		return false
	}
	return s.columns[idx].Category == c
}

// Equal reports whether s and other declare the same columns, sort keys and
// sorted flag.
func (s *Schema) Equal(other *Schema) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil {
		return false
	}
	return s.sorted == other.sorted &&
		slices.Equal(s.columns, other.columns) &&
		slices.Equal(s.sortKeys, other.sortKeys)
}
