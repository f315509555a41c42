package squery

import (
	"strconv"
)

// Category is the declared type of a column.
type Category int

const (
	Int Category = iota
	Float
	Str
)

var categoryNames = map[Category]string{
	Int:   "Int",
	Float: "Float",
	Str:   "String",
}

// String returns the mini-language typename of the category.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Category(" + strconv.Itoa(int(c)) + ")"
}

// Kind tags the variant held by a [Value].
type Kind int

const (
	KindNothing Kind = iota
	KindInt
	KindFloat
	KindStr
)

// Value is a single cell. The zero Value holds nothing.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// Primitive is the set of Go types a cell can be assigned from.
type Primitive interface {
	int64 | float64 | string
}

// CategoryOf maps a Go type to the column category it may be stored in.
func CategoryOf[T Primitive]() Category {
	var zero T
	switch any(zero).(type) {
	case int64:
		return Int
	case float64:
		return Float
	default:
		return Str
	}
}

// ValueOf wraps v in the matching Value variant.
func ValueOf[T Primitive](v T) Value {
	switch x := any(v).(type) {
	case int64:
		return IntValue(x)
	case float64:
		return FloatValue(x)
	default:
		return StrValue(any(v).(string))
	}
}

func IntValue(v int64) Value     { return Value{kind: KindInt, i: v} }
func FloatValue(v float64) Value { return Value{kind: KindFloat, f: v} }
func StrValue(v string) Value    { return Value{kind: KindStr, s: v} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNothing reports whether v is empty.
func (v Value) IsNothing() bool { return v.kind == KindNothing }

// Int returns the integer payload and whether v holds one.
func (v Value) Int() (int64, bool) { return v.i, v.kind == KindInt }

// Float returns the float payload and whether v holds one.
func (v Value) Float() (float64, bool) { return v.f, v.kind == KindFloat }

// Str returns the string payload and whether v holds one.
func (v Value) Str() (string, bool) { return v.s, v.kind == KindStr }

// Category returns the column category v belongs to. Nothing has none.
func (v Value) Category() (Category, bool) {
	switch v.kind {
	case KindInt:
		return Int, true
	case KindFloat:
		return Float, true
	case KindStr:
		return Str, true
	default:
		return 0, false
	}
}

// HumanReadable renders the value as display text. Nothing renders as "".
func (v Value) HumanReadable() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindStr:
		return v.s
	default:
		return ""
	}
}

func (v Value) String() string { return v.HumanReadable() }

// Any returns the payload as a plain Go value, nil for Nothing.
func (v Value) Any() any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindStr:
		return v.s
	default:
		return nil
	}
}
