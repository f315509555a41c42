package squery

import (
	"fmt"
	"strings"
)

// Schema specs are single-line declarations such as
//
//	.name:String .pid:Int .time:Float sorted:pid
//
// parsed left to right without backtracking.

var typenames = map[string]Category{
	"Int":    Int,
	"Float":  Float,
	"String": Str,
}

const (
	sortKeyword   = "sort"
	sortedKeyword = "sorted"
)

// FromSpec parses a schema spec. On any error it returns a nil schema and an
// error wrapping [ErrInvalidSpec].
func FromSpec(text string) (*Schema, error) {
	var columns []Column
	pos := skipSpace(text, 0)
	for pos < len(text) && text[pos] == '.' {
		col, next, err := scanField(text, pos)
		if err != nil {
			return nil, err
		}
		columns = append(columns, col)
		pos = skipSpace(text, next)
	}

	var (
		keys   []int
		sorted bool
	)
	if pos < len(text) {
		var err error
		keys, sorted, pos, err = scanSortClause(text, pos, columns)
		if err != nil {
			return nil, err
		}
		pos = skipSpace(text, pos)
	}
	if pos < len(text) {
		return nil, specError(pos, "unexpected trailing input %q", text[pos:])
	}
	return NewSchema(columns, keys, sorted)
}

func specError(pos int, format string, args ...any) error {
	return fmt.Errorf("%w: offset %d: %s", ErrInvalidSpec, pos, fmt.Sprintf(format, args...))
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isNameByte(c byte) bool {
	return !isSpace(c) && c != ':' && c != '.' && c != ','
}

// skipSpace returns the first position at or after pos that is not whitespace.
func skipSpace(text string, pos int) int {
	for pos < len(text) && isSpace(text[pos]) {
		pos++
	}
	return pos
}

// scanName returns the maximal run of name bytes starting at pos.
func scanName(text string, pos int) (string, int, bool) {
	end := pos
	for end < len(text) && isNameByte(text[end]) {
		end++
	}
	return text[pos:end], end, end > pos
}

// expect consumes c at pos, after any whitespace.
func expect(text string, pos int, c byte) (int, bool) {
	pos = skipSpace(text, pos)
	if pos < len(text) && text[pos] == c {
		return pos + 1, true
	}
	return pos, false
}

// scanTypename reads a case-sensitive typename keyword.
func scanTypename(text string, pos int) (Category, int, error) {
	pos = skipSpace(text, pos)
	word, next, ok := scanName(text, pos)
	if !ok {
		return 0, pos, specError(pos, "missing typename")
	}
	c, ok := typenames[word]
	if !ok {
		return 0, pos, specError(pos, "unknown typename %q", word)
	}
	return c, next, nil
}

// scanField reads `.name:Type` starting at the dot.
func scanField(text string, pos int) (Column, int, error) {
	pos, ok := expect(text, pos, '.')
	if !ok {
		return Column{}, pos, specError(pos, "expected '.'")
	}
	pos = skipSpace(text, pos)
	name, pos, ok := scanName(text, pos)
	if !ok {
		return Column{}, pos, specError(pos, "missing field name")
	}
	pos, ok = expect(text, pos, ':')
	if !ok {
		return Column{}, pos, specError(pos, "expected ':' after field %q", name)
	}
	c, pos, err := scanTypename(text, pos)
	if err != nil {
		return Column{}, pos, err
	}
	return Column{Name: name, Category: c}, pos, nil
}

// scanSortClause reads `sort:a,b` or `sorted:a,b` and resolves each name
// against the first column with that name.
func scanSortClause(text string, pos int, columns []Column) ([]int, bool, int, error) {
	word, next, _ := scanName(text, pos)
	var sorted bool
	switch word {
	case sortKeyword:
	case sortedKeyword:
		sorted = true
	default:
		return nil, false, pos, specError(pos, "expected field or sort clause, got %q", word)
	}
	pos, ok := expect(text, next, ':')
	if !ok {
		return nil, false, pos, specError(pos, "expected ':' after %q", word)
	}

	var keys []int
	for {
		pos = skipSpace(text, pos)
		name, next, ok := scanName(text, pos)
		if !ok {
			return nil, false, pos, specError(pos, "missing sort key name")
		}
		idx := columnIndex(columns, name)
		if idx < 0 {
			return nil, false, pos, specError(pos, "sort key %q is not a declared field", name)
		}
		keys = append(keys, idx)
		pos = next
		if after, ok := expect(text, pos, ','); ok {
			pos = after
			continue
		}
		return keys, sorted, pos, nil
	}
}

func columnIndex(columns []Column, name string) int {
	for i, c := range columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Spec renders the schema back into spec text accepted by [FromSpec].
func (s *Schema) Spec() string {
	var sb strings.Builder
	for i, c := range s.columns {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, ".%s:%s", c.Name, c.Category)
	}
	if len(s.sortKeys) > 0 {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		if s.sorted {
			sb.WriteString(sortedKeyword)
		} else {
			sb.WriteString(sortKeyword)
		}
		sb.WriteByte(':')
		for i, k := range s.sortKeys {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(s.columns[k].Name)
		}
	}
	return sb.String()
}
