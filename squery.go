package squery

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Sentinel errors for programmatic error handling.
var (
	ErrInvalidSpec       = errors.New("invalid schema spec")
	ErrSortKeyRange      = errors.New("sort key out of range")
	ErrTypeMismatch      = errors.New("type mismatch")
	ErrColumnRange       = errors.New("column index out of range")
	ErrRowRange          = errors.New("row index out of range")
	ErrSchemaMismatch    = errors.New("row schema does not match table")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrInvalidTemplate   = errors.New("invalid template")
	ErrOutputFailed      = errors.New("output failed")
	ErrRuleNotFound      = errors.New("schema rule not found")
	ErrInvalidRule       = errors.New("invalid schema rule")
)

// Format represents an output format.
type Format string

const (
	TextTable Format = "table"
	Markdown  Format = "markdown"
	CSV       Format = "csv"
	TSV       Format = "tsv"
	JSON      Format = "json"
	JSONL     Format = "jsonl"
	YAML      Format = "yaml"
	HTML      Format = "html"
	Plain     Format = "plain"
)

const goTemplatePrefix = "go-template="

var formats = []Format{TextTable, Markdown, CSV, TSV, JSON, JSONL, YAML, HTML, Plain}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported static format names.
// GoTemplate is not included because it is parameterized.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// GoTemplate returns a Format that renders each row through a Go
// text/template. The row is exposed as a map from column name to value.
func GoTemplate(tmpl string) Format {
	return Format(goTemplatePrefix + tmpl)
}

// ParseFormat parses a format string. Recognizes all static formats and
// go-template=<tmpl> strings.
func ParseFormat(s string) (Format, error) {
	if strings.HasPrefix(s, goTemplatePrefix) {
		return Format(s), nil
	}
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Render dumps t in format f and writes the result to w.
func Render(w io.Writer, f Format, t *Table, opts ...SinkOption) error {
	data, err := Marshal(f, t, opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Marshal dumps t in format f and returns the bytes.
func Marshal(f Format, t *Table, opts ...SinkOption) ([]byte, error) {
	sink, err := NewSink(f, opts...)
	if err != nil {
		return nil, err
	}
	out, ok := Dump[[]byte](t, sink)
	if !ok {
		return nil, fmt.Errorf("%w: %s: %w", ErrOutputFailed, f, sink.Err())
	}
	return out, nil
}
