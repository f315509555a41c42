package squery

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
)

// Input produces a schema and typed rows from an external source. A source is
// drained by exactly one [Table].
type Input interface {
	// DetermineSchema is called once before any row is requested. The first
	// call returns the source's schema if it has one; every later call
	// returns (nil, nil).
	DetermineSchema() (*Schema, error)
	// ParseNextRow returns the next fully typed row. It returns io.EOF once
	// the source is exhausted and any other error when reading fails.
	ParseNextRow(schema *Schema) (*Row, error)
}

// LineSource yields physical lines. ReadLine returns io.EOF at the end.
type LineSource interface {
	ReadLine() (string, error)
}

type readerSource struct {
	br *bufio.Reader
}

// NewLineSource reads lines from r.
func NewLineSource(r io.Reader) LineSource {
	return &readerSource{br: bufio.NewReader(r)}
}

func (s *readerSource) ReadLine() (string, error) {
	line, err := s.br.ReadString('\n')
	if errors.Is(err, io.EOF) && line != "" {
		// Last line without a terminator.
		return line, nil
	}
	return line, err
}

// Tokenizer splits a line into at most schema.NumColumns() field substrings.
type Tokenizer interface {
	Split(line string, schema *Schema) []string
}

// SepTokenizer splits on any character of a separator set. Runs of
// separators count as one, and anything past the last column is ignored.
type SepTokenizer struct {
	ascii [utf8.RuneSelf]bool
	runes map[rune]bool // non-ASCII separators
}

// DefaultSeparators separates fields on spaces, tabs and line breaks.
const DefaultSeparators = " \t\r\n"

// NewSepTokenizer builds a tokenizer from the separator characters in seps.
func NewSepTokenizer(seps string) *SepTokenizer {
	t := &SepTokenizer{}
	for _, c := range seps {
		if c < utf8.RuneSelf {
			t.ascii[c] = true
			continue
		}
		if t.runes == nil {
			t.runes = make(map[rune]bool)
		}
		t.runes[c] = true
	}
	return t
}

// sepAt reports whether a separator starts at pos and how many bytes the
// character there occupies.
func (t *SepTokenizer) sepAt(line string, pos int) (bool, int) {
	if c := line[pos]; c < utf8.RuneSelf || t.runes == nil {
		return c < utf8.RuneSelf && t.ascii[c], 1
	}
	c, size := utf8.DecodeRuneInString(line[pos:])
	return t.runes[c], size
}

func (t *SepTokenizer) Split(line string, schema *Schema) []string {
	var fields []string
	pos := 0
	for len(fields) < schema.NumColumns() {
		for pos < len(line) {
			sep, size := t.sepAt(line, pos)
			if !sep {
				break
			}
			pos += size
		}
		if pos >= len(line) {
			break
		}
		start := pos
		for pos < len(line) {
			sep, size := t.sepAt(line, pos)
			if sep {
				break
			}
			pos += size
		}
		fields = append(fields, line[start:pos])
	}
	return fields
}

// Stats counts what a [LineReader] has seen so far.
type Stats struct {
	Lines     int // physical lines read, including skipped ones
	Blank     int // lines holding only a line terminator
	Discarded int // lines that did not form a valid row
	Emitted   int // rows returned
}

// LineReader is an [Input] reading one row per physical line.
type LineReader struct {
	src        LineSource
	tokenizer  Tokenizer
	schema     *Schema
	schemaLine bool
	skip       int
	passed     bool
	logger     *log.Entry
	stats      Stats
}

// LineReaderOption configures a [LineReader].
type LineReaderOption func(*LineReader)

// WithSchema declares the schema up front.
func WithSchema(s *Schema) LineReaderOption {
	return func(r *LineReader) { r.schema = s }
}

// WithSchemaLine makes the reader self-describing: the first line after any
// skipped lines is parsed as a schema spec.
func WithSchemaLine() LineReaderOption {
	return func(r *LineReader) { r.schemaLine = true }
}

// WithSkip drops the first n lines before anything else is read.
func WithSkip(n int) LineReaderOption {
	return func(r *LineReader) { r.skip = n }
}

// WithTokenizer replaces the default separator tokenizer.
func WithTokenizer(t Tokenizer) LineReaderOption {
	return func(r *LineReader) { r.tokenizer = t }
}

// WithLogger sets the logger discarded records are reported to.
func WithLogger(l *log.Entry) LineReaderOption {
	return func(r *LineReader) { r.logger = l }
}

// NewLineReader returns an Input over src.
func NewLineReader(src LineSource, opts ...LineReaderOption) *LineReader {
	r := &LineReader{
		src:       src,
		tokenizer: NewSepTokenizer(DefaultSeparators),
		logger:    log.NewEntry(log.StandardLogger()),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithField("component", "linereader")
	return r
}

// Stats returns the reader's counters.
func (r *LineReader) Stats() Stats { return r.stats }

func (r *LineReader) readLine() (string, error) {
	for r.skip > 0 {
		r.skip--
		if _, err := r.next(); err != nil {
			return "", err
		}
	}
	return r.next()
}

func (r *LineReader) next() (string, error) {
	line, err := r.src.ReadLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		return "", fmt.Errorf("read line %d: %w", r.stats.Lines+1, err)
	}
	r.stats.Lines++
	return line, nil
}

func (r *LineReader) DetermineSchema() (*Schema, error) {
	if r.passed {
		return nil, nil
	}
	r.passed = true
	if !r.schemaLine {
		return r.schema, nil
	}
	line, err := r.readLine()
	if err != nil {
		return nil, err
	}
	s, err := FromSpec(trimTerminator(line))
	if err != nil {
		r.logger.Debugf("line %d is not a schema spec: %v", r.stats.Lines, err)
		return nil, err
	}
	r.schema = s
	return s, nil
}

func (r *LineReader) ParseNextRow(schema *Schema) (*Row, error) {
	if !r.passed && r.schemaLine {
		// The schema line is never data. A line that is not a spec was still
		// consumed; only read failures stop here.
		if _, err := r.DetermineSchema(); err != nil && !errors.Is(err, ErrInvalidSpec) {
			return nil, err
		}
	}
	for {
		line, err := r.readLine()
		if err != nil {
			return nil, err
		}
		text := trimTerminator(line)
		if text == "" && line != "" {
			r.stats.Blank++
			continue
		}
		row, err := r.parseLine(text, schema)
		if err != nil {
			r.stats.Discarded++
			r.logger.WithField("line", r.stats.Lines).Debugf("discarding record: %v", err)
			continue
		}
		r.stats.Emitted++
		return row, nil
	}
}

func (r *LineReader) parseLine(text string, schema *Schema) (*Row, error) {
	fields := r.tokenizer.Split(text, schema)
	if len(fields) != schema.NumColumns() {
		return nil, fmt.Errorf("%d fields, schema has %d columns", len(fields), schema.NumColumns())
	}
	row := NewRow(schema)
	for i, field := range fields {
		v, err := parseField(field, schema.Column(i).Category)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", schema.Column(i).Name, err)
		}
		if err := row.SetValue(i, v); err != nil {
			return nil, err
		}
	}
	return row, nil
}

func parseField(field string, c Category) (Value, error) {
	switch c {
	case Int:
		n, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return Value{}, err
		}
		return IntValue(n), nil
	case Float:
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return Value{}, err
		}
		return FloatValue(f), nil
	default:
		return StrValue(field), nil
	}
}

func trimTerminator(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
