package squery

import (
	"bytes"
	"fmt"
	"io"
)

// renderer is the per-format half of a [Sink]. Each method backs one stage
// of the [Output] protocol; record is called once per row.
type renderer interface {
	schema(cols []Column) error
	prepare(t *Table) error
	record(row *Row) error
	close() error
}

// Sink renders a table into one of the text formats. It implements
// Output[[]byte].
type Sink struct {
	format Format
	opts   sinkOptions
	buf    bytes.Buffer
	r      renderer
	err    error
}

var _ Output[[]byte] = (*Sink)(nil)

// NewSink returns a sink for format f.
func NewSink(f Format, opts ...SinkOption) (*Sink, error) {
	s := &Sink{format: f, opts: sinkOptions{delimiter: ','}}
	for _, opt := range opts {
		opt(&s.opts)
	}
	r, err := newRenderer(f, &s.buf, &s.opts)
	if err != nil {
		return nil, err
	}
	s.r = r
	return s, nil
}

func newRenderer(f Format, w io.Writer, o *sinkOptions) (renderer, error) {
	switch f {
	case TextTable:
		return &tableRenderer{w: w, o: o}, nil
	case Markdown:
		return &markdownRenderer{w: w, o: o}, nil
	case CSV:
		return newCSVRenderer(w, o), nil
	case TSV:
		return &tsvRenderer{w: w, o: o}, nil
	case JSON:
		return &jsonRenderer{w: w, o: o}, nil
	case JSONL:
		return &jsonlRenderer{w: w}, nil
	case YAML:
		return &yamlRenderer{w: w, o: o}, nil
	case HTML:
		return &htmlRenderer{w: w, o: o}, nil
	case Plain:
		return &plainRenderer{w: w}, nil
	default:
		if tmpl, ok := cutTemplate(f); ok {
			return newTemplateRenderer(w, tmpl)
		}
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Format returns the sink's format.
func (s *Sink) Format() Format { return s.format }

// Err returns the error that made a stage fail.
func (s *Sink) Err() error { return s.err }

func (s *Sink) fail(err error) Result {
	s.err = err
	return Fail
}

func (s *Sink) WriteSchema(t *Table) Result {
	if err := s.r.schema(t.Schema().Columns()); err != nil {
		return s.fail(fmt.Errorf("write schema: %w", err))
	}
	return Success
}

func (s *Sink) Preprocess(t *Table) Result {
	if err := s.r.prepare(t); err != nil {
		return s.fail(fmt.Errorf("preprocess: %w", err))
	}
	return Success
}

func (s *Sink) WriteRecords(t *Table) Result {
	for row := range t.Rows() {
		if err := s.r.record(row); err != nil {
			return s.fail(fmt.Errorf("write record: %w", err))
		}
	}
	if err := t.Err(); err != nil {
		return s.fail(fmt.Errorf("read source: %w", err))
	}
	if err := s.r.close(); err != nil {
		return s.fail(fmt.Errorf("finish: %w", err))
	}
	return Success
}

// OutputResult returns the rendered bytes.
func (s *Sink) OutputResult() []byte { return s.buf.Bytes() }

// --- Options ---

type sinkOptions struct {
	border       BorderStyle
	aligns       []Alignment
	title        string
	caption      string
	numbered     bool
	numberHeader string
	maxWidths    []int
	delimiter    rune
	indent       string
	noHeader     bool
}

// SinkOption configures a [Sink].
type SinkOption func(*sinkOptions)

// WithBorder sets the table border style. Default: BorderRounded.
func WithBorder(b BorderStyle) SinkOption {
	return func(o *sinkOptions) { o.border = b }
}

// WithAlignments sets per-column alignment for table, markdown and HTML.
// Default: numeric columns right aligned, strings left aligned.
func WithAlignments(a ...Alignment) SinkOption {
	return func(o *sinkOptions) { o.aligns = a }
}

// WithTitle renders a title above the table.
func WithTitle(title string) SinkOption {
	return func(o *sinkOptions) { o.title = title }
}

// WithCaption renders a line below the table.
func WithCaption(caption string) SinkOption {
	return func(o *sinkOptions) { o.caption = caption }
}

// WithRowNumbers prepends a row number column with the given header.
func WithRowNumbers(header string) SinkOption {
	return func(o *sinkOptions) {
		o.numbered = true
		o.numberHeader = header
	}
}

// WithMaxWidths caps table column widths. Longer cells are truncated with
// "...". A zero means no limit for that column.
func WithMaxWidths(widths ...int) SinkOption {
	return func(o *sinkOptions) { o.maxWidths = widths }
}

// WithDelimiter sets the CSV field delimiter. Default: comma.
func WithDelimiter(r rune) SinkOption {
	return func(o *sinkOptions) { o.delimiter = r }
}

// WithIndent indents JSON and YAML output.
func WithIndent(indent string) SinkOption {
	return func(o *sinkOptions) { o.indent = indent }
}

// WithoutHeader omits the header row from CSV, TSV and table output.
func WithoutHeader() SinkOption {
	return func(o *sinkOptions) { o.noHeader = true }
}

// columnAligns returns the configured alignments, or the defaults for cols.
func columnAligns(o *sinkOptions, cols []Column) []Alignment {
	if o.aligns != nil {
		return extendAligns(o.aligns, len(cols))
	}
	aligns := make([]Alignment, len(cols))
	for i, c := range cols {
		if c.Category != Str {
			aligns[i] = AlignRight
		}
	}
	return aligns
}

func extendAligns(aligns []Alignment, numCols int) []Alignment {
	if len(aligns) >= numCols {
		return aligns[:numCols]
	}
	extended := make([]Alignment, numCols)
	copy(extended, aligns)
	return extended
}
