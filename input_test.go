package squery_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/38/squery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSourceBroken = errors.New("source broken")

// lineSlice is a LineSource over fixed lines that fails with err, or io.EOF
// when err is nil, once the lines run out.
type lineSlice struct {
	lines []string
	err   error
}

func (s *lineSlice) ReadLine() (string, error) {
	if len(s.lines) == 0 {
		if s.err != nil {
			return "", s.err
		}
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func reader(t *testing.T, spec, text string, opts ...squery.LineReaderOption) (*squery.LineReader, *squery.Schema) {
	t.Helper()
	s := mustSchema(t, spec)
	opts = append([]squery.LineReaderOption{squery.WithSchema(s)}, opts...)
	return squery.NewLineReader(squery.NewLineSource(strings.NewReader(text)), opts...), s
}

func drainRows(t *testing.T, in squery.Input, s *squery.Schema) ([][]squery.Value, error) {
	t.Helper()
	var rows [][]squery.Value
	for {
		row, err := in.ParseNextRow(s)
		if err != nil {
			return rows, err
		}
		rows = append(rows, row.Values())
	}
}

func TestLineReaderPsLine(t *testing.T) {
	t.Parallel()
	r, s := reader(t, ".name:String .pid:Int .time:Float", "plumber 12345 1.0\n",
		squery.WithTokenizer(squery.NewSepTokenizer(" \t\n")))

	row, err := r.ParseNextRow(s)
	require.NoError(t, err)
	assert.Equal(t, []squery.Value{
		squery.StrValue("plumber"),
		squery.IntValue(12345),
		squery.FloatValue(1.0),
	}, row.Values())

	_, err = r.ParseNextRow(s)
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineReaderSkipsInvalidRecords(t *testing.T) {
	t.Parallel()
	text := "3 10 42 a.txt\n" +
		"\n" +
		"x 10 42 bad.txt\n" +
		"1 2\n" +
		"\r\n" +
		"5 12 50 b.txt\n" +
		"7 1 9 c.txt"
	r, s := reader(t, ".lines:Int .words:Int .chars:Int .file:String", text)

	rows, err := drainRows(t, r, s)
	assert.ErrorIs(t, err, io.EOF)
	require.Len(t, rows, 3)
	assert.Equal(t, squery.StrValue("a.txt"), rows[0][3])
	assert.Equal(t, squery.StrValue("b.txt"), rows[1][3])
	assert.Equal(t, squery.StrValue("c.txt"), rows[2][3])

	assert.Equal(t, squery.Stats{Lines: 7, Blank: 2, Discarded: 2, Emitted: 3}, r.Stats())
}

func TestLineReaderIgnoresExtraFields(t *testing.T) {
	t.Parallel()
	r, s := reader(t, ".pid:Int .cmd:String", "1 bash --login\n")
	row, err := r.ParseNextRow(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "bash"}, row.Strings())
}

func TestLineReaderDeclaredSchemaOnce(t *testing.T) {
	t.Parallel()
	r, s := reader(t, ".a:Int", "1\n")

	got, err := r.DetermineSchema()
	require.NoError(t, err)
	assert.Same(t, s, got)

	got, err = r.DetermineSchema()
	require.NoError(t, err)
	assert.Nil(t, got)

	// Nothing was consumed by either call.
	row, err := r.ParseNextRow(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, row.Strings())
}

func TestLineReaderSchemaLine(t *testing.T) {
	t.Parallel()
	text := ".name:String .n:Int\nfoo 1\nbar 2\n"
	r := squery.NewLineReader(squery.NewLineSource(strings.NewReader(text)), squery.WithSchemaLine())

	s, err := r.DetermineSchema()
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, []string{"name", "n"}, s.Names())

	again, err := r.DetermineSchema()
	require.NoError(t, err)
	assert.Nil(t, again)

	rows, err := drainRows(t, r, s)
	assert.ErrorIs(t, err, io.EOF)
	assert.Len(t, rows, 2)
}

func TestLineReaderBadSchemaLineIsConsumed(t *testing.T) {
	t.Parallel()
	text := "NAME PID\nfoo 1\n"
	r := squery.NewLineReader(squery.NewLineSource(strings.NewReader(text)), squery.WithSchemaLine())

	s, err := r.DetermineSchema()
	assert.ErrorIs(t, err, squery.ErrInvalidSpec)
	assert.Nil(t, s)

	// The caller supplies the schema instead; the header line is gone.
	external := mustSchema(t, ".name:String .pid:Int")
	rows, err := drainRows(t, r, external)
	assert.ErrorIs(t, err, io.EOF)
	require.Len(t, rows, 1)
	assert.Equal(t, squery.StrValue("foo"), rows[0][0])
	assert.Equal(t, 0, r.Stats().Discarded)
}

func TestLineReaderSchemaLineWithoutDetermine(t *testing.T) {
	t.Parallel()
	text := ".n:Int\n1\n"
	r := squery.NewLineReader(squery.NewLineSource(strings.NewReader(text)), squery.WithSchemaLine())
	s := mustSchema(t, ".n:Int")
	rows, err := drainRows(t, r, s)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, [][]squery.Value{{squery.IntValue(1)}}, rows)
}

func TestLineReaderSkip(t *testing.T) {
	t.Parallel()
	text := "  PID TTY\n  1 tty1\n  2 tty2\n"
	r, s := reader(t, ".pid:Int .tty:String", text, squery.WithSkip(1))
	rows, err := drainRows(t, r, s)
	assert.ErrorIs(t, err, io.EOF)
	assert.Len(t, rows, 2)
	assert.Equal(t, 0, r.Stats().Discarded)
	assert.Equal(t, 3, r.Stats().Lines)
}

func TestLineReaderSourceError(t *testing.T) {
	t.Parallel()
	s := mustSchema(t, ".a:Int")
	src := &lineSlice{lines: []string{"1\n", "oops\n"}, err: errSourceBroken}
	r := squery.NewLineReader(src, squery.WithSchema(s))

	rows, err := drainRows(t, r, s)
	assert.Len(t, rows, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, errSourceBroken)
	assert.NotErrorIs(t, err, io.EOF)
	assert.Equal(t, 1, r.Stats().Discarded)
}

func TestLineReaderCustomTokenizer(t *testing.T) {
	t.Parallel()
	r, s := reader(t, ".user:String .uid:Int", "root:0\nbin:1\n",
		squery.WithTokenizer(squery.NewSepTokenizer(":")))
	rows, err := drainRows(t, r, s)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, [][]squery.Value{
		{squery.StrValue("root"), squery.IntValue(0)},
		{squery.StrValue("bin"), squery.IntValue(1)},
	}, rows)
}

func TestLineReaderEmptySchema(t *testing.T) {
	t.Parallel()
	r, s := reader(t, "", "anything\n")
	row, err := r.ParseNextRow(s)
	require.NoError(t, err)
	assert.Equal(t, 0, row.Len())
}

func TestSepTokenizerMultiByteSeparator(t *testing.T) {
	t.Parallel()
	s := mustSchema(t, ".a:String .b:String .c:String")
	tests := map[string]struct {
		seps string
		line string
		want []string
	}{
		"box drawing":        {seps: "│", line: "x─y│z", want: []string{"x─y", "z"}},
		"shared lead byte":   {seps: "│", line: "─│─│─", want: []string{"─", "─", "─"}},
		"mixed with ascii":   {seps: "│ ", line: " a │ b│c ", want: []string{"a", "b", "c"}},
		"non-ascii field":    {seps: " ", line: "名前 │ x", want: []string{"名前", "│", "x"}},
		"separator run":      {seps: "·", line: "··a···b", want: []string{"a", "b"}},
		"only separators":    {seps: "│", line: "│││", want: nil},
		"invalid utf8 field": {seps: "│", line: "\xff│b", want: []string{"\xff", "b"}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, squery.NewSepTokenizer(tt.seps).Split(tt.line, s))
		})
	}
}

// failFirst fails its first read and then serves lines.
type failFirst struct {
	failed bool
	lines  lineSlice
}

func (s *failFirst) ReadLine() (string, error) {
	if !s.failed {
		s.failed = true
		return "", errSourceBroken
	}
	return s.lines.ReadLine()
}

func TestLineReaderSchemaLineReadFailure(t *testing.T) {
	t.Parallel()
	src := &failFirst{lines: lineSlice{lines: []string{"1\n"}}}
	r := squery.NewLineReader(src, squery.WithSchemaLine())

	_, err := r.ParseNextRow(mustSchema(t, ".n:Int"))
	assert.ErrorIs(t, err, errSourceBroken)
	assert.Equal(t, 0, r.Stats().Emitted)
}
