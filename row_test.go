package squery_test

import (
	"testing"

	"github.com/38/squery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRowIsEmpty(t *testing.T) {
	t.Parallel()
	for _, spec := range []string{"", ".a:Int", ".a:Int .b:Float .c:String"} {
		s := mustSchema(t, spec)
		row := squery.NewRow(s)
		require.Equal(t, s.NumColumns(), row.Len())
		for i := range row.Len() {
			assert.True(t, row.ValueAt(i).IsNothing())
		}
		assert.Same(t, s, row.Schema())
	}
}

func TestRowSet(t *testing.T) {
	t.Parallel()
	s := mustSchema(t, ".name:String .pid:Int .time:Float")
	row := squery.NewRow(s)

	require.NoError(t, squery.Set(row, 0, "plumber"))
	require.NoError(t, squery.Set(row, 1, int64(12345)))
	require.NoError(t, squery.Set(row, 2, 1.0))

	assert.Equal(t, []squery.Value{
		squery.StrValue("plumber"),
		squery.IntValue(12345),
		squery.FloatValue(1.0),
	}, row.Values())
	assert.Equal(t, []string{"plumber", "12345", "1"}, row.Strings())
}

func TestRowSetMismatchLeavesRowUnchanged(t *testing.T) {
	t.Parallel()
	s := mustSchema(t, ".pid:Int .name:String")
	row := squery.NewRow(s)
	require.NoError(t, squery.Set(row, 0, int64(42)))
	before := row.Values()

	err := squery.Set(row, 0, "42")
	assert.ErrorIs(t, err, squery.ErrTypeMismatch)
	err = squery.Set(row, 0, 42.0)
	assert.ErrorIs(t, err, squery.ErrTypeMismatch)
	err = squery.Set(row, 1, int64(1))
	assert.ErrorIs(t, err, squery.ErrTypeMismatch)

	assert.Equal(t, before, row.Values())
}

func TestRowSetOutOfRange(t *testing.T) {
	t.Parallel()
	row := squery.NewRow(mustSchema(t, ".a:Int"))
	assert.ErrorIs(t, squery.Set(row, 1, int64(1)), squery.ErrColumnRange)
	assert.ErrorIs(t, squery.Set(row, -1, int64(1)), squery.ErrColumnRange)
	assert.True(t, row.ValueAt(0).IsNothing())
}

func TestRowSetValue(t *testing.T) {
	t.Parallel()
	row := squery.NewRow(mustSchema(t, ".a:Float"))
	require.NoError(t, row.SetValue(0, squery.FloatValue(0.25)))
	assert.ErrorIs(t, row.SetValue(0, squery.Value{}), squery.ErrTypeMismatch)
	assert.ErrorIs(t, row.SetValue(0, squery.IntValue(1)), squery.ErrTypeMismatch)
	assert.Equal(t, squery.FloatValue(0.25), row.ValueAt(0))
}

func TestRowValidateSchema(t *testing.T) {
	t.Parallel()
	a := mustSchema(t, ".a:Int")
	row := squery.NewRow(a)
	assert.True(t, row.ValidateSchema(a))
	assert.True(t, row.ValidateSchema(mustSchema(t, ".a:Int")))
	assert.False(t, row.ValidateSchema(mustSchema(t, ".a:String")))
}

func TestRowValuesIsCopy(t *testing.T) {
	t.Parallel()
	row := squery.NewRow(mustSchema(t, ".a:Int"))
	vals := row.Values()
	vals[0] = squery.IntValue(9)
	assert.True(t, row.ValueAt(0).IsNothing())
}
