package squery_test

import (
	"testing"

	"github.com/38/squery"
	"github.com/stretchr/testify/assert"
)

func TestHumanReadable(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		v    squery.Value
		want string
	}{
		"nothing":        {v: squery.Value{}, want: ""},
		"int":            {v: squery.IntValue(12345), want: "12345"},
		"negative int":   {v: squery.IntValue(-7), want: "-7"},
		"float":          {v: squery.FloatValue(1.5), want: "1.5"},
		"integral float": {v: squery.FloatValue(1.0), want: "1"},
		"string":         {v: squery.StrValue("plumber"), want: "plumber"},
		"empty string":   {v: squery.StrValue(""), want: ""},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.v.HumanReadable())
			assert.Equal(t, tt.want, tt.v.String())
		})
	}
}

func TestValueZeroIsNothing(t *testing.T) {
	t.Parallel()
	var v squery.Value
	assert.True(t, v.IsNothing())
	assert.Equal(t, squery.KindNothing, v.Kind())
	assert.Nil(t, v.Any())
	_, ok := v.Category()
	assert.False(t, ok)
}

func TestCategoryOf(t *testing.T) {
	t.Parallel()
	assert.Equal(t, squery.Int, squery.CategoryOf[int64]())
	assert.Equal(t, squery.Float, squery.CategoryOf[float64]())
	assert.Equal(t, squery.Str, squery.CategoryOf[string]())
}

func TestValueOf(t *testing.T) {
	t.Parallel()
	assert.Equal(t, squery.IntValue(3), squery.ValueOf(int64(3)))
	assert.Equal(t, squery.FloatValue(2.5), squery.ValueOf(2.5))
	assert.Equal(t, squery.StrValue("x"), squery.ValueOf("x"))

	n, ok := squery.ValueOf(int64(3)).Int()
	assert.True(t, ok)
	assert.Equal(t, int64(3), n)
	_, ok = squery.ValueOf("x").Int()
	assert.False(t, ok)
}

func TestCategoryString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Int", squery.Int.String())
	assert.Equal(t, "Float", squery.Float.String())
	assert.Equal(t, "String", squery.Str.String())
	assert.Equal(t, "Category(9)", squery.Category(9).String())
}
