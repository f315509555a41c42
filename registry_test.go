package squery_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/38/squery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRule(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name+".yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRegistryLookup(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeRule(t, dir, "wc", `
schema: .lines:Int .words:Int .chars:Int .file:String
separators: " "
skip: 1
args: ["-l"]
`)
	rule, err := squery.NewRegistry(dir).Lookup("/usr/bin/wc")
	require.NoError(t, err)
	assert.Equal(t, path, rule.Path)
	assert.Equal(t, 1, rule.Skip)
	assert.Equal(t, []string{"-l"}, rule.Args)

	s, err := rule.ParseSchema()
	require.NoError(t, err)
	assert.Equal(t, 4, s.NumColumns())
}

func TestRegistrySearchOrder(t *testing.T) {
	t.Parallel()
	empty := t.TempDir()
	first := t.TempDir()
	second := t.TempDir()
	writeRule(t, first, "ps", "schema: .pid:Int\n")
	writeRule(t, second, "ps", "schema: .pid:Int .tty:String\n")
	// A directory with the rule's name is not a rule.
	require.NoError(t, os.Mkdir(filepath.Join(empty, "ps.yml"), 0o755))

	reg := squery.NewRegistry(empty).AddPath(first).AddPath(second)
	assert.Equal(t, []string{empty, first, second}, reg.Paths())

	rule, err := reg.Lookup("ps")
	require.NoError(t, err)
	assert.Equal(t, ".pid:Int", rule.Schema)
}

func TestRegistryNotFound(t *testing.T) {
	t.Parallel()
	_, err := squery.NewRegistry(t.TempDir(), filepath.Join(t.TempDir(), "missing")).Lookup("ls")
	assert.ErrorIs(t, err, squery.ErrRuleNotFound)

	_, err = squery.NewRegistry().Lookup("ls")
	assert.ErrorIs(t, err, squery.ErrRuleNotFound)
}

func TestRegistryInvalidRules(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"unknown field":  "schema: .a:Int\nsep: \",\"\n",
		"missing schema": "skip: 2\n",
		"negative skip":  "schema: .a:Int\nskip: -1\n",
		"bad schema":     "schema: .a:Bool\n",
		"not yaml":       "schema: [\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			writeRule(t, dir, "prog", body)
			_, err := squery.NewRegistry(dir).Lookup("prog")
			assert.ErrorIs(t, err, squery.ErrInvalidRule)
		})
	}
}

func TestRuleTokenizer(t *testing.T) {
	t.Parallel()
	s := mustSchema(t, ".a:String .b:String")

	rule := &squery.Rule{Schema: ".a:String .b:String"}
	assert.Equal(t, []string{"x", "y"}, rule.Tokenizer().Split("x\ty", s))

	rule.Separators = ":"
	assert.Equal(t, []string{"x y", "z"}, rule.Tokenizer().Split("x y:z", s))
}
