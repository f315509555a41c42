package squery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Rule describes how to read the output of one program. Rules live in
// <path>/<program>.yml:
//
//	schema: .lines:Int .words:Int .chars:Int .file:String
//	separators: " \t"
//	skip: 0
//	args: ["-l"]
type Rule struct {
	Schema     string   `yaml:"schema" validate:"required"`
	Separators string   `yaml:"separators"`
	Skip       int      `yaml:"skip" validate:"gte=0"`
	Args       []string `yaml:"args"`

	// Path is the file the rule was loaded from.
	Path string `yaml:"-"`
}

// ParseSchema parses the rule's schema spec.
func (r *Rule) ParseSchema() (*Schema, error) {
	return FromSpec(r.Schema)
}

// Tokenizer returns the separator tokenizer the rule asks for.
func (r *Rule) Tokenizer() *SepTokenizer {
	if r.Separators == "" {
		return NewSepTokenizer(DefaultSeparators)
	}
	return NewSepTokenizer(r.Separators)
}

// Open runs program with the rule's default arguments followed by args and
// returns a reader configured by the rule.
func (r *Rule) Open(ctx context.Context, program string, args ...string) (*ExecReader, error) {
	schema, err := r.ParseSchema()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidRule, r.Path, err)
	}
	all := append(slices.Clone(r.Args), args...)
	return NewExecReader(ctx, program, all,
		WithSchema(schema),
		WithSkip(r.Skip),
		WithTokenizer(r.Tokenizer()),
	)
}

// Registry finds rules on a list of search paths.
type Registry struct {
	paths    []string
	validate *validator.Validate
	logger   *log.Entry
}

// NewRegistry returns a registry searching paths in order.
func NewRegistry(paths ...string) *Registry {
	return &Registry{
		paths:    slices.Clone(paths),
		validate: validator.New(),
		logger:   log.WithField("component", "registry"),
	}
}

// AddPath appends a search path.
func (g *Registry) AddPath(path string) *Registry {
	g.paths = append(g.paths, path)
	return g
}

// Paths returns the search paths.
func (g *Registry) Paths() []string { return slices.Clone(g.paths) }

// Lookup returns the first rule for program found on the search paths.
func (g *Registry) Lookup(program string) (*Rule, error) {
	name := filepath.Base(program) + ".yml"
	for _, dir := range g.paths {
		path := filepath.Join(dir, name)
		rule, err := g.load(path)
		if errors.Is(err, fs.ErrNotExist) {
			g.logger.Debugf("no rule at %s", path)
			continue
		}
		if err != nil {
			return nil, err
		}
		g.logger.Debugf("using rule %s", path)
		return rule, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrRuleNotFound, program)
}

func (g *Registry) load(path string) (*Rule, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fs.ErrNotExist
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var rule Rule
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&rule); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrInvalidRule, path, err)
	}
	if err := g.validate.Struct(&rule); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidRule, path, err)
	}
	if _, err := rule.ParseSchema(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidRule, path, err)
	}
	rule.Path = path
	return &rule, nil
}
