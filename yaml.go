package squery

import (
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlRenderer collects rows into a single sequence document; the encoder
// needs the whole document before it can write.
type yamlRenderer struct {
	w    io.Writer
	o    *sinkOptions
	cols []Column
	seq  yaml.Node
}

func (r *yamlRenderer) schema(cols []Column) error {
	r.cols = cols
	r.seq = yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	return nil
}

func (r *yamlRenderer) prepare(*Table) error { return nil }

func (r *yamlRenderer) record(row *Row) error {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i, c := range r.cols {
		m.Content = append(m.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.Name},
			yamlScalar(row.ValueAt(i)),
		)
	}
	r.seq.Content = append(r.seq.Content, m)
	return nil
}

func (r *yamlRenderer) close() error {
	enc := yaml.NewEncoder(r.w)
	enc.SetIndent(2)
	if r.o.indent != "" {
		enc.SetIndent(len(r.o.indent))
	}
	if err := enc.Encode(&r.seq); err != nil {
		return err
	}
	return enc.Close()
}

func yamlScalar(v Value) *yaml.Node {
	switch v.Kind() {
	case KindInt:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: v.HumanReadable()}
	case KindFloat:
		f, _ := v.Float()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: yamlFloat(f)}
	case KindStr:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.HumanReadable()}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

// yamlFloat keeps a decimal point so the scalar resolves back to a float.
func yamlFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
