package config

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"
)

// yamlFormat stores the map as a flat YAML mapping. Each scalar's resolved
// tag (!!bool, !!int, !!float, !!str) selects the kind.
type yamlFormat struct{}

func (yamlFormat) load(path string) (*Map, error) {
	return readWith(path, DecodeYAML)
}

func (yamlFormat) write(m *Map, path string) error {
	return writeAtomic(path, func(w io.Writer) error {
		return EncodeYAML(w, m)
	})
}

// DecodeYAML parses a flat YAML mapping of scalars.
func DecodeYAML(r io.Reader) (*Map, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return NewMap(), nil
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	m := NewMap()
	if len(doc.Content) == 0 {
		return m, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: top level must be a mapping", ErrMalformed, root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: line %d: only scalar keys and values are supported", ErrMalformed, k.Line)
		}

		val, err := scalarValue(v)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", v.Line, err)
		}
		if err := m.Add(k.Value, val); err != nil {
			return nil, fmt.Errorf("line %d: %w", k.Line, err)
		}
	}
	return m, nil
}

func scalarValue(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return Int(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return Float(f), nil
	case "!!str":
		return String(n.Value), nil
	default:
		return nil, fmt.Errorf("%w: unsupported tag %s", ErrMalformed, n.ShortTag())
	}
}

// EncodeYAML writes m as a flat YAML mapping in insertion order.
func EncodeYAML(w io.Writer, m *Map) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range m.Entries() {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key},
			valueNode(e.Value),
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return err
	}
	return enc.Close()
}

func valueNode(v Value) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Value: v.String()}
	switch v := v.(type) {
	case Bool:
		n.Tag = "!!bool"
	case Int:
		n.Tag = "!!int"
	case Float:
		n.Tag = "!!float"
		f := float64(v)
		switch {
		case math.IsNaN(f):
			n.Value = ".nan"
		case math.IsInf(f, 1):
			n.Value = ".inf"
		case math.IsInf(f, -1):
			n.Value = "-.inf"
		}
	case String:
		n.Tag = "!!str"
	}
	return n
}
