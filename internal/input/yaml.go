// SPDX-License-Identifier: MPL-2.0

package input

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/invowk/shlit/pkg/shvalue"

	"gopkg.in/yaml.v3"
)

const maxAliasDepth = 64

// decodeYAML walks the yaml.v3 node tree rather than decoding into Go maps so
// that mapping order survives.
func decodeYAML(data []byte) (shvalue.Value, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return shvalue.Absent(), nil
		}
		return shvalue.Value{}, err
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return shvalue.Value{}, errors.New("multiple YAML documents are not supported")
	}

	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return shvalue.Absent(), nil
		}
		return yamlNodeValue(doc.Content[0], 0)
	}
	return yamlNodeValue(&doc, 0)
}

func yamlNodeValue(n *yaml.Node, depth int) (shvalue.Value, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return yamlScalar(n)
	case yaml.SequenceNode:
		items := make([]shvalue.Value, 0, len(n.Content))
		for i, child := range n.Content {
			item, err := yamlNodeValue(child, depth)
			if err != nil {
				return shvalue.Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items = append(items, item)
		}
		return shvalue.Sequence(items...), nil
	case yaml.MappingNode:
		return yamlMapping(n, depth)
	case yaml.AliasNode:
		if depth >= maxAliasDepth {
			return shvalue.Value{}, fmt.Errorf("line %d: aliases nested deeper than %d", n.Line, maxAliasDepth)
		}
		return yamlNodeValue(n.Alias, depth+1)
	default:
		return shvalue.Value{}, fmt.Errorf("line %d: unexpected YAML node kind %d", n.Line, n.Kind)
	}
}

func yamlMapping(n *yaml.Node, depth int) (shvalue.Value, error) {
	pairs := make([]shvalue.Pair, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valNode := n.Content[i], n.Content[i+1]
		if keyNode.Kind == yaml.AliasNode {
			keyNode = keyNode.Alias
		}
		if keyNode.Kind != yaml.ScalarNode {
			return shvalue.Value{}, fmt.Errorf("line %d: mapping keys must be scalars", keyNode.Line)
		}
		if keyNode.ShortTag() == "!!merge" {
			return shvalue.Value{}, fmt.Errorf("line %d: merge keys (<<) are not supported", keyNode.Line)
		}
		v, err := yamlNodeValue(valNode, depth)
		if err != nil {
			return shvalue.Value{}, fmt.Errorf("key %q: %w", keyNode.Value, err)
		}
		pairs = append(pairs, shvalue.Pair{Key: keyNode.Value, Value: v})
	}
	return shvalue.NewMapping(pairs...)
}

func yamlScalar(n *yaml.Node) (shvalue.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return shvalue.Absent(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return shvalue.Value{}, err
		}
		return shvalue.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return shvalue.Value{}, fmt.Errorf("line %d: integer %s: %w", n.Line, n.Value, err)
		}
		return shvalue.Int(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return shvalue.Value{}, err
		}
		return shvalue.Float(f), nil
	default:
		// !!str, !!timestamp, !!binary and custom tags keep their source text.
		return shvalue.Text(n.Value), nil
	}
}
