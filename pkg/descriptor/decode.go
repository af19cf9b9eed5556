package descriptor

import (
	"github.com/arthur-debert/skaff/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
	"gopkg.in/yaml.v3"
)

// decodeTOML decodes the document and recovers parameter declaration order
// from a low-level scan; toml maps are unordered on their own.
func decodeTOML(data []byte) (*rawDescriptor, []string, error) {
	var raw rawDescriptor
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrConfigParse, "malformed descriptor")
	}
	return &raw, scanTOMLParamOrder(data), nil
}

// scanTOMLParamOrder walks top-level expressions and records every
// parameter name under the parameters table, first appearance wins.
// A scan miss is harmless: build falls back to sorted order.
func scanTOMLParamOrder(data []byte) []string {
	var order []string
	var currentTable []string

	parser := &unstable.Parser{}
	parser.Reset(data)
	for parser.NextExpression() {
		expr := parser.Expression()
		switch expr.Kind {
		case unstable.Table, unstable.ArrayTable:
			currentTable = keyParts(expr)
			if len(currentTable) >= 2 && currentTable[0] == "parameters" {
				order = append(order, currentTable[1])
			}
		case unstable.KeyValue:
			key := keyParts(expr)
			switch {
			case len(currentTable) >= 1 && currentTable[0] == "parameters":
				if len(currentTable) == 1 && len(key) >= 1 {
					order = append(order, key[0])
				}
			case len(currentTable) == 0 && len(key) >= 2 && key[0] == "parameters":
				order = append(order, key[1])
			}
		}
	}
	return order
}

func keyParts(expr *unstable.Node) []string {
	var parts []string
	it := expr.Key()
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return parts
}

// decodeYAML decodes the alternate format. yaml.Node preserves mapping
// order, so the order scan reads the node tree directly.
func decodeYAML(data []byte) (*rawDescriptor, []string, error) {
	var raw rawDescriptor
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrConfigParse, "malformed descriptor")
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrConfigParse, "malformed descriptor")
	}
	return &raw, scanYAMLParamOrder(&doc), nil
}

func scanYAMLParamOrder(doc *yaml.Node) []string {
	root := doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "parameters" {
			continue
		}
		mapping := root.Content[i+1]
		if mapping.Kind != yaml.MappingNode {
			return nil
		}
		var order []string
		for j := 0; j+1 < len(mapping.Content); j += 2 {
			order = append(order, mapping.Content[j].Value)
		}
		return order
	}
	return nil
}
