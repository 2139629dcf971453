package config

import (
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/noise2read/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// YAMLLoader reads configuration written as a mapping of sections to
// mappings of scalar options.
type YAMLLoader struct{}

// NewYAMLLoader creates a new YAML configuration loader.
func NewYAMLLoader() *YAMLLoader {
	return &YAMLLoader{}
}

// Load parses the YAML file at path.
func (l *YAMLLoader) Load(ctx context.Context, path string) (*Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML file %s: %w", path, err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML file %s: %w", path, err)
	}

	doc := &Document{Path: path, Format: "yaml"}
	if len(root.Content) == 0 {
		return doc, nil
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s:%d: top level must be a mapping of sections", path, top.Line)
	}

	for i := 0; i+1 < len(top.Content); i += 2 {
		nameNode, body := top.Content[i], top.Content[i+1]
		section := &Section{Name: nameNode.Value, Origin: fmt.Sprintf("%s:%d", path, nameNode.Line)}
		if body.Kind != yaml.MappingNode {
			if body.Tag == "!!null" {
				doc.Sections = append(doc.Sections, section)
				continue
			}
			return nil, fmt.Errorf("%s:%d: section %q must be a mapping", path, body.Line, nameNode.Value)
		}
		for j := 0; j+1 < len(body.Content); j += 2 {
			keyNode, valNode := body.Content[j], body.Content[j+1]
			origin := fmt.Sprintf("%s:%d", path, keyNode.Line)
			val, err := yamlScalar(valNode)
			if err != nil {
				return nil, fmt.Errorf("%s: option %s.%s: %w", origin, nameNode.Value, keyNode.Value, err)
			}
			section.Entries = append(section.Entries, Entry{Key: keyNode.Value, Value: val, Origin: origin})
		}
		doc.Sections = append(doc.Sections, section)
	}

	logger.Debug("YAML loading complete.", "sections", len(doc.Sections))
	return doc, nil
}

// yamlScalar converts a scalar node into a cty.Value according to its resolved tag.
func yamlScalar(n *yaml.Node) (cty.Value, error) {
	if n.Kind != yaml.ScalarNode {
		return cty.NilVal, fmt.Errorf("value must be a scalar")
	}
	switch n.Tag {
	case "!!null":
		return cty.NullVal(cty.DynamicPseudoType), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return cty.NilVal, err
		}
		return cty.BoolVal(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return cty.NilVal, err
		}
		return cty.NumberIntVal(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return cty.NilVal, err
		}
		return cty.NumberFloatVal(f), nil
	default:
		return cty.StringVal(n.Value), nil
	}
}
