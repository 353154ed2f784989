package harness

import (
	_ "embed"
	"fmt"
	"strconv"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/ndview/internal/ir"
)

//go:embed schema.cue
var schemaSource string

// ValidateSchema checks scenario YAML against the CUE scenario schema.
// It catches structural mistakes (wrong types, unknown fields, invalid
// dtype or order names) before the scenario is loaded.
func ValidateSchema(data []byte) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	if doc.Kind == 0 {
		return fmt.Errorf("empty scenario document")
	}

	plain, err := plainYAML(&doc)
	if err != nil {
		return err
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	value := ctx.Encode(plain)
	if err := value.Err(); err != nil {
		return fmt.Errorf("encode scenario: %w", err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Scenario")).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema violation: %s", cueerrors.Details(err, nil))
	}
	return nil
}

// plainYAML converts a YAML node into plain Go values for CUE.
// Custom scalar tags become their string form.
func plainYAML(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return plainYAML(node.Content[0])
	case yaml.AliasNode:
		return plainYAML(node.Alias)
	case yaml.SequenceNode:
		out := make([]any, len(node.Content))
		for i, child := range node.Content {
			v, err := plainYAML(child)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case yaml.MappingNode:
		out := make(map[string]any, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			v, err := plainYAML(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			out[node.Content[i].Value] = v
		}
		return out, nil
	case yaml.ScalarNode:
		switch node.ShortTag() {
		case ir.TagRational, ir.TagComplex, "!!str":
			return node.Value, nil
		case "!!null":
			return nil, nil
		case "!!bool":
			var b bool
			if err := node.Decode(&b); err != nil {
				return nil, err
			}
			return b, nil
		case "!!int":
			var i int64
			if err := node.Decode(&i); err == nil {
				return i, nil
			}
			u, err := strconv.ParseUint(node.Value, 0, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: integer %s out of range", node.Line, node.Value)
			}
			return u, nil
		case "!!float":
			var f float64
			if err := node.Decode(&f); err != nil {
				return nil, err
			}
			return f, nil
		default:
			return node.Value, nil
		}
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node", node.Line)
	}
}
