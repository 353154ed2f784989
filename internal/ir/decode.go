package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Custom YAML tags for scalars YAML has no native syntax for.
const (
	TagRational = "!rational" // !rational "1/3"
	TagComplex  = "!complex"  // !complex "2+0i"
)

// ParseJSON decodes a JSON document into a Value.
//
// Integral number literals become Int (Uint above MaxInt64); literals with
// a fraction or exponent become Float. Strings, booleans, null and objects
// become Opaque so that inference can report them by type.
func ParseJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("decode JSON: trailing data after first value")
	}

	return fromJSON(raw)
}

func fromJSON(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Opaque{TypeName: "null", Repr: "null"}, nil
	case bool:
		return Opaque{TypeName: "bool", Repr: strconv.FormatBool(v)}, nil
	case string:
		return Opaque{TypeName: "string", Repr: strconv.Quote(v)}, nil
	case json.Number:
		return parseNumber(string(v))
	case []any:
		seq := make(Seq, len(v))
		for i, elem := range v {
			val, err := fromJSON(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			seq[i] = val
		}
		return seq, nil
	case map[string]any:
		return Opaque{TypeName: "mapping", Repr: "object"}, nil
	default:
		return nil, fmt.Errorf("unsupported JSON value: %T", raw)
	}
}

// parseNumber converts a JSON number literal.
func parseNumber(s string) (Value, error) {
	if strings.ContainsAny(s, ".eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("number %s: %w", s, err)
		}
		return Float(f), nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i), nil
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return Uint(u), nil
	}
	return nil, fmt.Errorf("integer %s out of 64-bit range", s)
}

// ParseYAML decodes a YAML document into a Value.
func ParseYAML(data []byte) (Value, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("decode YAML: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, fmt.Errorf("decode YAML: empty document")
	}
	return FromYAMLNode(&node)
}

// FromYAMLNode converts a yaml.v3 node tree into a Value.
//
// Tags resolve as follows: !!int → Int/Uint, !!float → Float,
// !rational → Rational, !complex → Complex, sequences → Seq; strings,
// booleans, null and mappings become Opaque.
func FromYAMLNode(node *yaml.Node) (Value, error) {
	return fromYAMLNode(node, make(map[*yaml.Node]bool))
}

// fromYAMLNode tracks the sequences on the current path so an alias back
// into one of them fails instead of recursing forever.
func fromYAMLNode(node *yaml.Node, expanding map[*yaml.Node]bool) (Value, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, fmt.Errorf("line %d: empty document", node.Line)
		}
		return fromYAMLNode(node.Content[0], expanding)
	case yaml.AliasNode:
		if node.Alias == nil {
			return nil, fmt.Errorf("line %d: unknown anchor %q", node.Line, node.Value)
		}
		if expanding[node.Alias] {
			return nil, fmt.Errorf("line %d: anchor %q contains itself", node.Line, node.Value)
		}
		return fromYAMLNode(node.Alias, expanding)
	case yaml.SequenceNode:
		expanding[node] = true
		defer delete(expanding, node)

		seq := make(Seq, len(node.Content))
		for i, child := range node.Content {
			val, err := fromYAMLNode(child, expanding)
			if err != nil {
				return nil, err
			}
			seq[i] = val
		}
		return seq, nil
	case yaml.MappingNode:
		return Opaque{TypeName: "mapping", Repr: "mapping"}, nil
	case yaml.ScalarNode:
		return yamlScalar(node)
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", node.Line, node.Kind)
	}
}

func yamlScalar(node *yaml.Node) (Value, error) {
	switch tag := node.ShortTag(); tag {
	case "!!int":
		var i int64
		if err := node.Decode(&i); err == nil {
			return Int(i), nil
		}
		var u uint64
		if err := node.Decode(&u); err != nil {
			return nil, fmt.Errorf("line %d: integer %s out of 64-bit range", node.Line, node.Value)
		}
		return Uint(u), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return Float(f), nil
	case TagRational:
		r, ok := new(big.Rat).SetString(node.Value)
		if !ok {
			return nil, fmt.Errorf("line %d: invalid rational %q", node.Line, node.Value)
		}
		return Rational{Rat: r}, nil
	case TagComplex:
		c, err := strconv.ParseComplex(node.Value, 128)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid complex %q", node.Line, node.Value)
		}
		return Complex(c), nil
	case "!!str":
		return Opaque{TypeName: "string", Repr: strconv.Quote(node.Value)}, nil
	case "!!bool":
		return Opaque{TypeName: "bool", Repr: node.Value}, nil
	case "!!null":
		return Opaque{TypeName: "null", Repr: "null"}, nil
	default:
		return Opaque{TypeName: tag, Repr: node.Value}, nil
	}
}

// Node wraps a Value so it can be a field of a YAML-decoded struct.
type Node struct {
	Value Value
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (n *Node) UnmarshalYAML(node *yaml.Node) error {
	v, err := FromYAMLNode(node)
	if err != nil {
		return err
	}
	n.Value = v
	return nil
}

// UnmarshalJSON implements json.Unmarshaler with the same number rules as
// ParseJSON.
func (n *Node) UnmarshalJSON(data []byte) error {
	v, err := ParseJSON(data)
	if err != nil {
		return err
	}
	n.Value = v
	return nil
}

// ToGo converts a Value back into plain Go values for display: Int → int64,
// Uint → uint64, Float → float64, Seq → []any, the rest → their string form.
func ToGo(v Value) any {
	switch val := v.(type) {
	case Int:
		return int64(val)
	case Uint:
		return uint64(val)
	case Float:
		return float64(val)
	case Rational:
		return val.String()
	case Complex:
		return strconv.FormatComplex(complex128(val), 'g', -1, 128)
	case Seq:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = ToGo(elem)
		}
		return out
	case Opaque:
		return val.Repr
	default:
		return nil
	}
}

// isFinite reports whether f is neither NaN nor infinite.
func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
