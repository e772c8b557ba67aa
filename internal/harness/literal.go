package harness

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/roach88/dayshift/internal/ir"
)

// Literal is a YAML value read directly into IR.
type Literal struct {
	Value ir.IRValue
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *Literal) UnmarshalYAML(node *yaml.Node) error {
	v, err := nodeToIR(node)
	if err != nil {
		return err
	}
	l.Value = v
	return nil
}

// Object returns the literal as an object, or false if it is not one.
func (l *Literal) Object() (ir.IRObject, bool) {
	if l == nil {
		return nil, false
	}
	obj, ok := l.Value.(ir.IRObject)
	return obj, ok
}

func nodeToIR(node *yaml.Node) (ir.IRValue, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return ir.IRNull{}, nil
		}
		return nodeToIR(node.Content[0])
	case yaml.AliasNode:
		return nodeToIR(node.Alias)
	case yaml.ScalarNode:
		return scalarToIR(node)
	case yaml.SequenceNode:
		arr := make(ir.IRArray, len(node.Content))
		for i, elem := range node.Content {
			v, err := nodeToIR(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			arr[i] = v
		}
		return arr, nil
	case yaml.MappingNode:
		obj := make(ir.IRObject, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, val := node.Content[i], node.Content[i+1]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: object keys must be scalars", key.Line)
			}
			if _, dup := obj[key.Value]; dup {
				return nil, fmt.Errorf("line %d: duplicate key %q", key.Line, key.Value)
			}
			v, err := nodeToIR(val)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key.Value, err)
			}
			obj[key.Value] = v
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node", node.Line)
	}
}

func scalarToIR(node *yaml.Node) (ir.IRValue, error) {
	switch node.ShortTag() {
	case "!!null":
		return ir.IRNull{}, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, err
		}
		return ir.IRBool(b), nil
	case "!!int":
		if v, err := ir.NewNumber(node.Value); err == nil {
			return v, nil
		}
		// 0x1F, 0o17 and friends
		var n int64
		if err := node.Decode(&n); err != nil {
			return nil, fmt.Errorf("line %d: integer %q: %w", node.Line, node.Value, err)
		}
		return ir.IRInt(n), nil
	case "!!float":
		v, err := ir.NewNumber(node.Value)
		if err != nil {
			return nil, fmt.Errorf("line %d: %q is not a finite decimal number", node.Line, node.Value)
		}
		return v, nil
	default:
		// !!str, !!timestamp, !!binary: keep the text as written.
		return ir.IRString(node.Value), nil
	}
}
