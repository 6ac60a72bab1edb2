package jsonedit

import (
	"bytes"
	"fmt"

	gyaml "github.com/goccy/go-yaml"
)

// ParseYAML decodes YAML text into a Node. Mapping key order is
// preserved via ordered-map decoding.
func ParseYAML(text string) (*Node, error) {
	data := []byte(text)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &ParseError{Err: ErrEmptyInput}
	}
	var v any
	if err := gyaml.UnmarshalWithOptions(data, &v, gyaml.UseOrderedMap()); err != nil {
		return nil, &ParseError{Err: fmt.Errorf("failed to parse YAML: %w", err)}
	}
	return fromYAMLValue(v), nil
}

// EncodeYAML renders a Node as 2-space-indented YAML.
func EncodeYAML(n *Node) (string, error) {
	var buf bytes.Buffer
	enc := gyaml.NewEncoder(&buf, gyaml.Indent(2), gyaml.IndentSequence(true))
	if err := enc.Encode(toYAMLValue(n)); err != nil {
		_ = enc.Close()
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func fromYAMLValue(v any) *Node {
	switch vv := v.(type) {
	case nil:
		return Null()
	case bool:
		return FromBool(vv)
	case string:
		return FromString(vv)
	case int:
		return FromInt(int64(vv))
	case int64:
		return FromInt(vv)
	case uint64:
		return FromNumberLiteral(fmt.Sprintf("%d", vv))
	case float64:
		return FromFloat(vv)
	case gyaml.MapSlice:
		obj := ObjectNode()
		for _, item := range vv {
			obj.Set(yamlKeyString(item.Key), fromYAMLValue(item.Value))
		}
		return obj
	case map[string]any:
		obj := ObjectNode()
		for k, mv := range vv {
			obj.Set(k, fromYAMLValue(mv))
		}
		return obj
	case []any:
		arr := &Node{Kind: ArrayKind}
		for _, e := range vv {
			arr.Elems = append(arr.Elems, fromYAMLValue(e))
		}
		return arr
	default:
		return FromString(fmt.Sprint(vv))
	}
}

func toYAMLValue(n *Node) any {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case NullKind:
		return nil
	case BoolKind:
		return n.Bool
	case StringKind:
		return n.Str
	case NumberKind:
		if i, err := n.Int64(); err == nil {
			return i
		}
		if f, err := n.Float64(); err == nil {
			return f
		}
		return n.Num
	case ArrayKind:
		out := make([]any, len(n.Elems))
		for i, e := range n.Elems {
			out[i] = toYAMLValue(e)
		}
		return out
	case ObjectKind:
		ms := make(gyaml.MapSlice, 0, len(n.Keys))
		for i, k := range n.Keys {
			ms = append(ms, gyaml.MapItem{Key: k, Value: toYAMLValue(n.Values[i])})
		}
		return ms
	}
	return nil
}

func yamlKeyString(k any) string {
	switch vv := k.(type) {
	case string:
		return vv
	case fmt.Stringer:
		return vv.String()
	default:
		return fmt.Sprint(vv)
	}
}
