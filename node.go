package jsonedit

import (
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
)

// Kind discriminates the variants of a Node.
type Kind int

const (
	NullKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
)

func (k Kind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "bool"
	case NumberKind:
		return "number"
	case StringKind:
		return "string"
	case ArrayKind:
		return "array"
	case ObjectKind:
		return "object"
	}
	return "<unknown kind>"
}

// Node is one JSON value: null, bool, number, string, array or object.
// Objects keep their keys in insertion order via the parallel Keys/Values
// slices. Numbers keep the original literal in Num so re-serialization
// does not reformat them.
type Node struct {
	Kind Kind

	Bool bool
	Num  string
	Str  string

	Elems  []*Node
	Keys   []string
	Values []*Node
}

func Null() *Node {
	return &Node{Kind: NullKind}
}

func FromBool(v bool) *Node {
	return &Node{Kind: BoolKind, Bool: v}
}

func FromInt(v int64) *Node {
	return &Node{Kind: NumberKind, Num: strconv.FormatInt(v, 10)}
}

func FromFloat(v float64) *Node {
	return &Node{Kind: NumberKind, Num: strconv.FormatFloat(v, 'g', -1, 64)}
}

// FromNumberLiteral keeps a raw JSON number literal verbatim.
func FromNumberLiteral(lit string) *Node {
	return &Node{Kind: NumberKind, Num: lit}
}

func FromString(v string) *Node {
	return &Node{Kind: StringKind, Str: v}
}

func FromSlice(elems []*Node) *Node {
	return &Node{Kind: ArrayKind, Elems: elems}
}

// ObjectNode returns an empty object.
func ObjectNode() *Node {
	return &Node{Kind: ObjectKind}
}

func (n *Node) IsObject() bool { return n != nil && n.Kind == ObjectKind }
func (n *Node) IsArray() bool  { return n != nil && n.Kind == ArrayKind }
func (n *Node) IsNull() bool   { return n == nil || n.Kind == NullKind }

// Int64 parses the number literal as an integer.
func (n *Node) Int64() (int64, error) {
	return strconv.ParseInt(n.Num, 10, 64)
}

// Float64 parses the number literal as a float.
func (n *Node) Float64() (float64, error) {
	return strconv.ParseFloat(n.Num, 64)
}

// Len returns the element count of an array, the field count of an
// object, and 0 for scalars.
func (n *Node) Len() int {
	switch n.Kind {
	case ArrayKind:
		return len(n.Elems)
	case ObjectKind:
		return len(n.Keys)
	}
	return 0
}

// Get returns the value under key, or nil when absent or when n is not
// an object.
func (n *Node) Get(key string) *Node {
	if !n.IsObject() {
		return nil
	}
	for i, k := range n.Keys {
		if k == key {
			return n.Values[i]
		}
	}
	return nil
}

// Has reports whether an object field with the given key exists.
func (n *Node) Has(key string) bool {
	return n.Get(key) != nil
}

// Index returns the i-th array element, or nil when out of range or when
// n is not an array.
func (n *Node) Index(i int) *Node {
	if !n.IsArray() || i < 0 || i >= len(n.Elems) {
		return nil
	}
	return n.Elems[i]
}

// Set writes an object field. An existing key keeps its position and is
// overwritten; a new key is appended. No-op when n is not an object.
func (n *Node) Set(key string, val *Node) {
	if n.Kind != ObjectKind {
		return
	}
	for i, k := range n.Keys {
		if k == key {
			n.Values[i] = val
			return
		}
	}
	n.Keys = append(n.Keys, key)
	n.Values = append(n.Values, val)
}

// Append adds an element to an array node.
func (n *Node) Append(val *Node) {
	if n.Kind != ArrayKind {
		return
	}
	n.Elems = append(n.Elems, val)
}

// Clone returns a deep copy sharing no structure with n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	dst := &Node{
		Kind: n.Kind,
		Bool: n.Bool,
		Num:  n.Num,
		Str:  n.Str,
	}
	if n.Elems != nil {
		dst.Elems = make([]*Node, len(n.Elems))
		for i, e := range n.Elems {
			dst.Elems[i] = e.Clone()
		}
	}
	if n.Keys != nil {
		dst.Keys = append([]string(nil), n.Keys...)
		dst.Values = make([]*Node, len(n.Values))
		for i, v := range n.Values {
			dst.Values[i] = v.Clone()
		}
	}
	return dst
}

// Equal reports structural equality. Object key order does not matter;
// array order does. Numbers compare by literal first, then numerically,
// so 1.0 and 1 compare equal.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Kind != o.Kind {
		return false
	}
	switch n.Kind {
	case NullKind:
		return true
	case BoolKind:
		return n.Bool == o.Bool
	case StringKind:
		return n.Str == o.Str
	case NumberKind:
		if n.Num == o.Num {
			return true
		}
		a, errA := n.Float64()
		b, errB := o.Float64()
		return errA == nil && errB == nil && a == b
	case ArrayKind:
		if len(n.Elems) != len(o.Elems) {
			return false
		}
		for i := range n.Elems {
			if !n.Elems[i].Equal(o.Elems[i]) {
				return false
			}
		}
		return true
	case ObjectKind:
		if len(n.Keys) != len(o.Keys) {
			return false
		}
		for i, k := range n.Keys {
			ov := o.Get(k)
			if ov == nil || !n.Values[i].Equal(ov) {
				return false
			}
		}
		return true
	}
	return false
}

// fromAny converts the plain Go values a row descriptor may carry.
// Unrecognized types stringify through their default formatting.
func fromAny(v any) *Node {
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
	case float64:
		return FromFloat(vv)
	case *Node:
		return vv
	case json.Number:
		return FromNumberLiteral(vv.String())
	default:
		return FromString(fmt.Sprint(vv))
	}
}
