package jsonedit

import (
	"strings"

	json "github.com/goccy/go-json"
)

// Encode renders a Node as the canonical display form: 2-space indent,
// object keys in insertion order, number literals verbatim.
func Encode(n *Node) string {
	var b strings.Builder
	writeNode(&b, n, 0, true)
	return b.String()
}

// EncodeCompact renders a Node on a single line.
func EncodeCompact(n *Node) string {
	var b strings.Builder
	writeNode(&b, n, 0, false)
	return b.String()
}

func writeNode(b *strings.Builder, n *Node, depth int, indent bool) {
	if n == nil {
		b.WriteString("null")
		return
	}
	switch n.Kind {
	case NullKind:
		b.WriteString("null")
	case BoolKind:
		if n.Bool {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case NumberKind:
		b.WriteString(n.Num)
	case StringKind:
		b.WriteString(quoteString(n.Str))
	case ArrayKind:
		writeArray(b, n, depth, indent)
	case ObjectKind:
		writeObject(b, n, depth, indent)
	}
}

func writeArray(b *strings.Builder, n *Node, depth int, indent bool) {
	if len(n.Elems) == 0 {
		b.WriteString("[]")
		return
	}
	b.WriteByte('[')
	for i, e := range n.Elems {
		if i > 0 {
			b.WriteByte(',')
		}
		writeSep(b, depth+1, indent)
		writeNode(b, e, depth+1, indent)
	}
	writeSep(b, depth, indent)
	b.WriteByte(']')
}

func writeObject(b *strings.Builder, n *Node, depth int, indent bool) {
	if len(n.Keys) == 0 {
		b.WriteString("{}")
		return
	}
	b.WriteByte('{')
	for i, k := range n.Keys {
		if i > 0 {
			b.WriteByte(',')
		}
		writeSep(b, depth+1, indent)
		b.WriteString(quoteString(k))
		b.WriteString(": ")
		writeNode(b, n.Values[i], depth+1, indent)
	}
	writeSep(b, depth, indent)
	b.WriteByte('}')
}

func writeSep(b *strings.Builder, depth int, indent bool) {
	if !indent {
		return
	}
	b.WriteByte('\n')
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

func quoteString(s string) string {
	out, err := json.MarshalWithOption(s, json.DisableHTMLEscape())
	if err != nil {
		// strings always marshal; keep a visible fallback anyway
		return `"` + s + `"`
	}
	return string(out)
}
