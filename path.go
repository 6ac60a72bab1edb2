package jsonedit

import (
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Segment addresses one step into a JSON tree: an object key or an
// array index.
type Segment struct {
	key   string
	index int
	isKey bool
}

// Key returns a string-key segment.
func Key(k string) Segment {
	return Segment{key: k, isKey: true}
}

// Index returns an array-index segment.
func Index(i int) Segment {
	return Segment{index: i}
}

func (s Segment) IsKey() bool { return s.isKey }

// KeyValue returns the object key of a key segment ("" for an index
// segment).
func (s Segment) KeyValue() string { return s.key }

// IndexValue returns the array index of an index segment (0 for a key
// segment).
func (s Segment) IndexValue() int { return s.index }

// Path addresses one node in a JSON tree. The empty path is the
// document root.
type Path []Segment

// FormatPath renders a path in bracket notation: "$" for the root,
// otherwise $["key"][0]... with keys as JSON string literals so embedded
// quotes stay readable.
func FormatPath(p Path) string {
	if len(p) == 0 {
		return "$"
	}
	var b strings.Builder
	b.WriteByte('$')
	for _, seg := range p {
		b.WriteByte('[')
		if seg.isKey {
			b.WriteString(quoteString(seg.key))
		} else {
			b.WriteString(strconv.Itoa(seg.index))
		}
		b.WriteByte(']')
	}
	return b.String()
}

// ParsePath is the inverse of FormatPath. It accepts "$" and chains of
// ["key"] / [index] brackets after it.
func ParsePath(s string) (Path, error) {
	if s == "" || s[0] != '$' {
		return nil, &PathSyntaxError{Input: s, Offset: 0, Reason: "path must start with $"}
	}
	var p Path
	i := 1
	for i < len(s) {
		if s[i] != '[' {
			return nil, &PathSyntaxError{Input: s, Offset: i, Reason: "expected ["}
		}
		i++
		if i >= len(s) {
			return nil, &PathSyntaxError{Input: s, Offset: i, Reason: "unterminated segment"}
		}
		if s[i] == '"' {
			lit, end, err := scanStringLiteral(s, i)
			if err != nil {
				return nil, err
			}
			var key string
			if uerr := json.Unmarshal([]byte(lit), &key); uerr != nil {
				return nil, &PathSyntaxError{Input: s, Offset: i, Reason: "bad string literal"}
			}
			p = append(p, Key(key))
			i = end
		} else {
			j := i
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			if j == i {
				return nil, &PathSyntaxError{Input: s, Offset: i, Reason: "expected index or quoted key"}
			}
			idx, err := strconv.Atoi(s[i:j])
			if err != nil {
				return nil, &PathSyntaxError{Input: s, Offset: i, Reason: "bad index"}
			}
			p = append(p, Index(idx))
			i = j
		}
		if i >= len(s) || s[i] != ']' {
			return nil, &PathSyntaxError{Input: s, Offset: i, Reason: "expected ]"}
		}
		i++
	}
	return p, nil
}

// scanStringLiteral returns the JSON string literal starting at
// s[start] == '"' and the offset just past its closing quote.
func scanStringLiteral(s string, start int) (string, int, error) {
	i := start + 1
	for i < len(s) {
		switch s[i] {
		case '\\':
			i += 2
		case '"':
			return s[start : i+1], i + 1, nil
		default:
			i++
		}
	}
	return "", i, &PathSyntaxError{Input: s, Offset: start, Reason: "unterminated string literal"}
}
