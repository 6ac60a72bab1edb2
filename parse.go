package jsonedit

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
)

// Parse decodes JSON text into a Node, preserving object key order.
func Parse(text string) (*Node, error) {
	return ParseBytes([]byte(text))
}

// ParseBytes decodes one JSON value. Duplicate object keys collapse
// last-wins; anything but whitespace after the first value is an error.
func ParseBytes(data []byte) (*Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &ParseError{Err: ErrEmptyInput}
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	n, err := decodeValue(dec)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	// More() stays false when the remainder is a stray } or ], so
	// confirm end-of-input by pulling one more token and requiring EOF.
	if _, err := dec.Token(); err != io.EOF {
		return nil, &ParseError{Err: ErrTrailingData}
	}
	return n, nil
}

func decodeValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeFrom(dec, tok)
}

func decodeFrom(dec *json.Decoder, tok json.Token) (*Node, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", v.String())
	case string:
		return FromString(v), nil
	case json.Number:
		return FromNumberLiteral(v.String()), nil
	case bool:
		return FromBool(v), nil
	case nil:
		return Null(), nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func decodeObject(dec *json.Decoder) (*Node, error) {
	obj := ObjectNode()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is %v, not a string", keyTok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(key, val)
	}
	// closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) (*Node, error) {
	arr := &Node{Kind: ArrayKind}
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr.Elems = append(arr.Elems, val)
	}
	// closing ']'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

// looksLikeJSON reports whether a field value is worth a tentative parse:
// trimmed text opening an object or array literal.
func looksLikeJSON(s string) bool {
	t := strings.TrimSpace(s)
	return len(t) > 0 && (t[0] == '{' || t[0] == '[')
}
