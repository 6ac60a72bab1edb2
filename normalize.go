package jsonedit

// Row is the flattened (key, type, value) view of one object field as a
// form editor presents it. Nested object/array fields arrive as their
// serialized text in Value, pending re-parse.
type Row struct {
	Key   string
	Type  string
	Value any
}

// Normalize re-assembles a flat row list into the object node it
// describes. It never fails: unparsable embedded JSON degrades to the
// declared type's zero value ({} or []) or to the raw string.
//
// Rows with an empty key are skipped; duplicate keys collapse last-wins.
func Normalize(rows []Row) *Node {
	obj := ObjectNode()
	for _, row := range rows {
		if row.Key == "" {
			continue
		}
		obj.Set(row.Key, normalizeRowValue(row))
	}
	return obj
}

// NormalizeText is Normalize followed by canonical 2-space serialization.
func NormalizeText(rows []Row) string {
	return Encode(Normalize(rows))
}

func normalizeRowValue(row Row) *Node {
	switch row.Type {
	case "object", "array":
		zero := ObjectNode()
		if row.Type == "array" {
			zero = &Node{Kind: ArrayKind}
		}
		text, ok := row.Value.(string)
		if !ok {
			return zero
		}
		parsed, err := Parse(text)
		if err != nil {
			return zero
		}
		return parsed
	default:
		text, ok := row.Value.(string)
		if !ok {
			return fromAny(row.Value)
		}
		if looksLikeJSON(text) {
			if parsed, err := Parse(text); err == nil {
				return parsed
			}
		}
		return FromString(text)
	}
}
