package jsonedit

import "fmt"

// PatchDocument merges newData into the node at path and returns the
// re-serialized document. It never panics and never returns unusable
// text: on any failure the original documentText comes back unchanged
// alongside the error, which is the caller's out-of-band channel.
func PatchDocument(documentText string, path Path, newData *Node) (string, error) {
	root, err := Parse(documentText)
	if err != nil {
		return documentText, err
	}
	patched, err := PatchNode(root, path, newData)
	if err != nil {
		return documentText, err
	}
	return Encode(patched), nil
}

// PatchNode is the node-level form of PatchDocument. The empty path
// replaces the whole document with newData. The input tree is not
// mutated; the result shares no structure with it.
func PatchNode(root *Node, path Path, newData *Node) (*Node, error) {
	if len(path) == 0 {
		return newData.Clone(), nil
	}
	return patchAt(root.Clone(), path, nil, newData)
}

// patchAt descends cur (a private copy) along rest, materializing empty
// containers for absent steps, and applies the terminal merge. walked is
// the consumed prefix, kept for error messages.
func patchAt(cur *Node, rest Path, walked Path, newData *Node) (*Node, error) {
	seg := rest[0]
	walked = append(walked[:len(walked):len(walked)], seg)

	if seg.IsKey() {
		switch {
		case cur.IsNull():
			cur = ObjectNode()
		case !cur.IsObject():
			return nil, &KindMismatchError{Path: walked, Want: ObjectKind, Got: cur.Kind}
		}
		key := seg.KeyValue()
		if len(rest) == 1 {
			cur.Set(key, shallowMerge(cur.Get(key), newData))
			return cur, nil
		}
		child, err := patchAt(cur.Get(key), rest[1:], walked, newData)
		if err != nil {
			return nil, err
		}
		cur.Set(key, child)
		return cur, nil
	}

	switch {
	case cur.IsNull():
		cur = &Node{Kind: ArrayKind}
	case !cur.IsArray():
		return nil, &KindMismatchError{Path: walked, Want: ArrayKind, Got: cur.Kind}
	}
	idx := seg.IndexValue()
	for len(cur.Elems) <= idx {
		cur.Elems = append(cur.Elems, Null())
	}
	if len(rest) == 1 {
		cur.Elems[idx] = shallowMerge(cur.Elems[idx], newData)
		return cur, nil
	}
	child, err := patchAt(cur.Elems[idx], rest[1:], walked, newData)
	if err != nil {
		return nil, err
	}
	cur.Elems[idx] = child
	return cur, nil
}

// shallowMerge overlays overlay onto base when both are plain objects:
// base keys keep their positions, overlay-only keys append, conflicts
// take overlay's value. Anything else replaces base outright.
func shallowMerge(base, overlay *Node) *Node {
	if !base.IsObject() || !overlay.IsObject() {
		return overlay.Clone()
	}
	res := base.Clone()
	for i, k := range overlay.Keys {
		res.Set(k, overlay.Values[i].Clone())
	}
	return res
}

// Lookup resolves path against root. A missing key or an out-of-range
// index yields ErrNotFound; a container kind conflict yields
// *KindMismatchError.
func Lookup(root *Node, path Path) (*Node, error) {
	cur := root
	for i, seg := range path {
		if seg.IsKey() {
			if !cur.IsObject() {
				return nil, &KindMismatchError{Path: path[:i+1], Want: ObjectKind, Got: cur.Kind}
			}
			next := cur.Get(seg.KeyValue())
			if next == nil {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, FormatPath(path[:i+1]))
			}
			cur = next
			continue
		}
		if !cur.IsArray() {
			return nil, &KindMismatchError{Path: path[:i+1], Want: ArrayKind, Got: cur.Kind}
		}
		next := cur.Index(seg.IndexValue())
		if next == nil {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, FormatPath(path[:i+1]))
		}
		cur = next
	}
	return cur, nil
}

// MergeWithCurrent is the save operation's pre-step: it re-reads the
// current authoritative document and, for every key where both the
// existing node at path and newData hold plain objects, unions the
// existing sub-object's keys into newData. Keys only in the existing
// sub-object are preserved; keys in both prefer newData. The union is
// exactly one level deep: nested objects further down are replaced
// wholesale by newData's version. (Deliberate asymmetry; callers rely
// on it for parity with the editor's historical merge.)
//
// When the current document is unreadable, the path doesn't resolve, or
// either side is not an object, newData is returned unchanged.
func MergeWithCurrent(currentText string, path Path, newData *Node) *Node {
	if !newData.IsObject() {
		return newData
	}
	root, err := Parse(currentText)
	if err != nil {
		return newData
	}
	existing, err := Lookup(root, path)
	if err != nil || !existing.IsObject() {
		return newData
	}
	merged := newData.Clone()
	for i, k := range merged.Keys {
		exSub := existing.Get(k)
		if exSub.IsObject() && merged.Values[i].IsObject() {
			merged.Values[i] = shallowMerge(exSub, merged.Values[i])
		}
	}
	return merged
}
