// Package jsonedit is a small JSON tree-patching engine for node
// editors: given a full document, a path addressing one node, and a
// partial replacement payload, it produces an updated document that
// merges the addressed node and serializes back to 2-space-indented
// JSON.
//
// The write path composes three pure pieces. Normalize turns the flat
// (key, type, value) rows of an edited node back into a value,
// re-parsing fields that carry embedded JSON. FormatPath renders the
// addressing path for display. PatchDocument locates the addressed node
// and merges the new value into it, with MergeWithCurrent folding the
// live document's sibling fields in first so an edit never erases what
// it didn't touch.
//
// Nothing here throws away data on failure: an unreadable document
// comes back unchanged together with the error, and unparsable embedded
// field text degrades to a type-appropriate default.
package jsonedit
