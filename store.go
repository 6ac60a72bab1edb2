package jsonedit

import (
	"sync"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// Store owns one document's text across edits. It is the collaborator
// the patch engine writes through: SaveNode re-reads the live text, runs
// the merge pre-step against it, patches, and swaps the result in.
//
// The mutex serializes the store's own read-modify-write; two stores (or
// external writers of the same text) still race last-writer-wins, which
// is accepted at the granularity of one full-document rewrite.
type Store struct {
	mu       sync.RWMutex
	text     string
	onError  func(error)
	onUpdate func(string)
}

func NewStore(initialText string) *Store {
	return &Store{text: initialText}
}

// Text returns the current document text.
func (s *Store) Text() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.text
}

// SetText replaces the document wholesale, bypassing the patch engine.
func (s *Store) SetText(text string) {
	s.mu.Lock()
	s.text = text
	s.mu.Unlock()
}

// OnError registers the failure side channel (the toast equivalent).
// Hooks run outside the store lock and must not be registered
// concurrently with saves.
func (s *Store) OnError(fn func(error)) {
	s.onError = fn
}

// OnUpdate registers the hook fired with the new text after a save that
// changed the document.
func (s *Store) OnUpdate(fn func(string)) {
	s.onUpdate = fn
}

// SaveNode normalizes the edited rows of the node at path and writes
// them through the patch engine. On failure the stored text is left
// untouched and the error goes to both the return value and the OnError
// hook.
func (s *Store) SaveNode(path Path, rows []Row) error {
	return s.Save(path, Normalize(rows))
}

// Save writes a partial value at path. Semantically-equal results are
// dropped without firing OnUpdate.
func (s *Store) Save(path Path, newData *Node) error {
	s.mu.Lock()
	merged := MergeWithCurrent(s.text, path, newData)
	out, err := PatchDocument(s.text, path, merged)
	if err != nil {
		s.mu.Unlock()
		if s.onError != nil {
			s.onError(err)
		}
		return err
	}
	if jsonpatch.Equal([]byte(out), []byte(s.text)) {
		s.mu.Unlock()
		return nil
	}
	s.text = out
	s.mu.Unlock()
	if s.onUpdate != nil {
		s.onUpdate(out)
	}
	return nil
}
