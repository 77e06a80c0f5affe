// Package cache implements the content-addressed result cache that makes
// repeated evaluations of the same answer sheet deterministic: within a
// session, identical (document, mode, criteria) short-circuits to the
// previously observed result instead of re-invoking the remote model.
package cache

import (
	"time"

	"www.github.com/Wanderer0074348/SheetGrader/src/models"
)

// Entry is an immutable cached grading result. Only successful evaluations
// are stored; failures are retried on the next identical request.
type Entry struct {
	Evaluation  *models.Evaluation `json:"evaluation"`
	RawResponse string             `json:"raw_response"`
	Filename    string             `json:"filename"`
	Mode        models.Mode        `json:"mode"`
	ModelUsed   string             `json:"model_used"`
	CreatedAt   time.Time          `json:"created_at"`
}

// Store maps cache keys to entries for a single interactive session. It is an
// owned value with no internal locking: the session manager serializes access,
// and a session has one active interaction at a time. Entries live until the
// store is cleared or the session ends; there is no eviction.
type Store struct {
	entries map[Key]Entry
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{entries: make(map[Key]Entry)}
}

// Lookup returns the entry for key. A miss is the normal trigger for a fresh
// remote call, not an error.
func (s *Store) Lookup(key Key) (Entry, bool) {
	e, ok := s.entries[key]
	return e, ok
}

// Put inserts or overwrites the entry for key. Storing the identical
// (key, entry) pair again is a no-op in effect.
func (s *Store) Put(key Key, entry Entry) {
	s.entries[key] = entry
}

// Clear drops every entry.
func (s *Store) Clear() {
	s.entries = make(map[Key]Entry)
}

// Len reports the number of cached entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Keys returns the stored keys in no particular order.
func (s *Store) Keys() []Key {
	keys := make([]Key, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	return keys
}
