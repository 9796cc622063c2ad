// Package cache provides the persistent mapping from normalized skill text
// to standardized taxonomy entries: a generic key-value store with file,
// in-memory, and PostgreSQL implementations, and the snapshot build/load
// lifecycle around it.
package cache

import (
	"context"
	"strings"
	"sync"

	"github.com/martin/skillsource/internal/taxonomy"
)

// Record maps a normalized skill phrase to its taxonomy entry. A nil
// Taxonomy means the lookup was exhausted without a match; the distinction
// between "never looked up" and "looked up, no match" is what makes
// rebuilds cheap.
type Record struct {
	Normalized string          `json:"normalized"`
	Taxonomy   *taxonomy.Entry `json:"onet"`
}

// Store is a keyed record store. Keys are lower-cased normalized skill
// text; implementations must treat them verbatim (callers lower-case).
type Store interface {
	Get(ctx context.Context, key string) (*Record, bool, error)
	Set(ctx context.Context, key string, rec Record) error
	Remove(ctx context.Context, key string) error
}

// Key canonicalizes a skill phrase into its store key.
func Key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// MemoryStore is an in-memory Store for tests and single-run builds.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

// Get returns the record for key, if present.
func (s *MemoryStore) Get(_ context.Context, key string) (*Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[key]
	if !ok {
		return nil, false, nil
	}
	return &rec, true, nil
}

// Set stores a record under key, overwriting any previous value.
func (s *MemoryStore) Set(_ context.Context, key string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = rec
	return nil
}

// Remove deletes the record for key. Removing a missing key is not an error.
func (s *MemoryStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
	return nil
}
