// Package cache provides a small in-memory store with per-entry expiry.
// It backs supplier page fetching so repeated outreach runs against the
// same supplier do not re-download the site every time.
package cache

import (
	"sync"
	"time"
)

// DefaultTTL is how long an entry stays fresh unless a caller overrides it.
const DefaultTTL = 7 * 24 * time.Hour

type entry struct {
	value     string
	expiresAt time.Time
}

// Store is a mutex-guarded map of string keys to string values with TTL.
type Store struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// New creates a store with the given TTL. A zero TTL uses DefaultTTL.
func New(ttl time.Duration) *Store {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached value and whether it was present and fresh.
// Expired entries are evicted on read.
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return "", false
	}
	if s.now().After(e.expiresAt) {
		delete(s.entries, key)
		return "", false
	}
	return e.value, true
}

// Set stores a value under key with the store's TTL.
func (s *Store) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{value: value, expiresAt: s.now().Add(s.ttl)}
}

// Invalidate removes an entry, forcing the next Get to miss.
func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Len reports how many entries are held, including any not yet evicted
// expired ones.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
