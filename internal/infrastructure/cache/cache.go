package cache

import (
	"sync"
	"time"
)

// Store is a TTL keyed cache for generated text. Implementations must
// be safe for concurrent use.
type Store interface {
	// Get returns the cached value and whether it exists and is fresh.
	Get(key string) (string, bool)

	// Set stores a value under key for the store's TTL.
	Set(key, value string)

	// Delete removes a key if present.
	Delete(key string)

	// Prune drops every expired entry and reports how many were removed.
	Prune() int
}

type entry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore is an in-memory Store with a fixed TTL per entry.
type MemoryStore struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemoryStore creates a store whose entries live for ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// NewMemoryStoreWithClock creates a store with an injected clock for testing.
func NewMemoryStoreWithClock(ttl time.Duration, now func() time.Time) *MemoryStore {
	store := NewMemoryStore(ttl)
	store.now = now
	return store
}

func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.RLock()
	ent, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok || s.now().After(ent.expiresAt) {
		return "", false
	}
	return ent.value, true
}

func (s *MemoryStore) Set(key, value string) {
	s.mu.Lock()
	s.entries[key] = entry{value: value, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()
}

func (s *MemoryStore) Delete(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

func (s *MemoryStore) Prune() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, ent := range s.entries {
		if now.After(ent.expiresAt) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

var _ Store = (*MemoryStore)(nil)
