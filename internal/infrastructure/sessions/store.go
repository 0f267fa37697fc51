// Package sessions provides the in-memory backing store for image edit
// sessions.
package sessions

import (
	"context"
	"sync"
	"time"

	"visioneer-server/internal/domain/editsession"
)

type entry struct {
	session   *editsession.Session
	expiresAt time.Time
}

// MemoryStore holds edit sessions with a TTL refreshed on every Put.
type MemoryStore struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemoryStore creates a store whose sessions expire ttl after their
// last write.
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

func (s *MemoryStore) Put(_ context.Context, session *editsession.Session) error {
	s.mu.Lock()
	s.entries[session.PublicID] = entry{
		session:   session,
		expiresAt: s.now().Add(s.ttl),
	}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, publicID string) (*editsession.Session, bool) {
	s.mu.RLock()
	ent, ok := s.entries[publicID]
	s.mu.RUnlock()
	if !ok || s.now().After(ent.expiresAt) {
		return nil, false
	}
	return ent.session, true
}

func (s *MemoryStore) Delete(_ context.Context, publicID string) {
	s.mu.Lock()
	delete(s.entries, publicID)
	s.mu.Unlock()
}

// Prune drops expired sessions and reports how many were removed.
func (s *MemoryStore) Prune() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, ent := range s.entries {
		if now.After(ent.expiresAt) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

var _ editsession.Store = (*MemoryStore)(nil)
