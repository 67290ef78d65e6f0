package session

import (
	"context"
	"sync"
	"time"

	"agile-assistant/backend/internal/features/generation/domain"
)

// Store keeps the latest generation result set per browser session.
type Store interface {
	Get(ctx context.Context, id string) (domain.ResultSet, bool, error)
	Put(ctx context.Context, id string, results domain.ResultSet) error
	Close() error
}

type memoryEntry struct {
	results  domain.ResultSet
	lastSeen time.Time
}

// MemoryStore is the default in-process Store. Entries idle for longer than
// ttl are dropped lazily.
type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]*memoryEntry
}

// NewMemoryStore returns a MemoryStore; ttl <= 0 disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*memoryEntry),
	}
}

func (s *MemoryStore) Get(_ context.Context, id string) (domain.ResultSet, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, false, nil
	}
	now := s.now()
	if s.expired(e, now) {
		delete(s.entries, id)
		return nil, false, nil
	}
	e.lastSeen = now
	return copyResults(e.results), true, nil
}

func (s *MemoryStore) Put(_ context.Context, id string, results domain.ResultSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for k, e := range s.entries {
		if s.expired(e, now) {
			delete(s.entries, k)
		}
	}
	s.entries[id] = &memoryEntry{results: copyResults(results), lastSeen: now}
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// Len reports the number of live entries.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *MemoryStore) expired(e *memoryEntry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.lastSeen) > s.ttl
}

func copyResults(in domain.ResultSet) domain.ResultSet {
	out := make(domain.ResultSet, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
