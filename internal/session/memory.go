package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	data      *Data
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Suitable for development
// and tests; sessions do not survive a restart.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	done    chan struct{}
	once    sync.Once
}

// NewMemoryStore creates an in-memory session store. Sessions expire after
// ttl of inactivity; a ttl of zero disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		done:    make(chan struct{}),
	}
	if ttl > 0 {
		go s.reap()
	}
	return s
}

func (s *MemoryStore) reap() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for id, e := range s.entries {
				if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
					delete(s.entries, id)
				}
			}
			s.mu.Unlock()
		}
	}
}

func (s *MemoryStore) deadline() time.Time {
	if s.ttl <= 0 {
		return time.Time{}
	}
	return time.Now().Add(s.ttl)
}

// clone keeps callers from sharing memory with the store. Reads hand out
// fresh values and writes capture a snapshot, the same semantics a Redis
// round trip gives.
func clone(data *Data) *Data {
	c := *data
	return &c
}

func (s *MemoryStore) Create(_ context.Context, data *Data) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[data.ID] = memoryEntry{data: clone(data), expiresAt: s.deadline()}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, nil
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		delete(s.entries, id)
		return nil, nil
	}
	// Sliding expiry: reads keep active sessions alive.
	e.expiresAt = s.deadline()
	s.entries[id] = e
	return clone(e.data), nil
}

func (s *MemoryStore) Update(_ context.Context, data *Data) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[data.ID]; !ok {
		return ErrNotFound
	}
	s.entries[data.ID] = memoryEntry{data: clone(data), expiresAt: s.deadline()}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

func (s *MemoryStore) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}

var _ Store = (*MemoryStore)(nil)
