// Package identity provides an observable authenticated-identity source.
// Conversations subscribe at construction and unsubscribe on teardown;
// login/logout only changes whether later turns are persisted.
package identity

import "sync"

// Identity is the authenticated user, or absent (nil) for anonymous chat.
type Identity struct {
	UserID string
	Email  string
}

// Source holds the current identity and notifies subscribers on change.
// Safe for concurrent use.
type Source struct {
	mu      sync.RWMutex
	current *Identity
	subs    map[int]func(*Identity)
	nextID  int
}

// NewSource creates a source with no authenticated identity.
func NewSource() *Source {
	return &Source{subs: make(map[int]func(*Identity))}
}

// Current returns the identity at this instant, nil when anonymous.
func (s *Source) Current() *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set replaces the identity and notifies subscribers. Pass nil on logout.
func (s *Source) Set(id *Identity) {
	s.mu.Lock()
	if identityEqual(s.current, id) {
		s.mu.Unlock()
		return
	}
	s.current = id
	subs := make([]func(*Identity), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	// Notify outside the lock so subscribers may call back into the source.
	for _, fn := range subs {
		fn(id)
	}
}

// Subscribe registers fn for change notifications and returns a cancel
// function. fn is invoked immediately with the current identity.
func (s *Source) Subscribe(fn func(*Identity)) (cancel func()) {
	s.mu.Lock()
	key := s.nextID
	s.nextID++
	s.subs[key] = fn
	current := s.current
	s.mu.Unlock()

	fn(current)

	return func() {
		s.mu.Lock()
		delete(s.subs, key)
		s.mu.Unlock()
	}
}

func identityEqual(a, b *Identity) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.UserID == b.UserID && a.Email == b.Email
}
