package statestore

import (
	"context"
	"sync"
	"time"

	"github.com/balcaohq/backend/internal/domain"
)

// pendingLogin is a single in-flight login attempt with its expiry.
type pendingLogin struct {
	Expiration time.Time
}

// MemoryStore is a thread-safe store of pending login states with TTL.
// Each login attempt gets its own entry, so concurrent logins do not
// invalidate each other; entries are single-use and consumed on callback.
type MemoryStore struct {
	states map[string]pendingLogin
	mutex  sync.Mutex
}

// NewMemoryStore creates a new pending-login store and starts the
// background cleanup of expired entries.
func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{
		states: make(map[string]pendingLogin),
	}

	go store.cleanupExpired()

	return store
}

// Save records a pending login state that expires after ttl.
func (s *MemoryStore) Save(ctx context.Context, state string, ttl time.Duration) error {
	if state == "" {
		return domain.ErrStateNotFound
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.states[state] = pendingLogin{Expiration: time.Now().Add(ttl)}
	return nil
}

// GetAndDelete consumes the state. Unknown or expired states yield
// domain.ErrStateNotFound; a second callback with the same state fails.
func (s *MemoryStore) GetAndDelete(ctx context.Context, state string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	entry, exists := s.states[state]
	if !exists {
		return domain.ErrStateNotFound
	}
	delete(s.states, state)

	if time.Now().After(entry.Expiration) {
		return domain.ErrStateNotFound
	}

	return nil
}

// Size returns the number of pending logins (for tests/monitoring).
func (s *MemoryStore) Size() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.states)
}

// cleanupExpired removes expired entries every few minutes so abandoned
// login attempts do not accumulate.
func (s *MemoryStore) cleanupExpired() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mutex.Lock()
		now := time.Now()
		for state, entry := range s.states {
			if now.After(entry.Expiration) {
				delete(s.states, state)
			}
		}
		s.mutex.Unlock()
	}
}
