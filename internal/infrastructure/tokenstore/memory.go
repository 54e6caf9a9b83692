package tokenstore

import (
	"context"
	"sync"

	"github.com/balcaohq/backend/internal/domain"
)

// MemoryStore is a thread-safe single-slot token store. Useful for tests
// and deployments that do not want the token on disk.
type MemoryStore struct {
	mu     sync.RWMutex
	record *domain.TokenRecord
}

// NewMemoryStore creates an empty in-memory token store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the stored record, or domain.ErrNoToken if absent.
func (s *MemoryStore) Load(ctx context.Context) (*domain.TokenRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.record == nil {
		return nil, domain.ErrNoToken
	}
	copied := *s.record
	return &copied, nil
}

// Save overwrites the stored record (last-write-wins).
func (s *MemoryStore) Save(ctx context.Context, record *domain.TokenRecord) error {
	if record == nil || record.AccessToken == "" {
		return domain.ErrNoTokenReturned
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *record
	s.record = &copied
	return nil
}

// Clear removes the stored record.
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record = nil
	return nil
}
