package tokenstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/balcaohq/backend/internal/domain"
)

// FileStore persists the token record as a single JSON file so the login
// survives process restarts. Save writes to a temp file in the same
// directory and renames it over the target, so a concurrent reader never
// sees a partial write.
type FileStore struct {
	path  string
	mutex sync.Mutex
}

// NewFileStore creates a file-backed token store at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns the persisted record, or domain.ErrNoToken if none exists.
func (s *FileStore) Load(ctx context.Context) (*domain.TokenRecord, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNoToken
		}
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var record domain.TokenRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to decode token file: %w", err)
	}
	if record.AccessToken == "" {
		return nil, domain.ErrNoToken
	}

	return &record, nil
}

// Save overwrites the stored record atomically (write-to-temp-then-rename).
func (s *FileStore) Save(ctx context.Context, record *domain.TokenRecord) error {
	if record == nil || record.AccessToken == "" {
		return domain.ErrNoTokenReturned
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".token-*")
	if err != nil {
		return fmt.Errorf("failed to create temp token file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write token file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close token file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set token file mode: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace token file: %w", err)
	}

	return nil
}

// Clear removes the stored record. A missing file is not an error.
func (s *FileStore) Clear(ctx context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}
