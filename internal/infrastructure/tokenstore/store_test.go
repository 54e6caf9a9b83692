package tokenstore

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/balcaohq/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	store := NewFileStore(path)
	ctx := context.Background()

	record := &domain.TokenRecord{
		AccessToken:  "abc-123",
		RefreshToken: "refresh-456",
	}

	require.NoError(t, store.Save(ctx, record))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, record, loaded)
}

func TestFileStore_LoadAbsent(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "token.json"))

	loaded, err := store.Load(context.Background())

	assert.Nil(t, loaded)
	assert.ErrorIs(t, err, domain.ErrNoToken)
}

func TestFileStore_LastWriteWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	store := NewFileStore(path)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.TokenRecord{AccessToken: "first"}))
	require.NoError(t, store.Save(ctx, &domain.TokenRecord{AccessToken: "second"}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", loaded.AccessToken)
}

func TestFileStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	store := NewFileStore(path)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.TokenRecord{AccessToken: "abc"}))
	require.NoError(t, store.Clear(ctx))

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrNoToken)

	// Clearing an already-empty store is fine.
	assert.NoError(t, store.Clear(ctx))
}

func TestFileStore_RejectsEmptyToken(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "token.json"))
	ctx := context.Background()

	assert.ErrorIs(t, store.Save(ctx, nil), domain.ErrNoTokenReturned)
	assert.ErrorIs(t, store.Save(ctx, &domain.TokenRecord{}), domain.ErrNoTokenReturned)
}

func TestFileStore_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "token.json"))

	require.NoError(t, store.Save(context.Background(), &domain.TokenRecord{AccessToken: "abc"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "token.json", entries[0].Name())
}

func TestFileStore_ConcurrentWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	store := NewFileStore(path)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Save(ctx, &domain.TokenRecord{AccessToken: "tok"})
			_, _ = store.Load(ctx)
		}()
	}
	wg.Wait()

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", loaded.AccessToken)
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	record := &domain.TokenRecord{AccessToken: "abc", RefreshToken: "def"}
	require.NoError(t, store.Save(ctx, record))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, record, loaded)

	// The store keeps its own copy.
	record.AccessToken = "mutated"
	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", loaded.AccessToken)
}

func TestMemoryStore_ClearThenLoad(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.TokenRecord{AccessToken: "abc"}))
	require.NoError(t, store.Clear(ctx))

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrNoToken)
}
