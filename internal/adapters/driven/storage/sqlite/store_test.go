package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "quizctl-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

// ==================== Store Creation and Initialization Tests ====================

func TestNewStore_CreatesDatabase(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	assert.Equal(t, "session.db", filepath.Base(store.Path()))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestNewStore_CreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dir)
	assert.NoError(t, err)
}

func TestNewStore_RecordsMigrations(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	var version int
	err := store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestNewStore_ReopenDoesNotReapplyMigrations(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), "token", "a1"))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	var count int
	err = reopened.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	val, ok, err := reopened.Get(context.Background(), "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a1", val)
}

// ==================== Session Key Tests ====================

func TestStore_GetMissing(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	val, ok, err := store.Get(context.Background(), "token")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, val)
}

func TestStore_SetOverwritesInPlace(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "token", "a1"))
	require.NoError(t, store.Set(ctx, "token", "a2"))

	val, ok, err := store.Get(ctx, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a2", val)

	var rows int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM session_kv").Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestStore_RemoveIsIdempotent(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "refreshToken", "r1"))
	require.NoError(t, store.Remove(ctx, "refreshToken"))
	require.NoError(t, store.Remove(ctx, "refreshToken"))

	_, ok, err := store.Get(ctx, "refreshToken")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_KeysAreIndependent(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "token", "a1"))
	require.NoError(t, store.Set(ctx, "username", "alice"))
	require.NoError(t, store.Remove(ctx, "token"))

	val, ok, err := store.Get(ctx, "username")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "alice", val)
}

func TestStore_EmptyValueIsStored(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "username", ""))

	val, ok, err := store.Get(ctx, "username")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, val)
}

func TestStore_ClosedReturnsError(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, _, err = store.Get(context.Background(), "token")
	assert.Error(t, err)
}

func TestStore_ConcurrentWrites(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.Set(ctx, "token", "same"))
		}()
	}
	wg.Wait()

	val, _, err := store.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "same", val)
}
