package kvstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, store Store) {
	t.Helper()

	_, ok, err := store.Get("token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set("token", "abc"))
	value, ok, err := store.Get("token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", value)

	require.NoError(t, store.Set("token", "def"))
	value, _, err = store.Get("token")
	require.NoError(t, err)
	assert.Equal(t, "def", value)

	require.NoError(t, store.Delete("token"))
	_, ok, err = store.Get("token")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting a missing key is not an error
	assert.NoError(t, store.Delete("token"))
}

func TestMemory(t *testing.T) {
	store := NewMemory()
	defer store.Close()
	testStore(t, store)
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.db")

	store, err := OpenSQLite(path)
	require.NoError(t, err)
	testStore(t, store)
	require.NoError(t, store.Set("token", "persisted"))
	require.NoError(t, store.Close())

	// Values survive a reopen
	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Get("token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "persisted", value)
}
