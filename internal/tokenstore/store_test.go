package tokenstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInMemoryStore(t *testing.T) {
	store := NewInMemoryStore()

	_, present, err := store.Load()
	require.NoError(t, err)
	require.False(t, present)

	pair := TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"}
	require.NoError(t, store.Save(pair))

	loaded, present, err := store.Load()
	require.NoError(t, err)
	require.True(t, present)
	require.Equal(t, pair, loaded)

	// Save overwrites the whole pair.
	next := TokenPair{AccessToken: "access-2", RefreshToken: "refresh-2"}
	require.NoError(t, store.Save(next))
	loaded, present, err = store.Load()
	require.NoError(t, err)
	require.True(t, present)
	require.Equal(t, next, loaded)

	require.NoError(t, store.Clear())
	_, present, err = store.Load()
	require.NoError(t, err)
	require.False(t, present)

	// Clear is idempotent.
	require.NoError(t, store.Clear())
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tokens.json")
	store := NewFileStore(path)

	_, present, err := store.Load()
	require.NoError(t, err)
	require.False(t, present)

	pair := TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"}
	require.NoError(t, store.Save(pair))

	// A fresh store reading the same file sees the saved pair.
	reopened := NewFileStore(path)
	loaded, present, err := reopened.Load()
	require.NoError(t, err)
	require.True(t, present)
	require.Equal(t, pair, loaded)

	require.NoError(t, store.Clear())
	_, present, err = store.Load()
	require.NoError(t, err)
	require.False(t, present)

	require.NoError(t, store.Clear())
}

func TestFileStoreSingleRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(TokenPair{AccessToken: "a", RefreshToken: "r"}))

	// Both tokens live in one file, no temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "tokens.json", entries[0].Name())
}
