package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewKeyCollapsesPartialRange(t *testing.T) {
	full := NewKey("transactions", "U1", "2024-01-01", "2024-01-31")
	require.Equal(t, Key{"transactions", "U1", "2024-01-01", "2024-01-31"}, full)

	userScoped := NewKey("transactions", "U1", "", "")
	require.Equal(t, Key{"transactions", "U1"}, userScoped)

	// A single boundary date collapses too.
	require.Equal(t, Key{"transactions", "U1"}, NewKey("transactions", "U1", "2024-01-01", ""))

	require.NotEqual(t, full.String(), userScoped.String())
}

func TestKeyHasPrefix(t *testing.T) {
	key := NewKey("balance", "U1", "2024-01-01", "2024-01-31")

	require.True(t, key.HasPrefix(Key{"balance", "U1"}))
	require.True(t, key.HasPrefix(key))
	require.False(t, key.HasPrefix(Key{"balance", "U2"}))
	require.False(t, key.HasPrefix(Key{"transactions", "U1"}))
	require.False(t, Key{"balance", "U1"}.HasPrefix(key))
}

func TestStoreGetSet(t *testing.T) {
	store := NewStore[string](time.Minute)
	key := NewKey("balance", "U1", "2024-01-01", "2024-01-31")

	_, hit := store.Get(key)
	require.False(t, hit)

	store.Set(key, "payload")
	value, hit := store.Get(key)
	require.True(t, hit)
	require.Equal(t, "payload", value)
}

func TestStoreExpiry(t *testing.T) {
	store := NewStore[string](10 * time.Millisecond)
	key := NewKey("balance", "U1", "2024-01-01", "2024-01-31")

	store.Set(key, "payload")
	time.Sleep(20 * time.Millisecond)

	_, hit := store.Get(key)
	require.False(t, hit)
}

func TestInvalidatePrefixMarksDateScopedEntries(t *testing.T) {
	store := NewStore[string](time.Minute)

	jan := NewKey("transactions", "U1", "2024-01-01", "2024-01-31")
	feb := NewKey("transactions", "U1", "2024-02-01", "2024-02-29")
	otherUser := NewKey("transactions", "U2", "2024-01-01", "2024-01-31")
	store.Set(jan, "jan")
	store.Set(feb, "feb")
	store.Set(otherUser, "other")

	marked := store.Invalidate(NewKey("transactions", "U1", "", ""))
	require.Equal(t, 2, marked)

	_, hit := store.Get(jan)
	require.False(t, hit)
	_, hit = store.Get(feb)
	require.False(t, hit)

	// Another user's entries are untouched.
	value, hit := store.Get(otherUser)
	require.True(t, hit)
	require.Equal(t, "other", value)

	// A stale entry stays stale until overwritten.
	require.Equal(t, 0, store.Invalidate(NewKey("transactions", "U1", "", "")))
	store.Set(jan, "jan-refetched")
	value, hit = store.Get(jan)
	require.True(t, hit)
	require.Equal(t, "jan-refetched", value)
}
