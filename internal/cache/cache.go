package cache

import (
	"strings"
	"sync"
	"time"
)

// Key addresses one cached query result: ordered segments of
// [entity, userID, from, to]. When either boundary date is missing the key
// collapses to the user-scoped [entity, userID] form.
type Key []string

func NewKey(entity, userID, from, to string) Key {
	if from == "" || to == "" {
		return Key{entity, userID}
	}
	return Key{entity, userID, from, to}
}

func (k Key) String() string {
	return strings.Join(k, "|")
}

// HasPrefix reports whether k starts with every segment of prefix, so the
// user-scoped key matches all date-scoped keys of the same entity and user.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i, segment := range prefix {
		if k[i] != segment {
			return false
		}
	}
	return true
}

type entry[T any] struct {
	key       Key
	data      T
	fetchedAt time.Time
	stale     bool
}

// Store is a keyed cache with TTL-based freshness and explicit stale
// marking. A Get only hits while the entry is unexpired and not invalidated.
type Store[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*entry[T]
}

func NewStore[T any](ttl time.Duration) *Store[T] {
	return &Store[T]{
		ttl:     ttl,
		entries: make(map[string]*entry[T]),
	}
}

func (s *Store[T]) Get(key Key) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	item, exists := s.entries[key.String()]
	if !exists {
		return zero, false
	}
	if item.stale {
		return zero, false
	}
	if time.Now().After(item.fetchedAt.Add(s.ttl)) {
		delete(s.entries, key.String())
		return zero, false
	}
	return item.data, true
}

func (s *Store[T]) Set(key Key, data T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key.String()] = &entry[T]{
		key:       key,
		data:      data,
		fetchedAt: time.Now(),
	}
}

// Invalidate marks every entry whose key starts with prefix as stale and
// returns how many entries were marked.
func (s *Store[T]) Invalidate(prefix Key) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	marked := 0
	for _, item := range s.entries {
		if item.key.HasPrefix(prefix) && !item.stale {
			item.stale = true
			marked++
		}
	}
	return marked
}

func (s *Store[T]) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
