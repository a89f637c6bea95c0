package tokenstore

import "sync"

type InMemoryStore struct {
	mu      sync.Mutex
	pair    TokenPair
	present bool
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Save(pair TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = pair
	s.present = true
	return nil
}

func (s *InMemoryStore) Load() (TokenPair, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.present {
		return TokenPair{}, false, nil
	}
	return s.pair, true, nil
}

func (s *InMemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = TokenPair{}
	s.present = false
	return nil
}
