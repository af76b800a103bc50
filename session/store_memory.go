package session

import (
	"sync"

	"github.com/pkg/errors"
)

// InMemoryStore is a thread-safe in-memory implementation of the Store
// interface, used in tests and for ephemeral sessions.
type InMemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

var _ Store = (*InMemoryStore)(nil)

// NewInMemoryStore creates a new in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{values: make(map[string][]byte)}
}

func (s *InMemoryStore) Get(key string) []byte {
	if key == "" {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return nil
	}
	// Return a copy to prevent external modifications
	out := make([]byte, len(value))
	copy(out, value)
	return out
}

func (s *InMemoryStore) Set(key string, value []byte) error {
	if key == "" {
		return errors.New("[InMemoryStore.Set] key cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.values[key] = stored
	return nil
}

func (s *InMemoryStore) Remove(key string) error {
	if key == "" {
		return errors.New("[InMemoryStore.Remove] key cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}
