package vault

import (
	"context"
	"sync"

	gopserrors "github.com/acidni/googleops/internal/errors"
)

// MemoryStore keeps secrets in-process. It backs tests and dry runs where
// writing to a real vault would be unwelcome.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string

	// SetCalls counts Set invocations, letting tests assert how many
	// writes an operation performed.
	SetCalls int
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]string),
	}
}

// Name returns the backend identifier.
func (s *MemoryStore) Name() string {
	return "memory"
}

// Set stores value under name.
func (s *MemoryStore) Set(ctx context.Context, name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = value
	s.SetCalls++
	return nil
}

// Get returns the value stored under name.
func (s *MemoryStore) Get(ctx context.Context, name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[name]
	if !ok {
		return "", gopserrors.StoreError{
			Store:   s.Name(),
			Op:      "get",
			Secret:  name,
			Message: "secret not found",
		}
	}
	return value, nil
}

// Validate always succeeds.
func (s *MemoryStore) Validate(ctx context.Context) error {
	return nil
}

// Len returns the number of stored secrets.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
