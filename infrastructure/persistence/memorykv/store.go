// Package memorykv provides an in-process KeyValueStore for tests and
// ephemeral runs.
package memorykv

import (
	"context"
	"sync"
)

// Store is a map-backed key-value store, safe for concurrent use
type Store struct {
	mu   sync.RWMutex
	data map[string]string
}

// New creates an empty in-memory store
func New() *Store {
	return &Store{data: make(map[string]string)}
}

// Get retrieves the value under key
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, found := s.data[key]
	return value, found, nil
}

// Set stores value under key
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return nil
}

// Delete removes key
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}

// Close is a no-op for the in-memory store
func (s *Store) Close() error {
	return nil
}

// Len reports the number of stored keys. Test helper.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
