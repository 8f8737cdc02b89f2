// Package memory contains in-process implementations of the storage ports.
// Nothing survives the process; used for throwaway sessions and tests.
package memory

import (
	"context"
	"sync"

	"github.com/example/ninegrid/internal/ports/secondary"
)

type table struct {
	mu     sync.RWMutex
	values map[string]string
}

// KeyValueStore implements secondary.KeyValueStore with a map.
type KeyValueStore struct {
	profile string
	table   *table
}

// NewKeyValueStore creates an empty store for profile.
func NewKeyValueStore(profile string) *KeyValueStore {
	return &KeyValueStore{
		profile: profile,
		table:   &table{values: make(map[string]string)},
	}
}

// WithProfile returns a store for another profile backed by the same table.
func (s *KeyValueStore) WithProfile(profile string) *KeyValueStore {
	return &KeyValueStore{profile: profile, table: s.table}
}

// Get returns the value stored under key.
func (s *KeyValueStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.table.mu.RLock()
	defer s.table.mu.RUnlock()

	value, ok := s.table.values[s.scoped(key)]
	return value, ok, nil
}

// Set stores value under key.
func (s *KeyValueStore) Set(ctx context.Context, key, value string) error {
	s.table.mu.Lock()
	defer s.table.mu.Unlock()

	s.table.values[s.scoped(key)] = value
	return nil
}

// Delete removes key.
func (s *KeyValueStore) Delete(ctx context.Context, key string) error {
	s.table.mu.Lock()
	defer s.table.mu.Unlock()

	delete(s.table.values, s.scoped(key))
	return nil
}

func (s *KeyValueStore) scoped(key string) string {
	return s.profile + "/" + key
}

// Ensure KeyValueStore implements the interface.
var _ secondary.KeyValueStore = (*KeyValueStore)(nil)
