// Package sqlite contains SQLite implementations of the storage ports.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/ninegrid/internal/ports/secondary"
)

// KeyValueStore implements secondary.KeyValueStore with SQLite.
// Every key is scoped to the profile given at construction.
type KeyValueStore struct {
	db      *sql.DB
	profile string
}

// NewKeyValueStore creates a new SQLite key-value store for profile.
func NewKeyValueStore(db *sql.DB, profile string) *KeyValueStore {
	return &KeyValueStore{db: db, profile: profile}
}

// Get returns the value stored under key.
func (s *KeyValueStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM kv_store WHERE profile = ? AND key = ?",
		s.profile, key,
	).Scan(&value)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}

	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *KeyValueStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv_store (profile, key, value, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(profile, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		s.profile, key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	return nil
}

// Delete removes key.
func (s *KeyValueStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM kv_store WHERE profile = ? AND key = ?",
		s.profile, key,
	)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}

	return nil
}

// Ensure KeyValueStore implements the interface.
var _ secondary.KeyValueStore = (*KeyValueStore)(nil)
