// Package redis contains a Redis implementation of the KeyValueStore port.
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/example/ninegrid/internal/ports/secondary"
)

// KeyPrefix namespaces every key written by ninegrid.
const KeyPrefix = "ninegrid"

// Options configures a Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// KeyValueStore implements secondary.KeyValueStore on Redis.
// Keys are stored as ninegrid:<profile>:<key> with no expiry.
type KeyValueStore struct {
	rdb     goredis.UniversalClient
	profile string
}

// Dial connects to Redis and verifies the connection with PING.
func Dial(ctx context.Context, opts Options, profile string) (*KeyValueStore, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return NewKeyValueStore(rdb, profile), nil
}

// NewKeyValueStore wraps an existing client.
func NewKeyValueStore(rdb goredis.UniversalClient, profile string) *KeyValueStore {
	return &KeyValueStore{rdb: rdb, profile: profile}
}

// Get returns the value stored under key.
func (s *KeyValueStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.rdb.Get(ctx, s.key(key)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key.
func (s *KeyValueStore) Set(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *KeyValueStore) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying client.
func (s *KeyValueStore) Close() error {
	return s.rdb.Close()
}

func (s *KeyValueStore) key(key string) string {
	return KeyPrefix + ":" + s.profile + ":" + key
}

// Ensure KeyValueStore implements the interface.
var _ secondary.KeyValueStore = (*KeyValueStore)(nil)
