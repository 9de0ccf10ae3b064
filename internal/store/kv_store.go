package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var (
	ErrStoreNotAvailable = errors.New("store not available")
	ErrKeyNotFound       = errors.New("key not found")
)

// KVStore provides JSON get/set operations over the shared key-value store.
// Values persist until explicitly deleted; account collections are written
// back in full on every mutation.
type KVStore struct {
	client *redis.Client
	prefix string
}

// NewKVStore creates a store helper. The prefix namespaces all keys so
// several services can share one Redis instance.
func NewKVStore(client *redis.Client, prefix string) *KVStore {
	return &KVStore{
		client: client,
		prefix: prefix,
	}
}

// Key generates a storage key with prefix.
func (s *KVStore) Key(key string) string {
	return fmt.Sprintf("%s%s", s.prefix, key)
}

// Get retrieves and unmarshals a value.
func (s *KVStore) Get(ctx context.Context, key string, dest interface{}) error {
	if s.client == nil {
		return ErrStoreNotAvailable
	}

	data, err := s.client.Get(ctx, s.Key(key)).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrKeyNotFound
		}
		return fmt.Errorf("store get error: %w", err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("store unmarshal error: %w", err)
	}

	return nil
}

// Set marshals and stores a value with no expiry.
func (s *KVStore) Set(ctx context.Context, key string, value interface{}) error {
	if s.client == nil {
		return ErrStoreNotAvailable
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("store marshal error: %w", err)
	}

	return s.client.Set(ctx, s.Key(key), data, 0).Err()
}

// SetString stores a raw string value.
func (s *KVStore) SetString(ctx context.Context, key string, value string) error {
	if s.client == nil {
		return ErrStoreNotAvailable
	}

	return s.client.Set(ctx, s.Key(key), value, 0).Err()
}

// GetString retrieves a raw string value.
func (s *KVStore) GetString(ctx context.Context, key string) (string, error) {
	if s.client == nil {
		return "", ErrStoreNotAvailable
	}

	result, err := s.client.Get(ctx, s.Key(key)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("store get string error: %w", err)
	}

	return result, nil
}

// Delete removes keys, pipelining when more than one is given.
func (s *KVStore) Delete(ctx context.Context, keys ...string) error {
	if s.client == nil {
		return ErrStoreNotAvailable
	}

	if len(keys) == 0 {
		return nil
	}

	storeKeys := make([]string, len(keys))
	for i, key := range keys {
		storeKeys[i] = s.Key(key)
	}

	if len(storeKeys) > 1 {
		pipe := s.client.Pipeline()
		pipe.Del(ctx, storeKeys...)
		_, err := pipe.Exec(ctx)
		return err
	}

	return s.client.Del(ctx, storeKeys...).Err()
}

// Exists checks if a key exists.
func (s *KVStore) Exists(ctx context.Context, key string) (bool, error) {
	if s.client == nil {
		return false, ErrStoreNotAvailable
	}

	count, err := s.client.Exists(ctx, s.Key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("store exists error: %w", err)
	}

	return count > 0, nil
}

// Ping verifies the store connection.
func (s *KVStore) Ping(ctx context.Context) error {
	if s.client == nil {
		return ErrStoreNotAvailable
	}
	return s.client.Ping(ctx).Err()
}
