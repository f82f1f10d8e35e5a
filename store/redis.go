package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each document as a single Redis string keyed by the
// store ID.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to the Redis instance at addr and verifies the
// connection.
func NewRedisStore(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return &RedisStore{client: client}, nil
}

// Load reads the document, bootstrapping an empty one if the key does
// not exist yet.
func (s *RedisStore) Load(ctx context.Context, storeID string, out any) error {
	data, err := s.client.Get(ctx, storeID).Result()
	if errors.Is(err, redis.Nil) {
		if err := s.client.Set(ctx, storeID, "{}", 0).Err(); err != nil {
			return fmt.Errorf("failed to bootstrap store %s: %w", storeID, err)
		}
		data = "{}"
	} else if err != nil {
		return fmt.Errorf("failed to read store %s: %w", storeID, err)
	}

	if data == "" {
		data = "{}"
	}

	if err := json.Unmarshal([]byte(data), out); err != nil {
		return &CorruptStoreError{StoreID: storeID, Err: err}
	}
	return nil
}

// Save replaces the document.
func (s *RedisStore) Save(ctx context.Context, storeID string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode store %s: %w", storeID, err)
	}
	if err := s.client.Set(ctx, storeID, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write store %s: %w", storeID, err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
