package cache

import (
	"context"
	"time"
)

// CacheBackend defines the interface for cache implementations
type CacheBackend interface {
	// Get retrieves a value from the cache
	// Returns (value, found, error)
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value in the cache with the given TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache
	Delete(ctx context.Context, key string) error

	// DeletePrefix removes every value whose key starts with prefix and
	// reports how many were removed
	DeletePrefix(ctx context.Context, prefix string) (int, error)

	// Close releases the backend's resources
	Close() error
}
