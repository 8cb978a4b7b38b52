package cache

import (
	"context"
	"time"
)

// Store is the contract a cache backend must satisfy. Both the in-process
// store and the redis client implement it.
type Store interface {
	// Get retrieves a live value into dest, reporting whether the key was present.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value under key for the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Ping probes the backend for health checks.
	Ping(ctx context.Context) error
}
