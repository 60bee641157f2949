// Package cache provides a small byte-oriented cache used for computed
// statistics, with in-memory and Redis backends.
package cache

import (
	"context"
	"time"
)

// Cache stores serialized values under string keys with per-entry expiry.
type Cache interface {
	// Get returns the value for key, reporting whether a live entry was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key for the given lifetime.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the entry for key, if present.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
