package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache keeps entries in process memory. Entries past their expiry are
// dropped lazily on access and during inserts.
type MemoryCache struct {
	mu         sync.RWMutex
	now        func() time.Time
	defaultTTL time.Duration
	maxEntries int
	entries    map[string]memoryEntry
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryCache creates an in-memory cache. A non-positive ttl falls back to
// 30 seconds, a non-positive maxEntries to 128.
func NewMemoryCache(defaultTTL time.Duration, maxEntries int, now func() time.Time) *MemoryCache {
	if defaultTTL <= 0 {
		defaultTTL = 30 * time.Second
	}
	if maxEntries <= 0 {
		maxEntries = 128
	}
	if now == nil {
		now = time.Now
	}
	return &MemoryCache{
		now:        now,
		defaultTTL: defaultTTL,
		maxEntries: maxEntries,
		entries:    make(map[string]memoryEntry),
	}
}

// Get returns the value for key, reporting whether a live entry was found.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	return cloneBytes(entry.value), true, nil
}

// Set stores value under key for the given lifetime.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	cloned := cloneBytes(value)
	expiry := c.now().Add(ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cleanupLocked()
	if len(c.entries) >= c.maxEntries {
		c.evictOneLocked()
	}
	c.entries[key] = memoryEntry{value: cloned, expiresAt: expiry}
	return nil
}

// Delete removes the entry for key, if present.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Close is a no-op for the in-memory backend.
func (c *MemoryCache) Close() error {
	return nil
}

func (c *MemoryCache) cleanupLocked() {
	now := c.now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}

func (c *MemoryCache) evictOneLocked() {
	for key := range c.entries {
		delete(c.entries, key)
		return
	}
}

func cloneBytes(value []byte) []byte {
	if len(value) == 0 {
		return nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out
}
