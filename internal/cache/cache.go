// Package cache provides a generic TTL cache for memoizing availability
// payloads per search key.
package cache

import (
	"sync"
	"time"
)

// item wraps a cached value with its expiration time.
type item[T any] struct {
	value     T
	expiresAt time.Time
}

// Cache is a thread-safe TTL cache. Entries are immutable once stored and
// simply expire; there is no invalidation API. Concurrent Sets to the same
// key race safely, last writer wins.
type Cache[T any] struct {
	mu    sync.RWMutex
	items map[string]item[T]
	ttl   time.Duration
	now   func() time.Time
}

// New creates a cache with the specified TTL.
func New[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{
		items: make(map[string]item[T]),
		ttl:   ttl,
		now:   time.Now,
	}
}

// NewWithClock creates a cache with an injected clock, for tests.
func NewWithClock[T any](ttl time.Duration, now func() time.Time) *Cache[T] {
	c := New[T](ttl)
	c.now = now
	return c
}

// Get retrieves a value, returning (value, true) if found and not expired.
// Expired entries are evicted on access.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	entry, exists := c.items[key]
	c.mu.RUnlock()

	if !exists {
		var zero T
		return zero, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; a fresh Set may have raced us.
		if cur, ok := c.items[key]; ok && c.now().After(cur.expiresAt) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		var zero T
		return zero, false
	}
	return entry.value, true
}

// Set stores a value with the cache's TTL.
func (c *Cache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = item[T]{
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	}
}

// Size returns the number of stored entries, including expired ones not yet
// evicted.
func (c *Cache[T]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
