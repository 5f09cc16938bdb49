package wordpress

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type cacheEntry struct {
	value   any
	expires time.Time
}

// Cache holds successful responses for their revalidation window.
// Identical concurrent fetches share one upstream call.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	group   singleflight.Group
	now     func() time.Time
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

func (c *Cache) get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.expires) {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: value, expires: c.now().Add(ttl)}
}

// Purge drops expired entries.
func (c *Cache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Fetch returns the cached value for key or calls fn. Errors are never
// cached. A ttl of zero or less disables caching but still collapses
// concurrent calls.
func (c *Cache) Fetch(key string, ttl time.Duration, fn func() (any, error)) (value any, hit bool, err error) {
	if ttl > 0 {
		if v, ok := c.get(key); ok {
			return v, true, nil
		}
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		v, err := fn()
		if err != nil {
			return nil, err
		}
		if ttl > 0 {
			c.set(key, v, ttl)
		}
		return v, nil
	})
	return v, false, err
}

func cached[T any](c *Client, op, key string, ttl time.Duration, fn func() (T, error)) (T, error) {
	v, hit, err := c.cache.Fetch(key, ttl, func() (any, error) {
		return fn()
	})
	if hit {
		c.metrics.RecordCacheHit(op)
	} else {
		c.metrics.RecordCacheMiss(op)
	}

	var zero T
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}
