package mock

import (
	"context"
	"sync"
)

// Cache is an in-memory CacheInvalidator test double that just remembers
// which access keys were invalidated and how many times.
type Cache struct {
	mu    sync.Mutex
	calls map[string]int
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{calls: make(map[string]int)}
}

// Invalidate records an invalidation for accessKey.
func (c *Cache) Invalidate(ctx context.Context, accessKey string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[accessKey]++
	return nil
}

// Count returns how many times accessKey was invalidated.
func (c *Cache) Count(accessKey string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[accessKey]
}
