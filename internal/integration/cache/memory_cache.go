package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/smartspend/backend/internal/application/adapter"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryCache is an in-process cache. Values are stored JSON-encoded so a
// caller can never mutate a cached collection through a shared pointer.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[adapter.CacheKey]memoryEntry
	ttls    TTLs
	now     func() time.Time
}

// NewMemoryCache creates an in-process cache with per-collection TTLs.
func NewMemoryCache(ttls TTLs) *MemoryCache {
	return &MemoryCache{
		entries: make(map[adapter.CacheKey]memoryEntry),
		ttls:    ttls,
		now:     time.Now,
	}
}

// Get decodes the entry for key into dest.
func (c *MemoryCache) Get(_ context.Context, key adapter.CacheKey, dest any) (bool, error) {
	c.mu.Lock()
	entry, ok := c.entries[key]
	if ok && !c.now().Before(entry.expiresAt) {
		delete(c.entries, key)
		ok = false
	}
	c.mu.Unlock()

	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(entry.data, dest); err != nil {
		return false, fmt.Errorf("failed to decode cache entry %s: %w", key, err)
	}
	return true, nil
}

// Set stores value under key until its TTL elapses.
func (c *MemoryCache) Set(_ context.Context, key adapter.CacheKey, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry %s: %w", key, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{
		data:      data,
		expiresAt: c.now().Add(c.ttls.For(key)),
	}
	return nil
}

// Invalidate removes the given entries.
func (c *MemoryCache) Invalidate(_ context.Context, keys ...adapter.CacheKey) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}
