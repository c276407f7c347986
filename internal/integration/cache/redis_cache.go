package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/smartspend/backend/internal/application/adapter"
)

// RedisCache stores the ledger collections in Redis so several API instances
// share one cache and one invalidation.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttls   TTLs
}

// NewRedisCache creates a Redis-backed cache. Keys are namespaced with prefix.
func NewRedisCache(client *redis.Client, prefix string, ttls TTLs) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: prefix,
		ttls:   ttls,
	}
}

func (c *RedisCache) key(key adapter.CacheKey) string {
	return c.prefix + "ledger:" + string(key)
}

// Get decodes the entry for key into dest.
func (c *RedisCache) Get(ctx context.Context, key adapter.CacheKey, dest any) (bool, error) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache entry %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to decode cache entry %s: %w", key, err)
	}
	return true, nil
}

// Set stores value under key with the collection's TTL.
func (c *RedisCache) Set(ctx context.Context, key adapter.CacheKey, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry %s: %w", key, err)
	}
	if err := c.client.Set(ctx, c.key(key), data, c.ttls.For(key)).Err(); err != nil {
		return fmt.Errorf("failed to write cache entry %s: %w", key, err)
	}
	return nil
}

// Invalidate removes the given entries in a single DEL.
func (c *RedisCache) Invalidate(ctx context.Context, keys ...adapter.CacheKey) error {
	if len(keys) == 0 {
		return nil
	}
	redisKeys := make([]string, len(keys))
	for i, key := range keys {
		redisKeys[i] = c.key(key)
	}
	if err := c.client.Del(ctx, redisKeys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cache entries: %w", err)
	}
	return nil
}
