package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a small JSON-over-redis cache. A nil *Cache is a no-op, so callers
// keep working when no redis instance is configured; the database stays the
// source of truth either way.
type Cache struct {
	client *redis.Client
}

// New connects to redisURL. An empty URL returns a nil cache.
func New(redisURL string) (*Cache, error) {
	if redisURL == "" {
		return nil, nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	return &Cache{client: redis.NewClient(opt)}, nil
}

// Get unmarshals the cached value for key into dest. Returns redis.Nil when
// the key is absent.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	if c == nil {
		return redis.Nil
	}

	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

// Set stores value under key with the given expiration.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if c == nil {
		return nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, expiration).Err()
}

// Delete removes key from the cache.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if c == nil {
		return nil
	}
	return c.client.Del(ctx, key).Err()
}

// Missed reports whether err is a cache miss.
func Missed(err error) bool {
	return err == redis.Nil
}
