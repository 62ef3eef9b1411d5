package redis

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache implements domain.Cache on top of Redis. Every key is namespaced
// under a prefix so catalog entries never collide with other tenants of
// the same Redis instance.
type Cache struct {
	client *redis.Client
	logger *zap.Logger
	prefix string
}

// NewCache creates a Redis-backed cache. The prefix has any trailing
// colon stripped so callers can pass "tour-catalog" or "tour-catalog:".
func NewCache(client *redis.Client, logger *zap.Logger, prefix string) *Cache {
	return &Cache{
		client: client,
		logger: logger,
		prefix: strings.TrimSuffix(prefix, ":"),
	}
}

// Get returns the cached payload for key, or nil when the key is absent.
// A cache miss is not an error.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, c.namespaced(key)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		c.logger.Error("cache get failed",
			zap.String("key", key),
			zap.Error(err),
		)

		return nil, err
	}

	c.logger.Debug("cache hit",
		zap.String("key", key),
		zap.Int("bytes", len(data)),
	)

	return data, nil
}

// Set stores value under key for the given TTL.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.namespaced(key), value, ttl).Err(); err != nil {
		c.logger.Error("cache set failed",
			zap.String("key", key),
			zap.Duration("ttl", ttl),
			zap.Error(err),
		)

		return err
	}

	c.logger.Debug("cache set",
		zap.String("key", key),
		zap.Int("bytes", len(value)),
		zap.Duration("ttl", ttl),
	)

	return nil
}

// Delete removes key from the cache. Deleting a missing key is a no-op.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.namespaced(key)).Err(); err != nil {
		c.logger.Error("cache delete failed",
			zap.String("key", key),
			zap.Error(err),
		)

		return err
	}

	return nil
}

// Clear drops every key under the prefix. Invoked after a feed sync so
// search results never serve stale catalog data. SCAN keeps the walk
// non-blocking on a shared Redis.
func (c *Cache) Clear(ctx context.Context) error {
	pattern := c.prefix + ":*"
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Error("cache clear scan failed",
			zap.String("pattern", pattern),
			zap.Error(err),
		)

		return err
	}

	if len(keys) == 0 {
		c.logger.Debug("cache clear: nothing to drop",
			zap.String("pattern", pattern),
		)

		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Error("cache clear delete failed",
			zap.Int("key_count", len(keys)),
			zap.Error(err),
		)

		return err
	}

	c.logger.Info("cache cleared",
		zap.Int("key_count", len(keys)),
	)

	return nil
}

func (c *Cache) namespaced(key string) string {
	return c.prefix + ":" + key
}
