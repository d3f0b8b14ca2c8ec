package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ncobase/taskdesk/config"
	"github.com/ncobase/taskdesk/logging/logger"
	"github.com/redis/go-redis/v9"
)

// ICache defines a general caching interface
type ICache[T any] interface {
	Get(context.Context, string) (*T, error)
	Set(context.Context, string, *T) error
	Delete(context.Context, string) error
}

// Cache stores JSON encoded values of T under a key prefix. A Cache with a
// nil client is disabled: reads miss and writes are dropped.
type Cache[T any] struct {
	rc     *redis.Client
	prefix string
	ttl    time.Duration
}

// NewClient returns a redis client for cfg, or nil when no address is set.
func NewClient(cfg *config.Redis) *redis.Client {
	if cfg == nil || cfg.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewCache creates a new Cache instance
func NewCache[T any](rc *redis.Client, prefix string, ttl time.Duration) *Cache[T] {
	return &Cache[T]{rc: rc, prefix: prefix, ttl: ttl}
}

// Enabled reports whether the cache has a client.
func (c *Cache[T]) Enabled() bool { return c != nil && c.rc != nil }

// Key returns the full redis key of field
func (c *Cache[T]) Key(field string) string {
	if c.prefix == "" {
		return field
	}
	return fmt.Sprintf("%s:%s", c.prefix, field)
}

// Get retrieves a single item. A miss, or a disabled cache, returns nil, nil.
func (c *Cache[T]) Get(ctx context.Context, field string) (*T, error) {
	if !c.Enabled() {
		return nil, nil
	}

	result, err := c.rc.Get(ctx, c.Key(field)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}

	var row T
	if err = json.Unmarshal([]byte(result), &row); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}
	return &row, nil
}

// Set saves a single item with the cache ttl
func (c *Cache[T]) Set(ctx context.Context, field string, data *T) error {
	if !c.Enabled() {
		return nil
	}

	bytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}
	if err = c.rc.Set(ctx, c.Key(field), bytes, c.ttl).Err(); err != nil {
		logger.Warnf(ctx, "failed to set cache %s: %v", c.Key(field), err)
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Delete removes data from cache
func (c *Cache[T]) Delete(ctx context.Context, field string) error {
	if !c.Enabled() {
		return nil
	}

	if err := c.rc.Del(ctx, c.Key(field)).Err(); err != nil {
		logger.Warnf(ctx, "failed to delete cache %s: %v", c.Key(field), err)
		return fmt.Errorf("failed to delete cache: %w", err)
	}
	return nil
}
