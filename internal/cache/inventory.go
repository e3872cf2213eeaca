package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"trendsmith/internal/middleware"

	"github.com/redis/go-redis/v9"
)

const (
	TrendKeyPrefix = "trend:%s"
)

const (
	TrendTTL = 5 * time.Minute
)

func TrendKey(trendID string) string {
	return fmt.Sprintf(TrendKeyPrefix, trendID)
}

// Cache is a JSON cache-aside layer over Redis. A nil client disables caching.
type Cache struct {
	client *redis.Client
}

// New wraps client, which may be nil.
func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Enabled reports whether a Redis client backs the cache.
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// Aside returns the cached value for key, or calls load, stores its result for
// ttl and returns it. Redis failures fall through to load.
func Aside[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	if !c.Enabled() {
		return load(ctx)
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var cached T
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			return cached, nil
		}
		middleware.Logger.WarnContext(ctx, "discarding undecodable cache entry", slog.String("key", key))
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if encoded, jsonErr := json.Marshal(value); jsonErr == nil {
		if setErr := c.client.Set(ctx, key, encoded, ttl).Err(); setErr != nil {
			middleware.Logger.WarnContext(ctx, "cache write failed", slog.String("key", key), slog.String("error", setErr.Error()))
		}
	}
	return value, nil
}

// Invalidate removes keys; errors are logged and ignored.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "cache invalidation failed", slog.Any("keys", keys), slog.String("error", err.Error()))
	}
}

// InvalidateTrend drops the cached detail of a trend.
func (c *Cache) InvalidateTrend(ctx context.Context, trendID string) {
	c.Invalidate(ctx, TrendKey(trendID))
}
