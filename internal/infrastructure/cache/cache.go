package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ventapos/ventapos-api/internal/config"
)

// Cache keys for aggregated views.
const (
	PaymentSummaryKey = "payments:summary"
	DashboardStatsKey = "dashboard:stats"
)

// Cache wraps a Redis client. A nil inner client degrades gracefully: all
// reads miss and all writes are dropped, so the API works without Redis.
type Cache struct {
	client *redis.Client
	logger *zap.Logger
}

// New connects to Redis using the provided configuration. If the connection
// fails the returned cache is disabled rather than failing startup.
func New(cfg *config.RedisConfig, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		logger.Warn("redis unavailable, caching disabled", zap.Error(err))
		return &Cache{logger: logger}
	}

	logger.Info("connected to redis", zap.String("addr", cfg.Addr))
	return &Cache{client: client, logger: logger}
}

// Disabled returns a cache that never stores anything. Useful in tests.
func Disabled() *Cache {
	return &Cache{logger: zap.NewNop()}
}

// Enabled reports whether a Redis connection is active.
func (c *Cache) Enabled() bool {
	return c.client != nil
}

// Get returns cached data for a key.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores data with a TTL.
func (c *Cache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if c.client == nil {
		return
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		c.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate removes specific cache keys.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c.client == nil || len(keys) == 0 {
		return
	}
	c.client.Del(ctx, keys...)
}

// InvalidatePattern removes all keys matching a glob pattern.
func (c *Cache) InvalidatePattern(ctx context.Context, pattern string) {
	if c.client == nil {
		return
	}
	keys, err := c.client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		c.client.Del(ctx, keys...)
	}
}

// IsHealthy returns true if the Redis connection is working.
func (c *Cache) IsHealthy() bool {
	if c.client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return c.client.Ping(ctx).Err() == nil
}

// Close releases the underlying connection.
func (c *Cache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
