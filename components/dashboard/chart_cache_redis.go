package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisChartPrefix = "shopdash:chart:"
	redisChartOpTimeout     = 500 * time.Millisecond
)

// RedisChartCache shares rendered charts between dashboard instances. Redis
// failures degrade to rendering in-process; they never fail a page.
type RedisChartCache struct {
	client    redis.UniversalClient
	ttl       time.Duration
	prefix    string
	telemetry Telemetry
}

// RedisChartCacheOption customizes the redis cache.
type RedisChartCacheOption func(*RedisChartCache)

// WithRedisKeyPrefix changes the key namespace.
func WithRedisKeyPrefix(prefix string) RedisChartCacheOption {
	return func(c *RedisChartCache) {
		c.prefix = prefix
	}
}

// WithRedisTelemetry reports cache errors to the given sink.
func WithRedisTelemetry(t Telemetry) RedisChartCacheOption {
	return func(c *RedisChartCache) {
		c.telemetry = t
	}
}

// NewRedisChartCache wraps an existing redis client.
func NewRedisChartCache(client redis.UniversalClient, ttl time.Duration, opts ...RedisChartCacheOption) *RedisChartCache {
	c := &RedisChartCache{
		client: client,
		ttl:    ttl,
		prefix: defaultRedisChartPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.telemetry = normalizeTelemetry(c.telemetry)
	return c
}

// NewRedisChartCacheFromURL parses a redis:// URL and builds the cache.
func NewRedisChartCacheFromURL(url string, ttl time.Duration, opts ...RedisChartCacheOption) (*RedisChartCache, error) {
	options, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("dashboard: parse redis url: %w", err)
	}
	return NewRedisChartCache(redis.NewClient(options), ttl, opts...), nil
}

// Ping checks connectivity.
func (c *RedisChartCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("dashboard: redis ping: %w", err)
	}
	return nil
}

// GetOrRender implements RenderCache. The GET and the SET each get their own
// op timeout so a slow lookup does not starve the store.
func (c *RedisChartCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	key = c.prefix + key

	if html, ok := c.get(key); ok {
		return html, nil
	}

	html, err := render()
	if err != nil {
		return "", err
	}
	if c.ttl > 0 {
		c.set(key, html)
	}
	return html, nil
}

func (c *RedisChartCache) get(key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), redisChartOpTimeout)
	defer cancel()

	html, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		return html, true
	case errors.Is(err, redis.Nil):
	default:
		c.recordError(ctx, "get", err)
	}
	return "", false
}

func (c *RedisChartCache) set(key, html string) {
	ctx, cancel := context.WithTimeout(context.Background(), redisChartOpTimeout)
	defer cancel()

	if err := c.client.Set(ctx, key, html, c.ttl).Err(); err != nil {
		c.recordError(ctx, "set", err)
	}
}

func (c *RedisChartCache) recordError(ctx context.Context, op string, err error) {
	c.telemetry.Record(ctx, "dashboard.chart_cache.error", map[string]any{
		"op":    op,
		"error": err.Error(),
	})
}

// Close releases the underlying client.
func (c *RedisChartCache) Close() error {
	return c.client.Close()
}
