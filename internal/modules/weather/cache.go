// README: Response cache for the weather fetcher; redis when configured, otherwise in-process.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// Cache stores serialized fetch results by key.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

type RedisCache struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb, prefix: "skyguide:"}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, c.prefix+key, val, ttl).Err()
}

type MemoryCache struct {
	c *gocache.Cache
}

func NewMemoryCache(defaultTTL time.Duration) *MemoryCache {
	return &MemoryCache{c: gocache.New(defaultTTL, 2*defaultTTL)}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	return b, ok, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	m.c.Set(key, val, ttl)
	return nil
}

// Cached serves repeated lookups for the same city from a Cache. Failures are never cached,
// and a broken cache only costs an upstream call.
type Cached struct {
	next   Fetcher
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

var _ Fetcher = (*Cached)(nil)

func NewCached(next Fetcher, cache Cache, ttl time.Duration, logger *slog.Logger) *Cached {
	return &Cached{next: next, cache: cache, ttl: ttl, logger: logger.With("component", "weather-cache")}
}

func cacheKey(kind Kind, city string) string {
	return "weather:" + string(kind) + ":" + strings.Join(strings.Fields(strings.ToLower(city)), " ")
}

func (c *Cached) Current(ctx context.Context, city string) (Snapshot, error) {
	var s Snapshot
	key := cacheKey(KindCurrent, city)
	if c.load(ctx, key, &s) {
		return s, nil
	}
	s, err := c.next.Current(ctx, city)
	if err != nil {
		return Snapshot{}, err
	}
	c.store(ctx, key, s)
	return s, nil
}

func (c *Cached) Forecast(ctx context.Context, city string) (Forecast, error) {
	var f Forecast
	key := cacheKey(KindForecast, city)
	if c.load(ctx, key, &f) {
		return f, nil
	}
	f, err := c.next.Forecast(ctx, city)
	if err != nil {
		return Forecast{}, err
	}
	c.store(ctx, key, f)
	return f, nil
}

func (c *Cached) load(ctx context.Context, key string, out any) bool {
	b, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("cache get failed", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(b, out); err != nil {
		c.logger.Warn("cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (c *Cached) store(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, b, c.ttl); err != nil {
		c.logger.Warn("cache set failed", "key", key, "error", err)
	}
}
