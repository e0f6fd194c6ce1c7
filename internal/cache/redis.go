// Package cache wraps the Redis client shared by rate limiting and the
// read-through caches.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"vidtube/internal/config"
)

// NewRedisClient connects and pings Redis. It returns nil when Redis is
// disabled or unreachable; callers then run without caching and rate limits.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	if !cfg.Enabled {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("redis unavailable, caching and rate limiting disabled")
		_ = client.Close()
		return nil
	}
	return client
}

// KV is the subset of the Redis client the JSON cache uses.
type KV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// JSONCache stores JSON documents under a key prefix. A nil KV turns every
// call into a miss.
type JSONCache struct {
	kv     KV
	prefix string
	ttl    time.Duration
}

func NewJSONCache(kv KV, prefix string, ttl time.Duration) *JSONCache {
	return &JSONCache{kv: kv, prefix: prefix, ttl: ttl}
}

// NewStatsCache builds the dashboard stats cache, tolerating a nil client.
func NewStatsCache(rdb *redis.Client, cfg config.CacheConfig) *JSONCache {
	if rdb == nil {
		return NewJSONCache(nil, cfg.Prefix+":stats", cfg.StatsTTL)
	}
	return NewJSONCache(rdb, cfg.Prefix+":stats", cfg.StatsTTL)
}

func (c *JSONCache) key(k string) string {
	return c.prefix + ":" + k
}

// Get decodes the cached value into dest and reports whether it was found.
func (c *JSONCache) Get(ctx context.Context, k string, dest interface{}) bool {
	if c == nil || c.kv == nil {
		return false
	}
	raw, err := c.kv.Get(ctx, c.key(k)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("key", k).Msg("cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Warn().Err(err).Str("key", k).Msg("cache entry corrupt")
		return false
	}
	return true
}

func (c *JSONCache) Set(ctx context.Context, k string, value interface{}) {
	if c == nil || c.kv == nil || c.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.kv.Set(ctx, c.key(k), raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", k).Msg("cache write failed")
	}
}
