package transcript

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	log "github.com/tuannvm/ai-toolbox/internal/logging"
)

const keyPrefix = "toolbox:transcript:"

// Cache stores transcripts by key
type Cache interface {
	// Get returns the cached value; ok is false on a miss
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// RedisCache is a Cache on a redis server
type RedisCache struct {
	rdb *redis.Client
}

// NewRedisCache connects to redis and verifies the connection
func NewRedisCache(ctx context.Context, addr, password string, db int) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &RedisCache{rdb: rdb}, nil
}

// Get implements Cache
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set implements Cache
func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

// Close releases the redis connection pool
func (c *RedisCache) Close() error {
	return c.rdb.Close()
}

// CachedFetcher serves transcripts from a Cache before asking the wrapped Fetcher.
// Cache errors are logged and never fail a fetch.
type CachedFetcher struct {
	next  Fetcher
	cache Cache
	ttl   time.Duration
}

// NewCachedFetcher wraps next with cache
func NewCachedFetcher(next Fetcher, cache Cache, ttl time.Duration) *CachedFetcher {
	return &CachedFetcher{next: next, cache: cache, ttl: ttl}
}

// Fetch implements Fetcher
func (f *CachedFetcher) Fetch(ctx context.Context, videoID, language string) (string, error) {
	key := keyPrefix + LanguageCode(language) + ":" + videoID

	if val, ok, err := f.cache.Get(ctx, key); err != nil {
		log.Warnf("Transcript cache read failed for %s: %v", key, err)
	} else if ok {
		log.Debugf("Transcript cache hit: %s", key)
		return val, nil
	}

	text, err := f.next.Fetch(ctx, videoID, language)
	if err != nil {
		return "", err
	}
	if err := f.cache.Set(ctx, key, text, f.ttl); err != nil {
		log.Warnf("Transcript cache write failed for %s: %v", key, err)
	}
	return text, nil
}
