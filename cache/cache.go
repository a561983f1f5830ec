// Package cache provides a typed, prefixed cache for backend responses,
// backed by either an in-process store or redis.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	go_store "github.com/eko/gocache/store/go_cache/v4"
	redis_store "github.com/eko/gocache/store/redis/v4"
	"github.com/flicknest/flicknest/config"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// PrefixedCache wraps a cache.Cache and adds a prefix to all keys.
type PrefixedCache[T any] struct {
	cache  *cache.Cache[[]byte]
	prefix string
	ttl    time.Duration
}

// NewPrefixedCache creates a new prefixed cache wrapper on top of a
// shared byte cache.
func NewPrefixedCache[T any](cache *cache.Cache[[]byte], prefix string, ttl time.Duration) *PrefixedCache[T] {
	return &PrefixedCache[T]{
		cache:  cache,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Get retrieves a value from the cache with the prefixed key.
func (p *PrefixedCache[T]) Get(ctx context.Context, key any) (T, error) {
	prefixedKey := p.prefix + fmt.Sprintf("%v", key)
	data, err := p.cache.Get(ctx, prefixedKey)
	if err != nil {
		return *new(T), err
	}
	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return *new(T), err
	}
	return result, nil
}

// Set stores a value in the cache with the prefixed key and the
// configured TTL.
func (p *PrefixedCache[T]) Set(ctx context.Context, key any, object T) error {
	prefixedKey := p.prefix + fmt.Sprintf("%v", key)
	data, err := json.Marshal(object)
	if err != nil {
		return err
	}
	return p.cache.Set(ctx, prefixedKey, data, store.WithExpiration(p.ttl))
}

// Delete removes a value from the cache with the prefixed key.
func (p *PrefixedCache[T]) Delete(ctx context.Context, key any) error {
	prefixedKey := p.prefix + fmt.Sprintf("%v", key)
	return p.cache.Delete(ctx, prefixedKey)
}

// Clear removes all values from the cache.
func (p *PrefixedCache[T]) Clear(ctx context.Context) error {
	return p.cache.Clear(ctx)
}

// New creates the shared byte cache for the configured backend.
func New(cfg *config.CacheConfig) (*cache.Cache[[]byte], error) {
	switch cfg.Type {
	case "memory":
		return newMemoryCache(), nil
	case "redis":
		return newRedisCache(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.Type)
	}
}

func newMemoryCache() *cache.Cache[[]byte] {
	gocacheClient := gocache.New(gocache.NoExpiration, 10*time.Minute)
	gocacheStore := go_store.NewGoCache(gocacheClient)
	return cache.New[[]byte](gocacheStore)
}

func newRedisCache(cfg *config.CacheConfig) *cache.Cache[[]byte] {
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisURL,
	})
	redisStore := redis_store.NewRedis(redisClient)
	return cache.New[[]byte](redisStore)
}
