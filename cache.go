package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
)

// ResultCache stores solved placements keyed by their inputs
type ResultCache interface {
	Get(ctx context.Context, key string) (*Result, bool, error)
	Set(ctx context.Context, key string, result *Result) error
	Close() error
}

// resultKey hashes the polygon and the options that change the answer.
// The key format is: gallery:hash(parts...)
func resultKey(points []Point, opts SolveOptions) string {
	data, _ := json.Marshal([]interface{}{points, opts.Build, opts.Simplify, opts.AutoSimplify})
	hash := sha256.Sum256(data)
	return "gallery:" + hex.EncodeToString(hash[:])
}

// NewResultCache creates the backend selected in the configuration
func NewResultCache(cfg CacheConfig) (ResultCache, error) {
	ttl, err := cfg.ttl()
	if err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case "none":
		return nullCache{}, nil
	case "redis":
		return newRedisCache(cfg.RedisAddr, ttl), nil
	default:
		return newMemoryCache(cfg.Size)
	}
}

// memoryCache keeps the most recently used results in process
type memoryCache struct {
	cache *lru.Cache[string, *Result]
}

func newMemoryCache(size int) (*memoryCache, error) {
	if size <= 0 {
		size = 256
	}
	cache, err := lru.New[string, *Result](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create lru cache: %w", err)
	}
	return &memoryCache{cache: cache}, nil
}

func (m *memoryCache) Get(_ context.Context, key string) (*Result, bool, error) {
	result, ok := m.cache.Get(key)
	return result, ok, nil
}

func (m *memoryCache) Set(_ context.Context, key string, result *Result) error {
	m.cache.Add(key, result)
	return nil
}

func (m *memoryCache) Close() error {
	m.cache.Purge()
	return nil
}

// redisCache shares results between server instances as JSON values
type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func newRedisCache(addr string, ttl time.Duration) *redisCache {
	return &redisCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

func (r *redisCache) Get(ctx context.Context, key string) (*Result, bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache: %w", err)
	}

	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached result: %w", err)
	}
	return &result, true, nil
}

func (r *redisCache) Set(ctx context.Context, key string, result *Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}

func (r *redisCache) Close() error {
	return r.client.Close()
}

// nullCache never stores anything
type nullCache struct{}

func (nullCache) Get(context.Context, string) (*Result, bool, error) { return nil, false, nil }
func (nullCache) Set(context.Context, string, *Result) error         { return nil }
func (nullCache) Close() error                                       { return nil }
