package main

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultKey(t *testing.T) {
	base := resultKey(squarePoints(), SolveOptions{})

	assert.Regexp(t, `^gallery:[0-9a-f]{64}$`, base)
	assert.Equal(t, base, resultKey(squarePoints(), SolveOptions{Logger: discardLogger()}))
	assert.NotEqual(t, base, resultKey(pentagonPoints(), SolveOptions{}))
	assert.NotEqual(t, base, resultKey(squarePoints(), SolveOptions{Build: BuildOptions{RequireInterior: true}}))
	assert.NotEqual(t, base, resultKey(squarePoints(), SolveOptions{Simplify: 0.1}))
	assert.NotEqual(t, base, resultKey(squarePoints(), SolveOptions{AutoSimplify: true}))
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	cache, err := NewResultCache(CacheConfig{Backend: "memory", Size: 1})
	require.NoError(t, err)
	defer cache.Close()

	_, ok, err := cache.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	square, err := Solve(squarePoints(), SolveOptions{Logger: discardLogger()})
	require.NoError(t, err)
	pentagon, err := Solve(pentagonPoints(), SolveOptions{Logger: discardLogger()})
	require.NoError(t, err)

	require.NoError(t, cache.Set(ctx, "square", square))
	got, ok, err := cache.Get(ctx, "square")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Same(t, square, got)

	// size 1 evicts the older entry
	require.NoError(t, cache.Set(ctx, "pentagon", pentagon))
	_, ok, _ = cache.Get(ctx, "square")
	assert.False(t, ok)
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	cache, err := NewResultCache(CacheConfig{Backend: "none"})
	require.NoError(t, err)

	require.NoError(t, cache.Set(ctx, "k", &Result{}))
	_, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, cache.Close())
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	server := miniredis.RunT(t)

	cache, err := NewResultCache(CacheConfig{Backend: "redis", RedisAddr: server.Addr(), TTL: "1m"})
	require.NoError(t, err)
	defer cache.Close()

	_, ok, err := cache.Get(ctx, "gallery:missing")
	require.NoError(t, err)
	assert.False(t, ok)

	result, err := Solve(pentagonPoints(), SolveOptions{Logger: discardLogger()})
	require.NoError(t, err)
	key := resultKey(pentagonPoints(), SolveOptions{})

	require.NoError(t, cache.Set(ctx, key, result))
	assert.Equal(t, time.Minute, server.TTL(key))

	got, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, result.Polygon, got.Polygon)
	assert.Equal(t, result.Visibility, got.Visibility)
	assert.Equal(t, result.Placement, got.Placement)
	assert.Equal(t, result.Graph().Rows(), got.Graph().Rows())

	server.FastForward(2 * time.Minute)
	_, ok, err = cache.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, server.Set("gallery:broken", "{"))
	_, _, err = cache.Get(ctx, "gallery:broken")
	require.Error(t, err)
}

func TestServer_RedisBackend(t *testing.T) {
	server := miniredis.RunT(t)
	cfg := DefaultConfig()
	cfg.Cache = CacheConfig{Backend: "redis", RedisAddr: server.Addr(), TTL: "1h"}
	h := newTestServer(t, cfg)

	req := GuardRequest{Vertices: squarePoints()}
	_, first := postJSON(t, h, "/guards", req)
	_, second := postJSON(t, h, "/guards", req)

	assert.False(t, first.Cached)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Guards, second.Guards)
	assert.Len(t, server.Keys(), 1)
}

func TestNewResultCache_Redis(t *testing.T) {
	cache, err := NewResultCache(CacheConfig{Backend: "redis", RedisAddr: "localhost:6379", TTL: "10m"})
	require.NoError(t, err)
	defer cache.Close()

	rc, ok := cache.(*redisCache)
	require.True(t, ok)
	assert.Equal(t, 10*time.Minute, rc.ttl)

	_, err = NewResultCache(CacheConfig{Backend: "memory", TTL: "soon"})
	require.Error(t, err)
}
