package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshot struct {
	Names []string `json:"names"`
	Count int      `json:"count"`
}

func newRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedis(rdb, ""), srv
}

func newLocal(t *testing.T) *Local {
	t.Helper()
	c, err := NewLocal(100)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func exerciseCache(t *testing.T, c Cache) {
	ctx := context.Background()
	key := CategoriesKey("u-1", 0)

	var got snapshot
	found, err := c.Get(ctx, key, &got)
	require.NoError(t, err)
	assert.False(t, found)

	want := snapshot{Names: []string{"rent", "salary"}, Count: 2}
	require.NoError(t, c.Set(ctx, key, want, time.Minute))

	found, err = c.Get(ctx, key, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)

	require.NoError(t, c.Delete(ctx, key))
	found, err = c.Get(ctx, key, &snapshot{})
	require.NoError(t, err)
	assert.False(t, found)
}

func exerciseGenerations(t *testing.T, c Cache) {
	ctx := context.Background()
	key := CategoriesGenKey("u-1")

	gen, err := c.Generation(ctx, key)
	require.NoError(t, err)
	assert.Zero(t, gen)

	for want := int64(1); want <= 3; want++ {
		got, err := c.Bump(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	gen, err = c.Generation(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(3), gen)

	other, err := c.Generation(ctx, CategoriesGenKey("u-2"))
	require.NoError(t, err)
	assert.Zero(t, other)
}

func TestCategoriesKeyChangesWithGeneration(t *testing.T) {
	assert.NotEqual(t, CategoriesKey("u-1", 0), CategoriesKey("u-1", 1))
	assert.NotEqual(t, CategoriesKey("u-1", 0), CategoriesKey("u-2", 0))
}

func TestRedisGenerations(t *testing.T) {
	c, _ := newRedis(t)
	exerciseGenerations(t, c)
}

func TestLocalGenerations(t *testing.T) {
	exerciseGenerations(t, newLocal(t))
}

func TestRedisNamespace(t *testing.T) {
	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	c := NewRedis(rdb, "ledger")
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", snapshot{Count: 1}, time.Minute))
	_, err := c.Bump(ctx, "g")
	require.NoError(t, err)
	assert.True(t, srv.Exists("ledger:k"))
	assert.False(t, srv.Exists("k"))
	got, err := srv.Get("ledger:g")
	require.NoError(t, err)
	assert.Equal(t, "1", got)

	require.NoError(t, c.Delete(ctx, "k"))
	assert.False(t, srv.Exists("ledger:k"))
}

func TestRedisCache(t *testing.T) {
	c, _ := newRedis(t)
	exerciseCache(t, c)
}

func TestLocalCache(t *testing.T) {
	exerciseCache(t, newLocal(t))
}

func TestNopCacheNeverHits(t *testing.T) {
	ctx := context.Background()
	var c Cache = Nop{}
	require.NoError(t, c.Set(ctx, "k", 1, time.Minute))
	found, err := c.Get(ctx, "k", new(int))
	require.NoError(t, err)
	assert.False(t, found)

	_, err = c.Bump(ctx, "g")
	require.NoError(t, err)
	gen, err := c.Generation(ctx, "g")
	require.NoError(t, err)
	assert.Zero(t, gen)
}

func TestRedisCacheExpires(t *testing.T) {
	c, srv := newRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", snapshot{Count: 1}, time.Minute))
	srv.FastForward(2 * time.Minute)

	found, err := c.Get(ctx, "k", &snapshot{})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCacheSurfacesServerErrors(t *testing.T) {
	c, srv := newRedis(t)
	srv.Close()

	_, err := c.Get(context.Background(), "k", &snapshot{})
	assert.Error(t, err)
}

func TestRedisDeleteWithoutKeys(t *testing.T) {
	c, _ := newRedis(t)
	assert.NoError(t, c.Delete(context.Background()))
}
