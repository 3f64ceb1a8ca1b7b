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

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return New(rdb), mr
}

func TestGetMiss(t *testing.T) {
	c, _ := newTestCache(t)

	value, present, err := c.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, present)
	assert.Nil(t, value)
}

func TestSetThenGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "albums", []byte(`[{"id":"album-1"}]`), 0))

	value, present, err := c.Get(ctx, "albums")
	require.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, []byte(`[{"id":"album-1"}]`), value)
}

func TestSetAppliesDefaultTTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "albums", []byte("x"), 0))
	assert.Equal(t, DefaultTTL, mr.TTL("albums"))

	require.NoError(t, c.Set(ctx, "short", []byte("x"), time.Minute))
	assert.Equal(t, time.Minute, mr.TTL("short"))
}

func TestExpiredEntryIsAMiss(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "likes:album-1", []byte("3"), time.Minute))
	mr.FastForward(2 * time.Minute)

	_, present, err := c.Get(ctx, "likes:album-1")
	require.NoError(t, err)
	assert.False(t, present)
}

func TestDelete(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "album:album-1", []byte("x"), 0))
	require.NoError(t, c.Delete(ctx, "album:album-1"))

	_, present, err := c.Get(ctx, "album:album-1")
	require.NoError(t, err)
	assert.False(t, present)
}

func TestInfrastructureErrorIsNotAMiss(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	c := New(rdb)

	mr.Close()

	_, present, err := c.Get(context.Background(), "albums")
	assert.Error(t, err)
	assert.False(t, present)
}
