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

func setupCache(t *testing.T) (*FollowerCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return New(rdb, time.Minute), mr
}

func TestFollowerCacheRoundTrip(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	_, ok := c.GetFollowerIDs(ctx, "u1")
	assert.False(t, ok)

	c.SetFollowerIDs(ctx, "u1", []string{"a", "b", "c"})
	ids, ok := c.GetFollowerIDs(ctx, "u1")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, ids)

	// the two directions are independent keys
	_, ok = c.GetFollowingIDs(ctx, "u1")
	assert.False(t, ok)
}

func TestFollowerCacheEmptyListIsAHit(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	c.SetFollowerIDs(ctx, "lonely", nil)
	ids, ok := c.GetFollowerIDs(ctx, "lonely")
	require.True(t, ok)
	assert.Empty(t, ids)
}

func TestFollowerCacheInvalidate(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	c.SetFollowerIDs(ctx, "u1", []string{"a"})
	c.SetFollowingIDs(ctx, "u1", []string{"b"})
	c.SetFollowerIDs(ctx, "u2", []string{"c"})

	c.Invalidate(ctx, "u1")

	_, ok := c.GetFollowerIDs(ctx, "u1")
	assert.False(t, ok)
	_, ok = c.GetFollowingIDs(ctx, "u1")
	assert.False(t, ok)
	ids, ok := c.GetFollowerIDs(ctx, "u2")
	require.True(t, ok)
	assert.Equal(t, []string{"c"}, ids)
}

func TestFollowerCacheSetOverwrites(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	c.SetFollowerIDs(ctx, "u1", []string{"a", "b"})
	c.SetFollowerIDs(ctx, "u1", []string{"z"})
	ids, ok := c.GetFollowerIDs(ctx, "u1")
	require.True(t, ok)
	assert.Equal(t, []string{"z"}, ids)
}

func TestFollowerCacheEntriesExpire(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	c.SetFollowerIDs(ctx, "u1", []string{"a"})
	mr.FastForward(2 * time.Minute)

	_, ok := c.GetFollowerIDs(ctx, "u1")
	assert.False(t, ok)
}
