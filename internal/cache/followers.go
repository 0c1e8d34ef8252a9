// Package cache keeps a redis index of follower/following id lists so the
// follow-list pages do not hit the primary store on every read. The graph
// itself lives only in the database; entries here are invalidated on every
// graph mutation and rebuilt lazily.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type FollowerCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *FollowerCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &FollowerCache{rdb: rdb, ttl: ttl}
}

func followersKey(userID string) string { return fmt.Sprintf("followers:index:%s", userID) }
func followingKey(userID string) string { return fmt.Sprintf("following:index:%s", userID) }

// GetFollowerIDs returns the cached follower id list and whether it was
// present. An empty cached list is distinguished from a miss by a sentinel
// element so "no followers" does not keep hitting the database.
func (c *FollowerCache) GetFollowerIDs(ctx context.Context, userID string) ([]string, bool) {
	return c.get(ctx, followersKey(userID))
}

func (c *FollowerCache) SetFollowerIDs(ctx context.Context, userID string, ids []string) {
	c.set(ctx, followersKey(userID), ids)
}

func (c *FollowerCache) GetFollowingIDs(ctx context.Context, userID string) ([]string, bool) {
	return c.get(ctx, followingKey(userID))
}

func (c *FollowerCache) SetFollowingIDs(ctx context.Context, userID string, ids []string) {
	c.set(ctx, followingKey(userID), ids)
}

// Invalidate drops both directions for the given users. Called after any
// follow-graph write (toggle, accept, privacy flip).
func (c *FollowerCache) Invalidate(ctx context.Context, userIDs ...string) {
	keys := make([]string, 0, len(userIDs)*2)
	for _, id := range userIDs {
		keys = append(keys, followersKey(id), followingKey(id))
	}
	_ = c.rdb.Del(ctx, keys...).Err()
}

const emptyMarker = "\x00empty"

func (c *FollowerCache) get(ctx context.Context, key string) ([]string, bool) {
	vals, err := c.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil || len(vals) == 0 {
		return nil, false
	}
	if len(vals) == 1 && vals[0] == emptyMarker {
		return []string{}, true
	}
	return vals, true
}

func (c *FollowerCache) set(ctx context.Context, key string, ids []string) {
	vals := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		vals = append(vals, id)
	}
	if len(vals) == 0 {
		vals = append(vals, emptyMarker)
	}
	pipe := c.rdb.TxPipeline()
	pipe.Del(ctx, key)
	pipe.RPush(ctx, key, vals...)
	pipe.Expire(ctx, key, c.ttl)
	_, _ = pipe.Exec(ctx)
}
