package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/example/board-platform/services/board/internal/store"
)

const redisPrefix = "board:comments:"

// RedisCache keeps snapshots as JSON values with a TTL. Backend failures
// degrade to cache misses.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisCache(dsn string, ttl time.Duration, log *zap.Logger) *RedisCache {
	opts, err := redis.ParseURL(dsn)
	if err != nil {
		opts = &redis.Options{Addr: dsn}
	}
	return newRedisCache(redis.NewClient(opts), ttl, log)
}

func newRedisCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisCache{client: client, ttl: ttl, log: log}
}

func redisKey(postID int64) string {
	return redisPrefix + key(postID)
}

func (c *RedisCache) Get(ctx context.Context, postID int64) ([]store.Comment, bool) {
	raw, err := c.client.Get(ctx, redisKey(postID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Debug("redis get failed", zap.Int64("post_id", postID), zap.Error(err))
		}
		return nil, false
	}
	var cs []store.Comment
	if err := json.Unmarshal(raw, &cs); err != nil {
		c.log.Warn("redis snapshot corrupt", zap.Int64("post_id", postID), zap.Error(err))
		return nil, false
	}
	return cs, true
}

func (c *RedisCache) Set(ctx context.Context, postID int64, cs []store.Comment) {
	raw, err := json.Marshal(cs)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, redisKey(postID), raw, c.ttl).Err(); err != nil {
		c.log.Debug("redis set failed", zap.Int64("post_id", postID), zap.Error(err))
	}
}

func (c *RedisCache) Invalidate(ctx context.Context, postID int64) {
	if err := c.client.Del(ctx, redisKey(postID)).Err(); err != nil {
		c.log.Warn("redis invalidate failed", zap.Int64("post_id", postID), zap.Error(err))
	}
}

// Ping reports whether the backend is reachable.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
