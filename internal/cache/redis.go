package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"lala-site-api/internal/logger"
	"lala-site-api/models"
)

const postsKey = "instagram:posts"

// RedisStore keeps the cached feed in Redis so multiple instances share one
// freshness window. Failures degrade to a cache miss, never to an error.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Get(ctx context.Context) ([]models.FeedItem, bool) {
	data, err := s.rdb.Get(ctx, postsKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("Redis feed cache read failed", "error", err)
		}
		return nil, false
	}

	var posts []models.FeedItem
	if err := json.Unmarshal(data, &posts); err != nil {
		logger.Warn("Redis feed cache held invalid JSON", "error", err)
		return nil, false
	}
	return posts, true
}

func (s *RedisStore) Set(ctx context.Context, posts []models.FeedItem, ttl time.Duration) {
	data, err := json.Marshal(posts)
	if err != nil {
		logger.Warn("Failed to encode feed cache entry", "error", err)
		return
	}
	if err := s.rdb.Set(ctx, postsKey, data, ttl).Err(); err != nil {
		logger.Warn("Redis feed cache write failed", "error", err)
	}
}
