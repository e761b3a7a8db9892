package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/facility-discovery/internal/domain/repository"
)

type cacheRepository struct {
	redis *Redis
}

// NewCacheRepository создает новый CacheRepository поверх Redis
func NewCacheRepository(r *Redis) repository.CacheRepository {
	return &cacheRepository{redis: r}
}

func (c *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.redis.Client().Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

func (c *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.redis.Client().Set(ctx, key, value, ttl).Err()
}

func (c *cacheRepository) Delete(ctx context.Context, key string) error {
	return c.redis.Client().Del(ctx, key).Err()
}

func (c *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.redis.Client().Exists(ctx, key).Result()
	return n > 0, err
}
