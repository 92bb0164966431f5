package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/haintran/portfolio-api/internal/application/service"
	"github.com/haintran/portfolio-api/internal/config"
	"github.com/haintran/portfolio-api/pkg/logger"
)

func NewRedisClient(cfg config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("can not connect Redis: %w", err)
	}

	return rdb, nil
}

const (
	publicProfileKey = "public:profile"
	publicProfileTTL = 5 * time.Minute
)

type redisProfileCache struct {
	rdb    *redis.Client
	logger logger.Logger
}

// NewRedisProfileCache caches the public profile payload. Every error path
// degrades to the database; the cache never fails a request.
func NewRedisProfileCache(rdb *redis.Client, log logger.Logger) service.ProfileCache {
	return &redisProfileCache{rdb: rdb, logger: log}
}

func (c *redisProfileCache) GetPublicProfile(ctx context.Context) ([]byte, bool) {
	payload, err := c.rdb.Get(ctx, publicProfileKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("redis get failed, falling back to database")
		}
		return nil, false
	}
	return payload, true
}

func (c *redisProfileCache) SetPublicProfile(ctx context.Context, payload []byte) {
	if err := c.rdb.Set(ctx, publicProfileKey, payload, publicProfileTTL).Err(); err != nil {
		c.logger.Warn("redis set failed")
	}
}

func (c *redisProfileCache) InvalidatePublicProfile(ctx context.Context) {
	if err := c.rdb.Del(ctx, publicProfileKey).Err(); err != nil {
		c.logger.Warn("redis del failed")
	}
}
