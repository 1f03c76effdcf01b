package library

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const namesCacheKey = "gymstats::library::names"

type namesCache interface {
	Get(ctx context.Context) ([]string, bool)
	Set(ctx context.Context, list []string)
	Invalidate(ctx context.Context)
}

// RedisCache caches the whole sorted name list under a single key.
// Every library write drops it, the next read rebuilds it.
type RedisCache struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewRedisCache(redisClient *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

func (c *RedisCache) Get(ctx context.Context) ([]string, bool) {
	cached, err := c.redisClient.Get(ctx, namesCacheKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Errorf("library cache get: %s", err)
		}
		return nil, false
	}

	var list []string
	if err := json.Unmarshal([]byte(cached), &list); err != nil {
		log.Errorf("library cache, unmarshal cached names: %s", err)
		return nil, false
	}
	return list, true
}

func (c *RedisCache) Set(ctx context.Context, list []string) {
	listJson, err := json.Marshal(list)
	if err != nil {
		log.Errorf("library cache, marshal names: %s", err)
		return
	}
	if err := c.redisClient.Set(ctx, namesCacheKey, string(listJson), c.ttl).Err(); err != nil {
		log.Errorf("library cache set: %s", err)
	}
}

func (c *RedisCache) Invalidate(ctx context.Context) {
	if err := c.redisClient.Del(ctx, namesCacheKey).Err(); err != nil {
		log.Errorf("library cache invalidate: %s", err)
	}
}

// nopCache is used when redis is not configured.
type nopCache struct{}

func (nopCache) Get(context.Context) ([]string, bool) { return nil, false }
func (nopCache) Set(context.Context, []string) {}
func (nopCache) Invalidate(context.Context) {}
