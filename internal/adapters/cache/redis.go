package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beyondeth/shop/internal/core/port"

	"github.com/redis/go-redis/v9"
)

// RedisQueryCache - общий кэш запросов для нескольких экземпляров витрины.
type RedisQueryCache struct {
	client *redis.Client
	prefix string
}

var _ port.QueryCachePort = (*RedisQueryCache)(nil)

func NewRedisQueryCache(addr, password string, db int) *RedisQueryCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisQueryCache{client: rdb, prefix: "storefront:query:"}
}

func (c *RedisQueryCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisQueryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

func (c *RedisQueryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (c *RedisQueryCache) Close() error {
	return c.client.Close()
}
