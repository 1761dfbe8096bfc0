package matrix

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dock-allocation-service/internal/domain"

	redis "github.com/redis/go-redis/v9"
)

// RedisCache stores travel-time matrices as JSON values with a TTL.
type RedisCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl, prefix: "dock:matrix:"}
}

func (c *RedisCache) Get(ctx context.Context, key string) (domain.TravelMatrix, bool, error) {
	data, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("matrix cache get: %w", err)
	}

	var m domain.TravelMatrix
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, false, fmt.Errorf("matrix cache decode: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, false, fmt.Errorf("matrix cache: %w", err)
	}
	return m, true, nil
}

func (c *RedisCache) Put(ctx context.Context, key string, m domain.TravelMatrix) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("matrix cache encode: %w", err)
	}
	if err := c.rdb.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("matrix cache set: %w", err)
	}
	return nil
}
