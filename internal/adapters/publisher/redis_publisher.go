package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dock-allocation-service/internal/ports"

	redis "github.com/redis/go-redis/v9"
)

const DefaultChannel = "dock:allocations"

// RedisPublisher implements ports.AllocationPublisher over Redis Pub/Sub.
type RedisPublisher struct {
	rdb     *redis.Client
	channel string
	timeout time.Duration
}

func NewRedisPublisher(rdb *redis.Client, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{rdb: rdb, channel: channel, timeout: 2 * time.Second}
}

func (p *RedisPublisher) Publish(ctx context.Context, evt ports.AllocationEvent) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("publish allocation: encode: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.rdb.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("publish allocation to %s: %w", p.channel, err)
	}
	return nil
}
