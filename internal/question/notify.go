package question

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// DefaultUpdatesChannel is the Redis channel carrying UpdateEvent payloads.
const DefaultUpdatesChannel = "quiz:updates"

// RedisPublisher announces committed batches over Redis Pub/Sub.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

var _ Publisher = (*RedisPublisher)(nil)

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultUpdatesChannel
	}
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, evt UpdateEvent) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, data).Err()
}
