package pubsub

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisBroadcaster publica payloads já serializados num canal Redis
type RedisBroadcaster struct {
	r redis.Cmdable
}

func NewRedisBroadcaster(r redis.Cmdable) *RedisBroadcaster {
	return &RedisBroadcaster{r: r}
}

func (b *RedisBroadcaster) Publish(ctx context.Context, channel string, payload []byte) error {
	return b.r.Publish(ctx, channel, payload).Err()
}
