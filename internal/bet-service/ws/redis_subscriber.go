package ws

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/radieske/bet-ledger/pkg/contracts/events"
)

// StartRedisSubscriber escuta o canal de atualizações e repassa cada evento ao Hub.
// A goroutine termina quando o contexto é cancelado.
func StartRedisSubscriber(ctx context.Context, r *redis.Client, channel string, hub *Hub, log *zap.Logger) {
	sub := r.Subscribe(ctx, channel)
	ch := sub.Channel()
	go func() {
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				handleMessage(hub, log, msg.Payload)
			}
		}
	}()
}

func handleMessage(hub *Hub, log *zap.Logger, payload string) {
	var upd events.WSUpdate
	if err := json.Unmarshal([]byte(payload), &upd); err != nil {
		log.Warn("ws subscriber unmarshal error", zap.Error(err))
		return
	}
	if upd.UserID == "" {
		return
	}
	hub.Broadcast(upd)
}
