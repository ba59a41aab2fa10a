package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	sharedkafka "github.com/radieske/bet-ledger/internal/shared/kafka"
	"github.com/radieske/bet-ledger/pkg/contracts/events"
)

// Reader é o subconjunto do kafka.Reader usado pelo processor
type Reader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// Invalidator descarta o resumo de P&L em cache de um usuário
type Invalidator interface {
	Invalidate(ctx context.Context, userID string) error
}

// Broadcaster publica no Redis Pub/Sub lido pelos hubs WebSocket
type Broadcaster interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

var errInvalidEvent = errors.New("invalid bet event")

// Processor consome eventos de aposta do Kafka, invalida o resumo do usuário
// e repassa o evento para os WebSockets via Redis Pub/Sub
type Processor struct {
	Log         *zap.Logger
	Reader      Reader
	Summaries   Invalidator
	Broadcaster Broadcaster
	Channel     string
	DLQ         sharedkafka.MessageWriter // opcional: mensagens que não decodificam

	OnConsumed func()       // métricas (counter++)
	OnHandled  func()       // métricas
	OnError    func(string) // métricas por fase
}

// Run inicia o loop principal de consumo e processamento das mensagens Kafka
func (p *Processor) Run(ctx context.Context) error {
	for {
		m, err := p.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.Log.Warn("kafka read failed", zap.Error(err))
			p.fail("read")
			time.Sleep(500 * time.Millisecond)
			continue
		}

		if p.OnConsumed != nil {
			p.OnConsumed()
		}
		p.Handle(ctx, m)
	}
}

// Handle processa uma mensagem. Falha de cache não impede o broadcast.
func (p *Processor) Handle(ctx context.Context, m kafka.Message) {
	ev, err := decode(m.Value)
	if err != nil {
		p.Log.Warn("invalid message", zap.Error(err), zap.Int64("offset", m.Offset))
		p.fail("decode")
		p.deadLetter(ctx, m)
		return
	}

	if err := p.Summaries.Invalidate(ctx, ev.UserID); err != nil {
		p.Log.Warn("summary invalidate failed", zap.String("user_id", ev.UserID), zap.Error(err))
		p.fail("cache")
	}

	b, _ := json.Marshal(events.WSUpdate{UserID: ev.UserID, Payload: ev})
	pctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	if err := p.Broadcaster.Publish(pctx, p.Channel, b); err != nil {
		p.Log.Warn("ws broadcast publish failed", zap.Error(err))
		p.fail("broadcast")
		return
	}

	if p.OnHandled != nil {
		p.OnHandled()
	}
}

func decode(raw []byte) (events.BetEvent, error) {
	var ev events.BetEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return ev, fmt.Errorf("%w: %v", errInvalidEvent, err)
	}
	if ev.UserID == "" || ev.Type == "" {
		return ev, fmt.Errorf("%w: missing user_id or type", errInvalidEvent)
	}
	return ev, nil
}

func (p *Processor) deadLetter(ctx context.Context, m kafka.Message) {
	if p.DLQ == nil {
		return
	}
	if err := sharedkafka.WriteJSON(ctx, p.DLQ, string(m.Key), m.Value); err != nil {
		p.Log.Warn("dlq write failed", zap.Error(err))
		p.fail("dlq")
	}
}

func (p *Processor) fail(stage string) {
	if p.OnError != nil {
		p.OnError(stage)
	}
}
