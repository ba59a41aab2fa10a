package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/radieske/bet-ledger/internal/ledger/bet"
	sharedkafka "github.com/radieske/bet-ledger/internal/shared/kafka"
	"github.com/radieske/bet-ledger/pkg/contracts/events"
)

// KafkaPublisher publica eventos de aposta no tópico bet_events
type KafkaPublisher struct {
	Writer sharedkafka.MessageWriter
	Topic  string
}

func NewKafkaPublisher(w sharedkafka.MessageWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{Writer: w, Topic: topic}
}

// PublishBetEvent serializa e envia o evento com o userId como chave
func (p *KafkaPublisher) PublishBetEvent(ctx context.Context, e events.BetEvent) error {
	if e.TsUnixMs == 0 {
		e.TsUnixMs = time.Now().UnixMilli()
	}
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal bet event: %w", err)
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{Key: []byte(e.UserID), Value: b})
}

// NewBetEvent monta o evento a partir do registro gravado
func NewBetEvent(b bet.Bet, typ, source string) events.BetEvent {
	return events.BetEvent{
		Type:    typ,
		BetID:   b.ID,
		UserID:  b.UserID,
		Source:  source,
		BetType: string(b.BetType),
		Result:  string(b.Result),
		Stake:   b.Stake,
		Profit:  b.Profit,
	}
}
