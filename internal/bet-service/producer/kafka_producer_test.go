package producer

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/bet-ledger/internal/ledger/bet"
	"github.com/radieske/bet-ledger/internal/ledger/catalog"
	"github.com/radieske/bet-ledger/pkg/contracts/events"
)

type recordingWriter struct {
	msgs []kafka.Message
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func TestPublishBetEventKeysByUser(t *testing.T) {
	w := &recordingWriter{}
	p := NewKafkaPublisher(w, "bet_events")

	b := bet.Bet{ID: "b1", UserID: "u1", BetType: catalog.PlayerProp, Result: catalog.ResultOpen, Stake: 5}
	require.NoError(t, p.PublishBetEvent(context.Background(), NewBetEvent(b, events.BetRecorded, events.SourceAPI)))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "u1", string(w.msgs[0].Key))

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, "bet_recorded", got["type"])
	assert.Equal(t, "b1", got["bet_id"])
	assert.Nil(t, got["profit"])
	assert.NotZero(t, got["ts_unix_ms"])
}
