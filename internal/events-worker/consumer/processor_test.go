package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/bet-ledger/pkg/contracts/events"
)

type mockInvalidator struct{ mock.Mock }

func (m *mockInvalidator) Invalidate(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type mockBroadcaster struct{ mock.Mock }

func (m *mockBroadcaster) Publish(ctx context.Context, channel string, payload []byte) error {
	return m.Called(ctx, channel, payload).Error(0)
}

type recordingWriter struct {
	mu   sync.Mutex
	msgs []kafka.Message
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.msgs = append(w.msgs, msgs...)
	return nil
}

// sliceReader entrega as mensagens em ordem e depois bloqueia até o cancelamento
type sliceReader struct {
	msgs []kafka.Message
}

func (r *sliceReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.msgs) > 0 {
		m := r.msgs[0]
		r.msgs = r.msgs[1:]
		return m, nil
	}
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func eventMessage(t *testing.T, e events.BetEvent) kafka.Message {
	t.Helper()
	b, err := json.Marshal(e)
	require.NoError(t, err)
	return kafka.Message{Key: []byte(e.UserID), Value: b}
}

func TestHandleInvalidatesAndBroadcasts(t *testing.T) {
	inv := &mockInvalidator{}
	bc := &mockBroadcaster{}
	profit := 15.0
	ev := events.BetEvent{Type: events.BetUpdated, BetID: "b1", UserID: "u1", Source: events.SourceAPI, Profit: &profit}

	inv.On("Invalidate", mock.Anything, "u1").Return(nil).Once()
	bc.On("Publish", mock.Anything, "bet_updates_broadcast", mock.MatchedBy(func(payload []byte) bool {
		var upd events.WSUpdate
		return json.Unmarshal(payload, &upd) == nil && upd.UserID == "u1" && upd.Payload.BetID == "b1" && *upd.Payload.Profit == 15
	})).Return(nil).Once()

	handled := 0
	p := &Processor{Log: zap.NewNop(), Summaries: inv, Broadcaster: bc, Channel: "bet_updates_broadcast", OnHandled: func() { handled++ }}
	p.Handle(context.Background(), eventMessage(t, ev))

	assert.Equal(t, 1, handled)
	inv.AssertExpectations(t)
	bc.AssertExpectations(t)
}

func TestHandleSendsUndecodableToDLQ(t *testing.T) {
	inv := &mockInvalidator{}
	bc := &mockBroadcaster{}
	dlq := &recordingWriter{}
	var stages []string

	p := &Processor{Log: zap.NewNop(), Summaries: inv, Broadcaster: bc, DLQ: dlq, OnError: func(s string) { stages = append(stages, s) }}
	p.Handle(context.Background(), kafka.Message{Key: []byte("u1"), Value: []byte("{not json")})
	p.Handle(context.Background(), kafka.Message{Key: []byte("u1"), Value: []byte(`{"type":"bet_recorded"}`)})

	assert.Equal(t, []string{"decode", "decode"}, stages)
	require.Len(t, dlq.msgs, 2)
	assert.Equal(t, "{not json", string(dlq.msgs[0].Value))
	inv.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	bc.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleBroadcastsEvenWhenCacheFails(t *testing.T) {
	inv := &mockInvalidator{}
	bc := &mockBroadcaster{}
	inv.On("Invalidate", mock.Anything, "u1").Return(errors.New("redis down")).Once()
	bc.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	var stages []string
	p := &Processor{Log: zap.NewNop(), Summaries: inv, Broadcaster: bc, OnError: func(s string) { stages = append(stages, s) }}
	p.Handle(context.Background(), eventMessage(t, events.BetEvent{Type: events.BetDeleted, BetID: "b1", UserID: "u1"}))

	assert.Equal(t, []string{"cache"}, stages)
	bc.AssertExpectations(t)
}

func TestRunStopsOnCancel(t *testing.T) {
	inv := &mockInvalidator{}
	bc := &mockBroadcaster{}
	inv.On("Invalidate", mock.Anything, mock.Anything).Return(nil)
	bc.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	reader := &sliceReader{msgs: []kafka.Message{
		eventMessage(t, events.BetEvent{Type: events.BetRecorded, BetID: "b1", UserID: "u1"}),
		eventMessage(t, events.BetEvent{Type: events.BetRecorded, BetID: "b2", UserID: "u2"}),
	}}

	var mu sync.Mutex
	consumed, handled := 0, 0
	p := &Processor{
		Log: zap.NewNop(), Reader: reader, Summaries: inv, Broadcaster: bc,
		OnConsumed: func() { mu.Lock(); consumed++; mu.Unlock() },
		OnHandled:  func() { mu.Lock(); handled++; mu.Unlock() },
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return handled == 2
	}, time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("processor did not stop")
	}
	assert.Equal(t, 2, consumed)
}
