package repairjob

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/bet-ledger/internal/ledger/repair"
	"github.com/radieske/bet-ledger/pkg/contracts/events"
)

type mockStore struct{ mock.Mock }

func (m *mockStore) RepairRecords(ctx context.Context, userID string) ([]repair.Record, error) {
	args := m.Called(ctx, userID)
	r, _ := args.Get(0).([]repair.Record)
	return r, args.Error(1)
}

func (m *mockStore) ApplyRepair(ctx context.Context, userID string, r repair.Record) error {
	return m.Called(ctx, userID, r).Error(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishBetEvent(ctx context.Context, e events.BetEvent) error {
	return m.Called(ctx, e).Error(0)
}

func str(s string) *string { return &s }

func records() []repair.Record {
	return []repair.Record{
		{ID: "b1", BetType: "acca", Selection: "Arsenal, Spurs", PlayerPropMarket: str("AGS")},
		{ID: "b2", BetType: "Player Prop", Selection: "Saka AGS", PlayerPropMarket: str("AGS")},
		{ID: "b3", BetType: "player prop", Selection: "Saka O0.5 sot"},
	}
}

func TestDryRunNeverWrites(t *testing.T) {
	store := &mockStore{}
	store.On("RepairRecords", mock.Anything, "u1").Return(records(), nil).Once()

	job := &Job{Store: store, Log: zap.NewNop()}
	tally, err := job.Run(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, 3, tally.Scanned)
	assert.Equal(t, 2, tally.Changed)
	assert.Equal(t, 1, tally.MarketsCleared)
	assert.Equal(t, 1, tally.MarketsSet)
	assert.Equal(t, 1, tally.Rules["legacy-player-prop"])
	store.AssertNotCalled(t, "ApplyRepair", mock.Anything, mock.Anything, mock.Anything)
}

func TestApplyWritesChangedRecordsAndPublishes(t *testing.T) {
	store := &mockStore{}
	store.On("RepairRecords", mock.Anything, "u1").Return(records(), nil).Once()
	store.On("ApplyRepair", mock.Anything, "u1", repair.Record{ID: "b1", BetType: "Accumulator", Selection: "Accumulator"}).
		Return(errors.New("deadlock")).Once()
	store.On("ApplyRepair", mock.Anything, "u1", repair.Record{ID: "b3", BetType: "Player Prop", Selection: "Saka SOT Over 0.5", PlayerPropMarket: str("SOT Over")}).
		Return(nil).Once()

	pub := &mockPublisher{}
	pub.On("PublishBetEvent", mock.Anything, mock.MatchedBy(func(e events.BetEvent) bool {
		return e.Type == events.BetRepaired && e.BetID == "b3" && e.Source == events.SourceRepair && e.UserID == "u1"
	})).Return(nil).Once()

	var changes []string
	job := &Job{Store: store, Publisher: pub, Log: zap.NewNop(), Apply: true, OnChange: func(r string) { changes = append(changes, r) }}
	tally, err := job.Run(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, 3, tally.Scanned)
	assert.Equal(t, 1, tally.Changed)
	assert.Equal(t, 1, tally.Failed)
	assert.Equal(t, []string{"retrofit", "legacy-player-prop"}, changes)
	store.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestRulesSubset(t *testing.T) {
	store := &mockStore{}
	store.On("RepairRecords", mock.Anything, "u1").Return(records(), nil).Once()

	job := &Job{Store: store, Log: zap.NewNop(), Rules: []repair.Rule{repair.LegacyRule}}
	tally, err := job.Run(context.Background(), "u1")
	require.NoError(t, err)

	// sem o retrofit, "acca" e "player prop" em minúsculas não são player props canônicos
	assert.Equal(t, 0, tally.Changed)
	assert.Empty(t, tally.Rules)
}

func TestLoadFailure(t *testing.T) {
	store := &mockStore{}
	store.On("RepairRecords", mock.Anything, "u1").Return(nil, errors.New("conn refused")).Once()

	_, err := (&Job{Store: store, Log: zap.NewNop()}).Run(context.Background(), "u1")
	assert.ErrorContains(t, err, "conn refused")
}

func TestPrintTally(t *testing.T) {
	var sb strings.Builder
	PrintTally(&sb, repair.Tally{Scanned: 3, Changed: 2, MarketsSet: 1, Rules: map[string]int{"retrofit": 1, "legacy-player-prop": 2}}, false)

	out := sb.String()
	assert.Contains(t, out, "repair dry run: 3 scanned, 2 changed, 0 failed")
	assert.Contains(t, out, "rule legacy-player-prop: 2")
	assert.Contains(t, out, "run with -apply to persist")
	assert.Less(t, strings.Index(out, "legacy-player-prop"), strings.Index(out, "rule retrofit"))
}
