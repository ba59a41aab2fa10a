package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBetType(t *testing.T) {
	tests := []struct {
		raw    string
		want   BetType
		wantOK bool
	}{
		{"Player Prop", PlayerProp, true},
		{"  ft result ", FTResult, true},
		{"BET BUILDER", BetBuilder, true},
		{"bb", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseBetType(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClosedSets(t *testing.T) {
	assert.True(t, Bet365.Valid())
	assert.False(t, Bookmaker("Bet 365").Valid())
	assert.True(t, ResultVoid.Valid())
	assert.False(t, Result("CASHED_OUT").Valid())
	assert.True(t, Superboost.NamedBetType())
	assert.False(t, FTResult.NamedBetType())

	m, ok := ParsePlayerPropMarket("sot over")
	assert.True(t, ok)
	assert.Equal(t, SOTOver, m)
	assert.Len(t, PlayerPropMarkets, 9)
}
