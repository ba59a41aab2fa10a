package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/radieske/bet-ledger/internal/ledger/catalog"
)

func TestBookmaker(t *testing.T) {
	tests := []struct {
		raw    string
		want   catalog.Bookmaker
		wantOK bool
	}{
		{"BET365", catalog.Bet365, true},
		{"bet365", catalog.Bet365, true},
		{"  Betfair ", catalog.Betfair, true},
		{"paddypower", catalog.PaddyPower, true},
		{"WilliamHill", catalog.WilliamHill, true},
		{"bet 365", "", false},
		{"Coral", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			f := Bookmaker(tt.raw)
			assert.Equal(t, tt.wantOK, f.OK())
			assert.Equal(t, tt.want, f.Value)
			if !tt.wantOK {
				assert.Equal(t, Rejected, f.Outcome)
				assert.NotEmpty(t, f.Reason)
			}
		})
	}
}

func TestResult(t *testing.T) {
	tests := []struct {
		raw     string
		want    catalog.Result
		outcome Outcome
	}{
		{"Won", catalog.ResultWon, Accepted},
		{"win", catalog.ResultWon, Accepted},
		{"LOSS", catalog.ResultLost, Accepted},
		{"lost", catalog.ResultLost, Accepted},
		{"Cashed Out", catalog.ResultVoid, Accepted},
		{"cashed_out", catalog.ResultVoid, Accepted},
		{"CashedOut", catalog.ResultVoid, Accepted},
		{"void", catalog.ResultVoid, Accepted},
		{"open", catalog.ResultOpen, Accepted},
		{"", catalog.ResultOpen, Defaulted},
		{"pending", catalog.ResultOpen, Defaulted},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			f := Result(tt.raw)
			assert.Equal(t, tt.want, f.Value)
			assert.Equal(t, tt.outcome, f.Outcome)
		})
	}
}

func TestStakeType(t *testing.T) {
	assert.Equal(t, catalog.StakeFree, StakeType(" free ").Value)
	assert.Equal(t, catalog.StakeNormal, StakeType("Normal").Value)

	f := StakeType("bonus")
	assert.Equal(t, catalog.StakeNormal, f.Value)
	assert.Equal(t, Defaulted, f.Outcome)
}

func TestNumberAndStake(t *testing.T) {
	v, ok := Number("£1,234.50")
	assert.True(t, ok)
	assert.Equal(t, 1234.5, v)

	_, ok = Number("ten")
	assert.False(t, ok)
	_, ok = Number("")
	assert.False(t, ok)

	assert.True(t, Stake("£5").OK())
	assert.False(t, Stake("0").OK())
	assert.False(t, Stake("-2").OK())
	assert.False(t, Stake("NaN").OK())
}

func TestOdds(t *testing.T) {
	f := Odds("3/2")
	assert.True(t, f.OK())
	assert.Equal(t, 2.5, f.Value)

	assert.Equal(t, 1.33333, Odds("1/3").Value)
	assert.True(t, Odds("1").OK())
	assert.False(t, Odds("0.5").OK())
	assert.False(t, Odds("evens").OK())
}

func TestCashOut(t *testing.T) {
	f := CashOut("£7.50")
	if assert.NotNil(t, f.Value) {
		assert.Equal(t, 7.5, *f.Value)
	}

	assert.Nil(t, CashOut("").Value)
	assert.Equal(t, Defaulted, CashOut("n/a").Outcome)
}

func TestSelection(t *testing.T) {
	assert.Equal(t, "Bet Builder", Selection(" BB ").Value)
	assert.Equal(t, "Haaland AGS", Selection(" Haaland AGS ").Value)
	assert.False(t, Selection("   ").OK())
}

func TestPlacedAt(t *testing.T) {
	want := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)

	for _, raw := range []string{"2024-03-09", "09/03/2024", "9/3/2024", "2024-03-09T18:45:00Z", "2024-03-09 20:00"} {
		t.Run(raw, func(t *testing.T) {
			f := PlacedAt(raw)
			assert.True(t, f.OK())
			assert.Equal(t, want, f.Value)
		})
	}

	// converte para UTC antes de truncar
	f := PlacedAt("2024-03-10T00:30:00+02:00")
	assert.Equal(t, want, f.Value)

	assert.False(t, PlacedAt("yesterday").OK())
	assert.False(t, PlacedAt("").OK())
}

func TestInferBetType(t *testing.T) {
	tests := []struct {
		selection string
		want      catalog.BetType
	}{
		{"Arsenal/Chelsea ACCA", catalog.Accumulator},
		{"Saka x Palmer to score", catalog.Accumulator},
		{"Saka + Palmer", catalog.Accumulator},
		{"bb", catalog.BetBuilder},
		{"Spurs bet builder", catalog.BetBuilder},
		{"superboost", catalog.Superboost},
		{"Superboost Kane 2+", catalog.PlayerProp},
		{"Kane 2+ shots", catalog.PlayerProp},
		{"", catalog.PlayerProp},
	}

	for _, tt := range tests {
		t.Run(tt.selection, func(t *testing.T) {
			assert.Equal(t, tt.want, InferBetType(tt.selection))
		})
	}
}

func TestInferPlayerPropMarket(t *testing.T) {
	tests := []struct {
		selection string
		want      catalog.PlayerPropMarket
		wantOK    bool
	}{
		{"Messi AGS", catalog.AGS, true},
		{"Haaland anytime goalscorer", catalog.AGS, true},
		{"Saka SOT Over 0.5", catalog.SOTOver, true},
		{"Saka u1.5 sot", catalog.SOTUnder, true},
		{"Saka 1+ SOT", catalog.SOTOver, true},
		{"Palmer shots under 2.5", catalog.ShotsUnder, true},
		{"Palmer o2.5 shots", catalog.ShotsOver, true},
		{"Palmer 3+ shots", catalog.ShotsOver, true},
		{"Caicedo fouls committed 1+", catalog.FoulsCommittedOver, true},
		{"Doku fouls won 2+", catalog.FoulsWonOver, true},
		{"Rice 1+ foul", catalog.FoulsCommittedOver, true},
		{"Gueye 2+ tackles", catalog.TacklesOver, true},
		{"Bruno to be carded", catalog.ToBeCarded, true},
		{"random text", "", false},
		{"Flags out", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.selection, func(t *testing.T) {
			got, ok := InferPlayerPropMarket(tt.selection)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInferMarketWithSide(t *testing.T) {
	m, ok := InferMarketWithSide("SOT", true)
	assert.True(t, ok)
	assert.Equal(t, catalog.SOTUnder, m)

	m, ok = InferMarketWithSide("shots", false)
	assert.True(t, ok)
	assert.Equal(t, catalog.ShotsOver, m)

	m, ok = InferMarketWithSide("fouls won", false)
	assert.True(t, ok)
	assert.Equal(t, catalog.FoulsWonOver, m)

	_, ok = InferMarketWithSide("corners", false)
	assert.False(t, ok)
}
