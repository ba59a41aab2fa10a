package repair

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/bet-ledger/internal/ledger/catalog"
)

func str(s string) *string { return &s }

func TestCanonicalizeBetType(t *testing.T) {
	tests := []struct {
		raw    string
		want   catalog.BetType
		wantOK bool
	}{
		{"ACCA", catalog.Accumulator, true},
		{" bb ", catalog.BetBuilder, true},
		{"PlayerProp", catalog.PlayerProp, true},
		{"super boost", catalog.Superboost, true},
		{"SB", catalog.Superboost, true},
		{"Full-Time Result", catalog.FTResult, true},
		{"1x2", catalog.FTResult, true},
		{"other", catalog.Other, true},
		{"double chance", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := CanonicalizeBetType(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInferBetTypeFromSelection(t *testing.T) {
	tests := []struct {
		selection string
		want      catalog.BetType
		wantOK    bool
	}{
		{"Accumulator", catalog.Accumulator, true},
		{"Saturday acca", catalog.Accumulator, true},
		{"BB", catalog.BetBuilder, true},
		{"Kane Super Boost", catalog.Superboost, true},
		{"Arsenal to win", catalog.FTResult, true},
		{"Arsenal win", catalog.FTResult, true},
		{"Spurs won", catalog.FTResult, true},
		{"Winston AGS", "", false},
		{"Saka 1+ SOT", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.selection, func(t *testing.T) {
			got, ok := InferBetTypeFromSelection(tt.selection)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeFTResultSelection(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"FT Result: arsenal", "Arsenal to Win"},
		{"ft result - man city to win", "Man City to Win"},
		{"Result: CHELSEA win", "Chelsea to Win"},
		{"newcastle won", "Newcastle to Win"},
		{"aston villa", "Aston Villa to Win"},
		{"Arsenal to Win", "Arsenal to Win"},
		{"FT Result FT Result leeds", "Leeds to Win"},
		{"", ""},
		{"FT Result", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeFTResultSelection(tt.in))
		})
	}
}

func TestRetrofit(t *testing.T) {
	tests := []struct {
		name string
		in   Record
		want Record
	}{
		{
			name: "synonym becomes canonical and selection is the type name",
			in:   Record{BetType: "acca", Selection: "Arsenal, Spurs, Leeds", PlayerPropMarket: str("AGS")},
			want: Record{BetType: "Accumulator", Selection: "Accumulator"},
		},
		{
			name: "ft result selection normalized",
			in:   Record{BetType: "match result", Selection: "result: brentford"},
			want: Record{BetType: "FT Result", Selection: "Brentford to Win"},
		},
		{
			name: "unknown raw type keeps its text as selection",
			in:   Record{BetType: "Double Chance", Selection: "other"},
			want: Record{BetType: "Other", Selection: "Double Chance"},
		},
		{
			name: "unknown raw type keeps a real selection",
			in:   Record{BetType: "Double Chance", Selection: "Arsenal or draw", PlayerPropMarket: str("AGS")},
			want: Record{BetType: "Other", Selection: "Arsenal or draw"},
		},
		{
			name: "missing type inferred from selection",
			in:   Record{Selection: "wolves to win"},
			want: Record{BetType: "FT Result", Selection: "Wolves to Win"},
		},
		{
			name: "missing type defaults to player prop and keeps market",
			in:   Record{Selection: "Saka 1+ SOT", PlayerPropMarket: str("SOT Over")},
			want: Record{BetType: "Player Prop", Selection: "Saka 1+ SOT", PlayerPropMarket: str("SOT Over")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Retrofit(tt.in))
		})
	}
}

func TestLegacyPlayerProp(t *testing.T) {
	tests := []struct {
		name string
		in   Record
		want Record
	}{
		{
			name: "bb shortcut",
			in:   Record{BetType: "Player Prop", Selection: "bb", PlayerPropMarket: str("AGS")},
			want: Record{BetType: "Bet Builder", Selection: "Bet Builder"},
		},
		{
			name: "fouls text means fouls committed",
			in:   Record{BetType: "Player Prop", Selection: "Caicedo 2+ fouls"},
			want: Record{BetType: "Player Prop", Selection: "Caicedo 2+ fouls", PlayerPropMarket: str("Fouls Committed Over")},
		},
		{
			name: "legacy over line rewritten",
			in:   Record{BetType: "Player Prop", Selection: "Sael Kumbedi O0.5 fouls won"},
			want: Record{BetType: "Player Prop", Selection: "Sael Kumbedi Fouls Won Over 0.5", PlayerPropMarket: str("Fouls Won Over")},
		},
		{
			name: "legacy under line uses the side",
			in:   Record{BetType: "Player Prop", Selection: "Palmer u 2 shots"},
			want: Record{BetType: "Player Prop", Selection: "Palmer Shots Under 2.0", PlayerPropMarket: str("Shots Under")},
		},
		{
			name: "quarter line rounds half up",
			in:   Record{BetType: "Player Prop", Selection: "Saka O0.25 sot"},
			want: Record{BetType: "Player Prop", Selection: "Saka SOT Over 0.3", PlayerPropMarket: str("SOT Over")},
		},
		{
			name: "existing canonical market preferred",
			in:   Record{BetType: "Player Prop", Selection: "Rice O1.5 something", PlayerPropMarket: str("Tackles Over")},
			want: Record{BetType: "Player Prop", Selection: "Rice Tackles Over 1.5", PlayerPropMarket: str("Tackles Over")},
		},
		{
			name: "unknown stored market dropped",
			in:   Record{BetType: "Player Prop", Selection: "Rice to assist", PlayerPropMarket: str("Assists")},
			want: Record{BetType: "Player Prop", Selection: "Rice to assist"},
		},
		{
			name: "other bet types untouched",
			in:   Record{BetType: "FT Result", Selection: "Arsenal to Win"},
			want: Record{BetType: "FT Result", Selection: "Arsenal to Win"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LegacyPlayerProp(tt.in))
		})
	}
}

func TestOneDecimal(t *testing.T) {
	assert.Equal(t, "0.3", oneDecimal(0.25))
	assert.Equal(t, "0.8", oneDecimal(0.75))
	assert.Equal(t, "0.3", oneDecimal(0.35))
	assert.Equal(t, "1.5", oneDecimal(1.5))
	assert.Equal(t, "2.0", oneDecimal(2))
}

func TestRunReportsFiredRules(t *testing.T) {
	out, fired := Run(Record{BetType: "player prop", Selection: "Saka O0.5 sot"}, Default...)
	assert.Equal(t, Record{BetType: "Player Prop", Selection: "Saka SOT Over 0.5", PlayerPropMarket: str("SOT Over")}, out)
	assert.Equal(t, []string{"retrofit", "legacy-player-prop"}, fired)

	_, fired = Run(out, Default...)
	assert.Empty(t, fired)
}

func TestTally(t *testing.T) {
	var tally Tally
	before := Record{BetType: "acca", Selection: "x", PlayerPropMarket: str("AGS")}
	after, fired := Run(before, Default...)
	tally.Add(Diff(before, after), fired)
	tally.Add(Diff(after, after), nil)

	assert.Equal(t, 2, tally.Scanned)
	assert.Equal(t, 1, tally.Changed)
	assert.Equal(t, 1, tally.BetTypes)
	assert.Equal(t, 1, tally.Selections)
	assert.Equal(t, 1, tally.MarketsCleared)
	assert.Equal(t, 1, tally.Rules["retrofit"])
}

var (
	genBetTypes = []string{
		"", "acca", "Accumulator", "bb", "Bet Builder", "builder", "player prop", "PlayerProp",
		"sb", "Super Boost", "FT Result", "1x2", "match result", "other", "Other",
		"Double Chance", "BTTS", "  weird  ",
	}
	genSelections = []string{
		"", "bb", "BB", "other", "Accumulator", "Saturday acca", "Arsenal to win", "result: chelsea",
		"FT Result - man utd won", "FT Result", "to win", "win", "Saka O0.5 sot", "Palmer U1.5 shots",
		"Kumbedi O0.5 fouls won", "Caicedo 2+ fouls", "Rice O1.5 corners", "Sotiris O1.5 corners",
		"Messi AGS", "Bruno to be carded", "Gueye 2+ tackles", "Kane super boost", "random text",
		"Man to win to win", "Haaland  anytime goalscorer",
	}
	genMarkets = []*string{
		nil, str("AGS"), str("SOT Over"), str("Tackles Over"), str("fouls committed"), str("Assists"), str(""),
	}
)

func TestRepairIsIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 5000; i++ {
		r := Record{
			ID:               "r",
			BetType:          genBetTypes[rng.Intn(len(genBetTypes))],
			Selection:        genSelections[rng.Intn(len(genSelections))],
			PlayerPropMarket: genMarkets[rng.Intn(len(genMarkets))],
		}

		once := Repair(r)
		twice := Repair(once)
		require.Equal(t, once, twice, "record %+v", r)

		for _, rule := range Default {
			a := rule.Apply(r)
			require.Equal(t, a, rule.Apply(a), "rule %s on %+v", rule.Name, r)
		}
	}
}

func TestRepairOutputIsInCatalog(t *testing.T) {
	for _, bt := range genBetTypes {
		for _, sel := range genSelections {
			for _, m := range genMarkets {
				out := Repair(Record{BetType: bt, Selection: sel, PlayerPropMarket: m})

				typ, ok := catalog.ParseBetType(out.BetType)
				require.True(t, ok, "bet type %q", out.BetType)
				if out.PlayerPropMarket != nil {
					assert.Equal(t, catalog.PlayerProp, typ)
					assert.True(t, catalog.PlayerPropMarket(*out.PlayerPropMarket).Valid(), "market %q", *out.PlayerPropMarket)
				}
			}
		}
	}
}

func TestParseRules(t *testing.T) {
	rules, err := ParseRules("")
	require.NoError(t, err)
	assert.Len(t, rules, 2)

	rules, err = ParseRules(" legacy ")
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "legacy-player-prop", rules[0].Name)

	rules, err = ParseRules("retrofit,legacy-player-prop")
	require.NoError(t, err)
	assert.Equal(t, "retrofit", rules[0].Name)
	assert.Equal(t, "legacy-player-prop", rules[1].Name)

	_, err = ParseRules("retrofit,magic")
	assert.ErrorContains(t, err, `"magic"`)
}
