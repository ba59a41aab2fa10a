package profit

import (
	"github.com/shopspring/decimal"

	"github.com/radieske/bet-ledger/internal/ledger/catalog"
)

// Entry é o recorte de uma aposta necessário para agregação
type Entry struct {
	Stake     float64
	StakeType catalog.StakeType
	Result    catalog.Result
	Profit    *float64
}

// Summary agrega o P&L. Apostas com lucro nil entram só na contagem de Undetermined,
// nunca nos totais. Profit e ROI ficam nil enquanto nenhuma aposta tiver lucro definido.
type Summary struct {
	Bets         int
	Open         int
	Won          int
	Lost         int
	Void         int
	Undetermined int

	TotalStaked   decimal.Decimal
	SettledStaked decimal.Decimal
	Profit        *decimal.Decimal
	ROI           *decimal.Decimal
}

// Summarize soma em decimal para não acumular erro de ponto flutuante
func Summarize(entries []Entry) Summary {
	var s Summary
	total := decimal.Zero
	settled := decimal.Zero
	pnl := decimal.Zero
	determined := 0

	for _, e := range entries {
		s.Bets++
		stake := decimal.NewFromFloat(e.Stake)
		total = total.Add(stake)

		switch e.Result {
		case catalog.ResultWon:
			s.Won++
		case catalog.ResultLost:
			s.Lost++
		case catalog.ResultVoid:
			s.Void++
		default:
			s.Open++
		}

		if e.Profit == nil {
			s.Undetermined++
			continue
		}
		determined++
		pnl = pnl.Add(decimal.NewFromFloat(*e.Profit))
		if e.StakeType != catalog.StakeFree {
			settled = settled.Add(stake)
		}
	}

	s.TotalStaked = total
	s.SettledStaked = settled
	if determined > 0 {
		s.Profit = &pnl
		if settled.IsPositive() {
			roi := pnl.Div(settled).Mul(decimal.NewFromInt(100)).Round(2)
			s.ROI = &roi
		}
	}
	return s
}
