package profit

import (
	"math"

	"github.com/radieske/bet-ledger/internal/ledger/catalog"
)

// Calculate devolve o lucro líquido da aposta ou nil quando ainda não é determinável.
//
//	WON  -> stake*odds - stake
//	LOST -> -stake (0 para free bet, o stake não era do usuário)
//	VOID -> cashOut - stake (nil sem valor de cash out)
//	OPEN -> nil
func Calculate(stake, odds float64, result catalog.Result, stakeType catalog.StakeType, cashOut *float64) *float64 {
	if !finite(stake) {
		return nil
	}

	switch result {
	case catalog.ResultWon:
		if !finite(odds) {
			return nil
		}
		return ptr(stake*odds - stake)
	case catalog.ResultLost:
		if stakeType == catalog.StakeFree {
			return ptr(0)
		}
		return ptr(-stake)
	case catalog.ResultVoid:
		if cashOut == nil || !finite(*cashOut) {
			return nil
		}
		return ptr(*cashOut - stake)
	}
	return nil
}

// PotentialReturn é o retorno bruto se a aposta vencer
func PotentialReturn(stake, odds float64) float64 { return stake * odds }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func ptr(v float64) *float64 { return &v }
