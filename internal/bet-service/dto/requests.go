package dto

import (
	"github.com/radieske/bet-ledger/internal/ledger/bet"
)

// CreateBetRequest é o payload de criação; todos os campos chegam como texto ou número
type CreateBetRequest struct {
	Fixture          Loose `json:"fixture"`
	Selection        Loose `json:"selection"`
	Bookmaker        Loose `json:"bookmaker"`
	StakeType        Loose `json:"stakeType"`
	BetType          Loose `json:"betType"`
	PlayerPropMarket Loose `json:"playerPropMarket"`
	Stake            Loose `json:"stake"`
	Odds             Loose `json:"odds"`
	Result           Loose `json:"result"`
	CashOutValue     Loose `json:"cashOutValue"`
	PlacedAt         Loose `json:"placedAt"`
}

func (r CreateBetRequest) Input() bet.Input {
	return bet.Input{
		Fixture:          r.Fixture.String(),
		Selection:        r.Selection.String(),
		Bookmaker:        r.Bookmaker.String(),
		StakeType:        r.StakeType.String(),
		BetType:          r.BetType.String(),
		PlayerPropMarket: r.PlayerPropMarket.String(),
		Stake:            r.Stake.String(),
		Odds:             r.Odds.String(),
		Result:           r.Result.String(),
		CashOutValue:     r.CashOutValue.String(),
		PlacedAt:         r.PlacedAt.String(),
	}
}

// UpdateBetRequest é a edição parcial. Campo ausente ou null mantém o valor atual.
// potentialReturn e profit são aceitos no corpo mas ignorados.
type UpdateBetRequest struct {
	Fixture          *Loose `json:"fixture"`
	Selection        *Loose `json:"selection"`
	Bookmaker        *Loose `json:"bookmaker"`
	StakeType        *Loose `json:"stakeType"`
	BetType          *Loose `json:"betType"`
	PlayerPropMarket *Loose `json:"playerPropMarket"`
	Stake            *Loose `json:"stake"`
	Odds             *Loose `json:"odds"`
	Result           *Loose `json:"result"`
	CashOutValue     *Loose `json:"cashOutValue"`
	PlacedAt         *Loose `json:"placedAt"`

	PotentialReturn *Loose `json:"potentialReturn,omitempty"`
	Profit          *Loose `json:"profit,omitempty"`
}

func (r UpdateBetRequest) Patch() bet.Patch {
	return bet.Patch{
		Fixture:          ptr(r.Fixture),
		Selection:        ptr(r.Selection),
		Bookmaker:        ptr(r.Bookmaker),
		StakeType:        ptr(r.StakeType),
		BetType:          ptr(r.BetType),
		PlayerPropMarket: ptr(r.PlayerPropMarket),
		Stake:            ptr(r.Stake),
		Odds:             ptr(r.Odds),
		Result:           ptr(r.Result),
		CashOutValue:     ptr(r.CashOutValue),
		PlacedAt:         ptr(r.PlacedAt),
	}
}
