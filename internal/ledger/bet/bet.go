package bet

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/radieske/bet-ledger/internal/ledger/catalog"
	"github.com/radieske/bet-ledger/internal/ledger/profit"
)

// Bet é o registro canônico de uma aposta já normalizada
type Bet struct {
	ID     string
	UserID string

	Fixture          string
	Selection        string
	Bookmaker        catalog.Bookmaker
	StakeType        catalog.StakeType
	BetType          catalog.BetType
	PlayerPropMarket *catalog.PlayerPropMarket

	Stake           float64
	Odds            float64
	PotentialReturn float64
	Result          catalog.Result
	CashOutValue    *float64
	Profit          *float64

	PlacedAt  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Derive recalcula os campos derivados e descarta os que não se aplicam ao estado atual.
// Todo caminho de escrita passa por aqui.
func (b *Bet) Derive() {
	if b.Result != catalog.ResultVoid {
		b.CashOutValue = nil
	}
	if b.BetType != catalog.PlayerProp {
		b.PlayerPropMarket = nil
	}
	b.PotentialReturn = profit.PotentialReturn(b.Stake, b.Odds)
	b.Profit = profit.Calculate(b.Stake, b.Odds, b.Result, b.StakeType, b.CashOutValue)
}

var (
	ErrMarketWithoutPlayerProp = errors.New("player prop market set on a non player prop bet")
	ErrCashOutNotVoid          = errors.New("cash out value set on a bet that is not void")
	ErrPotentialReturn         = errors.New("potential return differs from stake * odds")
)

// Validate verifica os invariantes do registro
func (b Bet) Validate() error {
	switch {
	case b.Fixture == "":
		return fmt.Errorf("fixture is empty")
	case b.Selection == "":
		return fmt.Errorf("selection is empty")
	case !b.Bookmaker.Valid():
		return fmt.Errorf("bookmaker %q not supported", b.Bookmaker)
	case !b.StakeType.Valid():
		return fmt.Errorf("stake type %q not supported", b.StakeType)
	case !b.BetType.Valid():
		return fmt.Errorf("bet type %q not supported", b.BetType)
	case !b.Result.Valid():
		return fmt.Errorf("result %q not supported", b.Result)
	case !(b.Stake > 0) || math.IsInf(b.Stake, 0):
		return fmt.Errorf("stake must be positive, got %v", b.Stake)
	case !(b.Odds >= 1) || math.IsInf(b.Odds, 0):
		return fmt.Errorf("odds must be at least 1, got %v", b.Odds)
	case b.PlayerPropMarket != nil && b.BetType != catalog.PlayerProp:
		return ErrMarketWithoutPlayerProp
	case b.PlayerPropMarket != nil && !b.PlayerPropMarket.Valid():
		return fmt.Errorf("player prop market %q not supported", *b.PlayerPropMarket)
	case b.CashOutValue != nil && b.Result != catalog.ResultVoid:
		return ErrCashOutNotVoid
	case b.PotentialReturn != profit.PotentialReturn(b.Stake, b.Odds):
		return ErrPotentialReturn
	}
	return nil
}
