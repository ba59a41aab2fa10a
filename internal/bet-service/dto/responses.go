package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/radieske/bet-ledger/internal/ledger/bet"
	"github.com/radieske/bet-ledger/internal/ledger/profit"
)

// BetResponse é a aposta serializada; profit e cashOutValue saem como null quando indefinidos
type BetResponse struct {
	ID               string    `json:"id"`
	Fixture          string    `json:"fixture"`
	Selection        string    `json:"selection"`
	Bookmaker        string    `json:"bookmaker"`
	StakeType        string    `json:"stakeType"`
	BetType          string    `json:"betType"`
	PlayerPropMarket *string   `json:"playerPropMarket"`
	Stake            float64   `json:"stake"`
	Odds             float64   `json:"odds"`
	PotentialReturn  float64   `json:"potentialReturn"`
	Result           string    `json:"result"`
	CashOutValue     *float64  `json:"cashOutValue"`
	Profit           *float64  `json:"profit"`
	PlacedAt         string    `json:"placedAt"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func NewBetResponse(b bet.Bet) BetResponse {
	r := BetResponse{
		ID:              b.ID,
		Fixture:         b.Fixture,
		Selection:       b.Selection,
		Bookmaker:       string(b.Bookmaker),
		StakeType:       string(b.StakeType),
		BetType:         string(b.BetType),
		Stake:           b.Stake,
		Odds:            b.Odds,
		PotentialReturn: b.PotentialReturn,
		Result:          string(b.Result),
		CashOutValue:    b.CashOutValue,
		Profit:          b.Profit,
		PlacedAt:        b.PlacedAt.UTC().Format(time.DateOnly),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	if b.PlayerPropMarket != nil {
		m := string(*b.PlayerPropMarket)
		r.PlayerPropMarket = &m
	}
	return r
}

// ListResponse é uma página de apostas
type ListResponse struct {
	Items      []BetResponse `json:"items"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	Total      int           `json:"total"`
	TotalPages int           `json:"totalPages"`
}

func NewListResponse(items []bet.Bet, q ListQuery, total int) ListResponse {
	out := ListResponse{Items: make([]BetResponse, 0, len(items)), Page: q.Page, PageSize: q.PageSize, Total: total}
	for _, b := range items {
		out.Items = append(out.Items, NewBetResponse(b))
	}
	if q.PageSize > 0 {
		out.TotalPages = (total + q.PageSize - 1) / q.PageSize
	}
	return out
}

// SummaryResponse é o P&L agregado. Valores monetários saem como string decimal.
type SummaryResponse struct {
	Bets          int              `json:"bets"`
	Open          int              `json:"open"`
	Won           int              `json:"won"`
	Lost          int              `json:"lost"`
	Void          int              `json:"void"`
	Undetermined  int              `json:"undetermined"`
	TotalStaked   decimal.Decimal  `json:"totalStaked"`
	SettledStaked decimal.Decimal  `json:"settledStaked"`
	Profit        *decimal.Decimal `json:"profit"`
	ROI           *decimal.Decimal `json:"roi"`
}

func NewSummaryResponse(s profit.Summary) SummaryResponse {
	return SummaryResponse{
		Bets:          s.Bets,
		Open:          s.Open,
		Won:           s.Won,
		Lost:          s.Lost,
		Void:          s.Void,
		Undetermined:  s.Undetermined,
		TotalStaked:   s.TotalStaked,
		SettledStaked: s.SettledStaked,
		Profit:        s.Profit,
		ROI:           s.ROI,
	}
}

// OddsConvertResponse traz a odd nas duas notações
type OddsConvertResponse struct {
	Decimal    float64 `json:"decimal"`
	Fractional string  `json:"fractional"`
	Display    string  `json:"display"`
}

// FieldError é um erro de validação de um campo
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse é o corpo padrão de erro da API
type ErrorResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// ValidationFailed monta o corpo 422
func ValidationFailed(errs []FieldError) ErrorResponse {
	return ErrorResponse{Success: false, Message: "Validation failed", Errors: errs}
}

// FromValidation traduz os campos recusados pelo núcleo
func FromValidation(verr *bet.ValidationError) []FieldError {
	out := make([]FieldError, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		msg := f.Reason
		if f.Value != "" {
			msg = "invalid value '" + f.Value + "': " + f.Reason
		}
		out = append(out, FieldError{Field: f.Field, Message: msg})
	}
	return out
}
