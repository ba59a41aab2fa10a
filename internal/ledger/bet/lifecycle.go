package bet

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/radieske/bet-ledger/internal/ledger/catalog"
	"github.com/radieske/bet-ledger/internal/ledger/normalize"
)

// Nomes de campo usados nos erros de validação
const (
	FieldPlacedAt  = "placedAt"
	FieldBookmaker = "bookmaker"
	FieldFixture   = "fixture"
	FieldSelection = "selection"
	FieldStake     = "stake"
	FieldOdds      = "odds"
)

// Input é a aposta ainda em texto bruto, vinda de planilha ou de payload JSON
type Input struct {
	Fixture          string
	Selection        string
	Bookmaker        string
	StakeType        string
	BetType          string
	PlayerPropMarket string
	Stake            string
	Odds             string
	Result           string
	CashOutValue     string
	PlacedAt         string
}

// Patch traz apenas os campos enviados numa edição; nil mantém o valor atual.
// potentialReturn e profit não fazem parte: são sempre recalculados.
type Patch struct {
	Fixture          *string
	Selection        *string
	Bookmaker        *string
	StakeType        *string
	BetType          *string
	PlayerPropMarket *string
	Stake            *string
	Odds             *string
	Result           *string
	CashOutValue     *string
	PlacedAt         *string
}

// FieldError descreve um campo obrigatório recusado
type FieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Value, e.Reason)
}

// ValidationError agrega os campos recusados de um registro
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Error())
	}
	return strings.Join(msgs, "; ")
}

// Defaults registra quais campos tolerantes caíram no valor padrão
type Defaults struct {
	Result    bool
	StakeType bool
	BetType   bool
	Market    bool
}

// New normaliza a entrada bruta e monta o registro com os campos derivados.
// Campos obrigatórios inválidos são checados na ordem data, casa, jogo, seleção,
// stake e odds, e todos os recusados voltam no ValidationError.
func New(in Input) (Bet, error) {
	b, _, err := Build(in)
	return b, err
}

// Build é como New, mas também informa quais campos tolerantes foram preenchidos com o padrão
func Build(in Input) (Bet, Defaults, error) {
	var (
		errs []FieldError
		def  Defaults
	)
	check := func(field, raw string, ok bool, reason string) {
		if !ok {
			errs = append(errs, FieldError{Field: field, Value: strings.TrimSpace(raw), Reason: reason})
		}
	}

	placedAt := normalize.PlacedAt(in.PlacedAt)
	check(FieldPlacedAt, in.PlacedAt, placedAt.OK(), placedAt.Reason)
	bookmaker := normalize.Bookmaker(in.Bookmaker)
	check(FieldBookmaker, in.Bookmaker, bookmaker.OK(), bookmaker.Reason)
	fixture := normalize.Text(in.Fixture)
	check(FieldFixture, in.Fixture, fixture.OK(), fixture.Reason)
	selection := normalize.Selection(in.Selection)
	check(FieldSelection, in.Selection, selection.OK(), selection.Reason)
	stake := normalize.Stake(in.Stake)
	check(FieldStake, in.Stake, stake.OK(), stake.Reason)
	oddsField := normalize.Odds(in.Odds)
	check(FieldOdds, in.Odds, oddsField.OK(), oddsField.Reason)

	if len(errs) > 0 {
		return Bet{}, def, &ValidationError{Fields: errs}
	}

	result := normalize.Result(in.Result)
	stakeType := normalize.StakeType(in.StakeType)
	def.Result = result.Outcome == normalize.Defaulted
	def.StakeType = stakeType.Outcome == normalize.Defaulted

	b := Bet{
		Fixture:   fixture.Value,
		Selection: selection.Value,
		Bookmaker: bookmaker.Value,
		StakeType: stakeType.Value,
		Stake:     stake.Value,
		Odds:      oddsField.Value,
		Result:    result.Value,
		PlacedAt:  placedAt.Value,
	}
	b.BetType, b.PlayerPropMarket, def.BetType, def.Market = classify(b.Selection, in.BetType, in.PlayerPropMarket)

	if b.Result == catalog.ResultVoid {
		b.CashOutValue = normalize.CashOut(in.CashOutValue).Value
	}

	b.Derive()
	if err := b.Validate(); err != nil {
		return Bet{}, def, err
	}
	return b, def, nil
}

// classify resolve tipo e mercado: valor explícito canônico primeiro, inferência pela seleção depois
func classify(selection, rawType, rawMarket string) (catalog.BetType, *catalog.PlayerPropMarket, bool, bool) {
	t, ok := catalog.ParseBetType(rawType)
	inferredType := !ok
	if !ok {
		t = normalize.InferBetType(selection)
	}
	if t != catalog.PlayerProp {
		return t, nil, inferredType, false
	}

	if m, ok := catalog.ParsePlayerPropMarket(rawMarket); ok {
		return t, &m, inferredType, false
	}
	if m, ok := normalize.InferPlayerPropMarket(selection); ok {
		return t, &m, inferredType, false
	}
	return t, nil, inferredType, true
}

// Input devolve o registro em forma bruta, base para o merge de edições
func (b Bet) Input() Input {
	in := Input{
		Fixture:   b.Fixture,
		Selection: b.Selection,
		Bookmaker: string(b.Bookmaker),
		StakeType: string(b.StakeType),
		BetType:   string(b.BetType),
		Stake:     strconv.FormatFloat(b.Stake, 'f', -1, 64),
		Odds:      strconv.FormatFloat(b.Odds, 'f', -1, 64),
		Result:    string(b.Result),
		PlacedAt:  b.PlacedAt.UTC().Format(time.DateOnly),
	}
	if b.PlayerPropMarket != nil {
		in.PlayerPropMarket = string(*b.PlayerPropMarket)
	}
	if b.CashOutValue != nil {
		in.CashOutValue = strconv.FormatFloat(*b.CashOutValue, 'f', -1, 64)
	}
	return in
}

// Apply mescla a edição sobre o registro atual e renormaliza tudo.
// Resultado e cash out são reavaliados juntos: cash out só sobrevive se o resultado final for VOID.
func (b Bet) Apply(p Patch) (Bet, error) {
	in := b.Input()
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&in.Fixture, p.Fixture)
	set(&in.Selection, p.Selection)
	set(&in.Bookmaker, p.Bookmaker)
	set(&in.StakeType, p.StakeType)
	set(&in.BetType, p.BetType)
	set(&in.Stake, p.Stake)
	set(&in.Odds, p.Odds)
	set(&in.Result, p.Result)
	set(&in.CashOutValue, p.CashOutValue)
	set(&in.PlacedAt, p.PlacedAt)

	switch {
	case p.PlayerPropMarket != nil:
		in.PlayerPropMarket = *p.PlayerPropMarket
	case p.Selection != nil || p.BetType != nil:
		// seleção ou tipo mudou: o mercado antigo pode não valer mais
		in.PlayerPropMarket = ""
	}

	next, err := New(in)
	if err != nil {
		return Bet{}, err
	}
	next.ID = b.ID
	next.UserID = b.UserID
	next.CreatedAt = b.CreatedAt
	return next, nil
}
