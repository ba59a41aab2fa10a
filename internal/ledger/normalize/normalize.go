package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/radieske/bet-ledger/internal/ledger/catalog"
	"github.com/radieske/bet-ledger/internal/ledger/odds"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)

	// aceita "£1,234.50", "1234.5", " 10 "
	numberCleaner = strings.NewReplacer("£", "", ",", "", " ", "")

	bookmakerAliases = map[string]catalog.Bookmaker{
		"BET365":      catalog.Bet365,
		"BETFAIR":     catalog.Betfair,
		"BETUK":       catalog.BetUK,
		"LADBROKES":   catalog.Ladbrokes,
		"PADDYPOWER":  catalog.PaddyPower,
		"SKYBET":      catalog.SkyBet,
		"WILLIAMHILL": catalog.WilliamHill,
	}

	resultAliases = map[string]catalog.Result{
		"WIN":        catalog.ResultWon,
		"WON":        catalog.ResultWon,
		"LOSS":       catalog.ResultLost,
		"LOST":       catalog.ResultLost,
		"VOID":       catalog.ResultVoid,
		"CASHED_OUT": catalog.ResultVoid,
		"CASHEDOUT":  catalog.ResultVoid,
		"OPEN":       catalog.ResultOpen,
	}

	dateLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
		"02/01/2006",
		"2/1/2006",
		"02/01/2006 15:04",
		"02-01-2006",
	}
)

// Bookmaker reconhece apenas as grafias conhecidas após upper-case e trim.
// Espaços internos não são removidos: "bet 365" é recusado.
func Bookmaker(raw string) Field[catalog.Bookmaker] {
	key := strings.ToUpper(strings.TrimSpace(raw))
	if key == "" {
		return reject[catalog.Bookmaker]("is required")
	}
	if b, ok := bookmakerAliases[key]; ok {
		return accept(b)
	}
	return reject[catalog.Bookmaker]("unsupported bookmaker")
}

// StakeType é FREE somente quando o texto for exatamente "free"; qualquer outra coisa vira NORMAL
func StakeType(raw string) Field[catalog.StakeType] {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "FREE":
		return accept(catalog.StakeFree)
	case "NORMAL":
		return accept(catalog.StakeNormal)
	}
	return defaulted(catalog.StakeNormal)
}

// Result mapeia os sinônimos de liquidação; desconhecido ou vazio vira OPEN
func Result(raw string) Field[catalog.Result] {
	key := whitespaceRe.ReplaceAllString(strings.ToUpper(strings.TrimSpace(raw)), "_")
	if r, ok := resultAliases[key]; ok {
		return accept(r)
	}
	return defaulted(catalog.ResultOpen)
}

// Number remove símbolo de libra, separador de milhar e espaços; só aceita valores finitos
func Number(raw string) (float64, bool) {
	s := numberCleaner.Replace(strings.TrimSpace(raw))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Stake precisa ser um número positivo
func Stake(raw string) Field[float64] {
	v, ok := Number(raw)
	if !ok || v <= 0 {
		return reject[float64]("must be a positive amount")
	}
	return accept(v)
}

// Odds aceita decimal ou fracionária; abaixo de 1.00 é recusada
func Odds(raw string) Field[float64] {
	v, ok := odds.Parse(raw)
	if !ok || v < 1 {
		return reject[float64]("must be decimal (e.g. 2.5) or fractional (e.g. 3/2) and at least 1")
	}
	v, _ = odds.NormalizePrecision(v)
	return accept(v)
}

// CashOut é o valor total devolvido no cash out. Ausente ou ilegível resolve para nil.
func CashOut(raw string) Field[*float64] {
	if strings.TrimSpace(raw) == "" {
		return defaulted[*float64](nil)
	}
	v, ok := Number(raw)
	if !ok || v < 0 {
		return defaulted[*float64](nil)
	}
	return accept(&v)
}

// Text exige conteúdo após o trim
func Text(raw string) Field[string] {
	s := strings.TrimSpace(raw)
	if s == "" {
		return reject[string]("is required")
	}
	return accept(s)
}

// Selection é o texto canônico da aposta; "bb" é a abreviação de Bet Builder
func Selection(raw string) Field[string] {
	f := Text(raw)
	if f.OK() && strings.EqualFold(f.Value, "bb") {
		return accept(string(catalog.BetBuilder))
	}
	return f
}

// PlacedAt aceita data ISO, data/hora e o formato dd/mm/yyyy das planilhas.
// O resultado é sempre meia-noite UTC do dia calendário.
func PlacedAt(raw string) Field[time.Time] {
	s := strings.TrimSpace(raw)
	if s == "" {
		return reject[time.Time]("is required")
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return accept(Day(t))
	}
	return reject[time.Time]("invalid date")
}

// Day trunca para meia-noite UTC
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
