package repair

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/radieske/bet-ledger/internal/ledger/catalog"
	"github.com/radieske/bet-ledger/internal/ledger/normalize"
)

// Record é a classificação gravada de uma aposta, ainda em texto livre.
// Registros antigos podem ter bet type e mercado fora do catálogo.
type Record struct {
	ID               string
	BetType          string
	Selection        string
	PlayerPropMarket *string
}

// Rule é uma regra de reparo nomeada. Toda regra precisa ser idempotente.
type Rule struct {
	Name  string
	Apply func(Record) Record
}

var (
	RetrofitRule = Rule{Name: "retrofit", Apply: Retrofit}
	LegacyRule   = Rule{Name: "legacy-player-prop", Apply: LegacyPlayerProp}

	// Default roda o retrofit de tipos antes do reparo de player props
	Default = []Rule{RetrofitRule, LegacyRule}
)

// "Sael Kumbedi O0.5 fouls won" -> jogador, lado, linha, mercado
var legacySelectionRe = regexp.MustCompile(`(?i)^(.*?)\s+([OU])\s*(\d+(?:\.\d+)?)\s+(.+)$`)

// Repair aplica as regras padrão
func Repair(r Record) Record {
	out, _ := Run(r, Default...)
	return out
}

// Run aplica as regras em sequência e informa quais alteraram o registro
func Run(r Record, rules ...Rule) (Record, []string) {
	var fired []string
	cur := r
	for _, rule := range rules {
		next := rule.Apply(cur)
		if Diff(cur, next).Any() {
			fired = append(fired, rule.Name)
		}
		cur = next
	}
	return cur, fired
}

// Retrofit leva o bet type para o catálogo e ajusta seleção e mercado conforme o tipo
func Retrofit(r Record) Record {
	out := r
	raw := strings.TrimSpace(r.BetType)

	target, canonical := CanonicalizeBetType(raw)
	if !canonical {
		switch {
		case raw != "":
			target = catalog.Other
		default:
			if t, ok := InferBetTypeFromSelection(r.Selection); ok {
				target = t
			} else {
				target = catalog.PlayerProp
			}
		}
	}
	out.BetType = string(target)

	switch target {
	case catalog.Accumulator, catalog.BetBuilder, catalog.Superboost:
		out.Selection = string(target)
		out.PlayerPropMarket = nil
	case catalog.FTResult:
		if s := NormalizeFTResultSelection(r.Selection); s != "" {
			out.Selection = s
		}
		out.PlayerPropMarket = nil
	case catalog.Other:
		sel := strings.TrimSpace(r.Selection)
		if (sel == "" || strings.EqualFold(sel, "other")) && raw != "" && !canonical {
			// o texto antigo do tipo é a melhor descrição que sobrou
			out.Selection = raw
		}
		out.PlayerPropMarket = nil
	}
	return out
}

// oneDecimal arredonda a linha para uma casa, empate para cima sobre o valor binário exato
// (0.25 -> "0.3", 0.35 -> "0.3")
func oneDecimal(line float64) string {
	d, err := decimal.NewFromString(strconv.FormatFloat(line, 'f', 30, 64))
	if err != nil {
		return strconv.FormatFloat(line, 'f', 1, 64)
	}
	return d.StringFixed(1)
}

// LegacyPlayerProp corrige seleções importadas no formato antigo de planilha
func LegacyPlayerProp(r Record) Record {
	out := r
	sel := strings.TrimSpace(r.Selection)
	lower := strings.ToLower(sel)

	if lower == "bb" {
		out.BetType = string(catalog.BetBuilder)
		out.Selection = string(catalog.BetBuilder)
		out.PlayerPropMarket = nil
		return out
	}
	if out.BetType != string(catalog.PlayerProp) {
		return out
	}

	var market *catalog.PlayerPropMarket
	if r.PlayerPropMarket != nil {
		if m, ok := canonicalMarket(*r.PlayerPropMarket); ok {
			market = &m
		}
	}

	if strings.Contains(lower, "foul") && !strings.Contains(lower, "fouls won") {
		m := catalog.FoulsCommittedOver
		market = &m
	}

	if g := legacySelectionRe.FindStringSubmatch(sel); g != nil {
		line, err := strconv.ParseFloat(g[3], 64)
		resolved := market
		if resolved == nil {
			if m, ok := normalize.InferMarketWithSide(g[4], strings.EqualFold(g[2], "u")); ok {
				resolved = &m
			}
		}
		if err == nil && resolved != nil {
			out.Selection = fmt.Sprintf("%s %s %s", strings.TrimSpace(g[1]), *resolved, oneDecimal(line))
			market = resolved
		}
	} else if market == nil {
		if m, ok := normalize.InferPlayerPropMarket(out.Selection); ok {
			market = &m
		}
	}

	out.PlayerPropMarket = nil
	if market != nil {
		s := string(*market)
		out.PlayerPropMarket = &s
	}
	return out
}

// canonicalMarket aceita o nome do catálogo ou descrições antigas reconhecíveis
func canonicalMarket(raw string) (catalog.PlayerPropMarket, bool) {
	if m, ok := catalog.ParsePlayerPropMarket(raw); ok {
		return m, true
	}
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case s == "":
		return "", false
	case strings.Contains(s, "fouls committed"):
		return catalog.FoulsCommittedOver, true
	case strings.Contains(s, "fouls won"):
		return catalog.FoulsWonOver, true
	case s == "anytime goalscorer" || s == "ags":
		return catalog.AGS, true
	case strings.Contains(s, "carded"):
		return catalog.ToBeCarded, true
	}
	return "", false
}

// Change marca quais campos de classificação mudaram
type Change struct {
	BetType        bool
	Selection      bool
	MarketSet      bool
	MarketCleared  bool
	MarketReplaced bool
}

func (c Change) Any() bool {
	return c.BetType || c.Selection || c.MarketSet || c.MarketCleared || c.MarketReplaced
}

// Diff compara dois estados do mesmo registro
func Diff(before, after Record) Change {
	c := Change{
		BetType:   before.BetType != after.BetType,
		Selection: before.Selection != after.Selection,
	}
	switch {
	case before.PlayerPropMarket == nil && after.PlayerPropMarket != nil:
		c.MarketSet = true
	case before.PlayerPropMarket != nil && after.PlayerPropMarket == nil:
		c.MarketCleared = true
	case before.PlayerPropMarket != nil && *before.PlayerPropMarket != *after.PlayerPropMarket:
		c.MarketReplaced = true
	}
	return c
}

// Tally acumula o relatório de uma execução de reparo
type Tally struct {
	Scanned        int
	Changed        int
	BetTypes       int
	Selections     int
	MarketsSet     int
	MarketsCleared int
	MarketsFixed   int
	Failed         int
	Rules          map[string]int
}

// Add contabiliza um registro processado
func (t *Tally) Add(c Change, fired []string) {
	t.Scanned++
	if !c.Any() {
		return
	}
	t.Changed++
	if c.BetType {
		t.BetTypes++
	}
	if c.Selection {
		t.Selections++
	}
	if c.MarketSet {
		t.MarketsSet++
	}
	if c.MarketCleared {
		t.MarketsCleared++
	}
	if c.MarketReplaced {
		t.MarketsFixed++
	}
	if t.Rules == nil {
		t.Rules = make(map[string]int)
	}
	for _, name := range fired {
		t.Rules[name]++
	}
}

// ParseRules resolve a lista separada por vírgula do CLI; vazio devolve Default
func ParseRules(raw string) ([]Rule, error) {
	if strings.TrimSpace(raw) == "" {
		return Default, nil
	}
	var out []Rule
	for _, part := range strings.Split(raw, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "retrofit":
			out = append(out, RetrofitRule)
		case "legacy", LegacyRule.Name:
			out = append(out, LegacyRule)
		case "":
		default:
			return nil, fmt.Errorf("unknown repair rule %q", strings.TrimSpace(part))
		}
	}
	if len(out) == 0 {
		return Default, nil
	}
	return out, nil
}
