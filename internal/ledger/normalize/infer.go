package normalize

import (
	"regexp"
	"strings"

	"github.com/radieske/bet-ledger/internal/ledger/catalog"
)

// rule é um par (predicado, resultado). As tabelas são avaliadas em ordem e a
// primeira regra que casa vence; a ordem é parte do contrato.
type rule[T any] struct {
	match  func(s string) bool
	result T
}

func firstMatch[T any](rules []rule[T], s string) (T, bool) {
	for _, r := range rules {
		if r.match(s) {
			return r.result, true
		}
	}
	var zero T
	return zero, false
}

func has(subs ...string) func(string) bool {
	return func(s string) bool {
		for _, sub := range subs {
			if strings.Contains(s, sub) {
				return true
			}
		}
		return false
	}
}

func is(values ...string) func(string) bool {
	return func(s string) bool {
		for _, v := range values {
			if s == v {
				return true
			}
		}
		return false
	}
}

func both(a, b func(string) bool) func(string) bool {
	return func(s string) bool { return a(s) && b(s) }
}

var (
	// "o1.5", "o 2.5", "over"
	overRe  = regexp.MustCompile(`\bo\s*\d|\bover\b`)
	underRe = regexp.MustCompile(`\bu\s*\d|\bunder\b`)

	over  = overRe.MatchString
	under = underRe.MatchString
	sot   = has("sot", "shots on target")

	betTypeRules = []rule[catalog.BetType]{
		{has("acca", "accumulator", " x ", " + "), catalog.Accumulator},
		{is("bb"), catalog.BetBuilder},
		{has("bet builder", "builder"), catalog.BetBuilder},
		{is("superboost"), catalog.Superboost},
	}

	marketRules = []rule[catalog.PlayerPropMarket]{
		{has("sot over"), catalog.SOTOver},
		{has("sot under"), catalog.SOTUnder},
		{both(sot, over), catalog.SOTOver},
		{both(sot, under), catalog.SOTUnder},
		{sot, catalog.SOTOver},
		{has("shots over"), catalog.ShotsOver},
		{has("shots under"), catalog.ShotsUnder},
		{both(has("shots"), over), catalog.ShotsOver},
		{both(has("shots"), under), catalog.ShotsUnder},
		{has("shots"), catalog.ShotsOver},
		{has("fouls committed"), catalog.FoulsCommittedOver},
		{has("fouls won"), catalog.FoulsWonOver},
		{has("fouls", "foul"), catalog.FoulsCommittedOver},
		{has("tackles"), catalog.TacklesOver},
		{has("carded"), catalog.ToBeCarded},
		{has("anytime goalscorer", "anytime scorer"), catalog.AGS},
		{agsToken, catalog.AGS},
	}

	agsRe    = regexp.MustCompile(`\bags\b`)
	agsToken = agsRe.MatchString
)

// InferBetType classifica uma aposta recém-criada a partir da seleção em texto livre.
// Sem nenhum indício o padrão é Player Prop.
func InferBetType(selection string) catalog.BetType {
	s := strings.ToLower(strings.TrimSpace(selection))
	if t, ok := firstMatch(betTypeRules, s); ok {
		return t
	}
	return catalog.PlayerProp
}

// InferPlayerPropMarket procura o mercado estatístico no texto da seleção
func InferPlayerPropMarket(selection string) (catalog.PlayerPropMarket, bool) {
	return firstMatch(marketRules, strings.ToLower(strings.TrimSpace(selection)))
}

// InferMarketWithSide resolve o mercado quando o lado (O/U) já foi extraído do texto
func InferMarketWithSide(text string, underSide bool) (catalog.PlayerPropMarket, bool) {
	s := strings.ToLower(text)
	switch {
	case strings.Contains(s, "fouls won"):
		return catalog.FoulsWonOver, true
	case strings.Contains(s, "foul"):
		return catalog.FoulsCommittedOver, true
	case strings.Contains(s, "sot") || strings.Contains(s, "shots on target"):
		if underSide {
			return catalog.SOTUnder, true
		}
		return catalog.SOTOver, true
	case strings.Contains(s, "shot"):
		if underSide {
			return catalog.ShotsUnder, true
		}
		return catalog.ShotsOver, true
	case strings.Contains(s, "tackle"):
		return catalog.TacklesOver, true
	case strings.Contains(s, "card"):
		return catalog.ToBeCarded, true
	case agsToken(s) || strings.Contains(s, "anytime goalscorer") || strings.Contains(s, "anytime scorer"):
		return catalog.AGS, true
	}
	return "", false
}
