package repair

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/radieske/bet-ledger/internal/ledger/catalog"
)

// sinônimos aceitos para bet types gravados à mão ou por importações antigas
var betTypeSynonyms = map[string]catalog.BetType{
	"accumulator":      catalog.Accumulator,
	"acca":             catalog.Accumulator,
	"bet builder":      catalog.BetBuilder,
	"bb":               catalog.BetBuilder,
	"builder":          catalog.BetBuilder,
	"player prop":      catalog.PlayerProp,
	"playerprop":       catalog.PlayerProp,
	"superboost":       catalog.Superboost,
	"super boost":      catalog.Superboost,
	"sb":               catalog.Superboost,
	"ft result":        catalog.FTResult,
	"full time result": catalog.FTResult,
	"full-time result": catalog.FTResult,
	"match result":     catalog.FTResult,
	"1x2":              catalog.FTResult,
	"other":            catalog.Other,
}

var (
	ftPrefixRe     = regexp.MustCompile(`(?i)^ft\s*result\b\s*[:\-]?\s*`)
	resultPrefixRe = regexp.MustCompile(`(?i)^result\s*[:\-]\s*`)
	toWinSuffixRe  = regexp.MustCompile(`(?i)^(.*?)\s+to\s+win$`)
	winSuffixRe    = regexp.MustCompile(`(?i)^(.*?)\s+(?:win|won)$`)
	winWordRe      = regexp.MustCompile(`\b(?:win|won)\b`)
)

// CanonicalizeBetType resolve apenas correspondências exatas (sem caixa) da tabela de sinônimos
func CanonicalizeBetType(raw string) (catalog.BetType, bool) {
	t, ok := betTypeSynonyms[strings.ToLower(strings.TrimSpace(raw))]
	return t, ok
}

// InferBetTypeFromSelection é a inferência usada pelo reparo, mais ampla que a da criação:
// reconhece resultado de partida ("X to win", "X win").
func InferBetTypeFromSelection(selection string) (catalog.BetType, bool) {
	s := strings.ToLower(strings.TrimSpace(selection))
	switch {
	case s == "accumulator" || strings.Contains(s, " acca"):
		return catalog.Accumulator, true
	case s == "bb" || s == "bet builder":
		return catalog.BetBuilder, true
	case strings.Contains(s, "superboost") || strings.Contains(s, "super boost"):
		return catalog.Superboost, true
	case strings.HasSuffix(s, " to win") || winWordRe.MatchString(s):
		return catalog.FTResult, true
	}
	return "", false
}

// NormalizeFTResultSelection produz "<Time> to Win" sem prefixos nem sufixos duplicados.
// Seleção vazia volta vazia.
func NormalizeFTResultSelection(selection string) string {
	s := strings.TrimSpace(selection)
	for {
		stripped := strings.TrimSpace(resultPrefixRe.ReplaceAllString(ftPrefixRe.ReplaceAllString(s, ""), ""))
		if stripped == s {
			break
		}
		s = stripped
	}
	if s == "" {
		return ""
	}

	if m := toWinSuffixRe.FindStringSubmatch(s); m != nil {
		return titleCase(m[1]) + " to Win"
	}
	if m := winSuffixRe.FindStringSubmatch(s); m != nil {
		return titleCase(m[1]) + " to Win"
	}
	return titleCase(s) + " to Win"
}

// titleCase normaliza espaços e capitaliza cada palavra.
// O Caser não é seguro para uso concorrente, então é criado por chamada.
func titleCase(s string) string {
	return cases.Title(language.Und).String(strings.Join(strings.Fields(s), " "))
}
