package userconfig

import (
	"strings"

	"github.com/radieske/bet-ledger/internal/ledger/bet"
	"github.com/radieske/bet-ledger/internal/ledger/catalog"
	"github.com/radieske/bet-ledger/internal/ledger/normalize"
)

const (
	DefaultStake   = 5.0
	DefaultBetType = catalog.PlayerProp
)

// Nomes de campo usados nos erros de validação
const (
	FieldEnabledBookmakers = "enabledBookmakers"
	FieldDefaultBookmaker  = "defaultBookmaker"
	FieldDefaultBetType    = "defaultBetType"
	FieldDefaultStake      = "defaultStake"
)

// Preference é a linha de preferências gravada; nil em Stored quando o usuário nunca salvou
type Preference struct {
	DefaultBookmaker *catalog.Bookmaker
	DefaultBetType   catalog.BetType
	DefaultStake     float64
}

// Stored é o que está persistido. Enabled vazio significa todas as casas habilitadas.
type Stored struct {
	Enabled    []catalog.Bookmaker
	Preference *Preference
}

type BookmakerOption struct {
	Bookmaker catalog.Bookmaker
	Enabled   bool
}

type Defaults struct {
	Bookmaker *catalog.Bookmaker
	BetType   catalog.BetType
	Stake     float64
}

// Config é a configuração efetiva exibida ao usuário
type Config struct {
	Bookmakers []BookmakerOption
	Enabled    []catalog.Bookmaker
	Defaults   Defaults
}

// Resolve aplica os padrões sobre o que está gravado.
// A casa padrão só vale se estiver habilitada; senão cai na primeira habilitada.
func Resolve(s Stored) Config {
	enabled := enabledOrAll(s.Enabled)

	cfg := Config{
		Enabled:  enabled,
		Defaults: Defaults{BetType: DefaultBetType, Stake: DefaultStake},
	}
	for _, b := range catalog.Bookmakers {
		cfg.Bookmakers = append(cfg.Bookmakers, BookmakerOption{Bookmaker: b, Enabled: has(enabled, b)})
	}

	if p := s.Preference; p != nil {
		if p.DefaultBookmaker != nil && has(enabled, *p.DefaultBookmaker) {
			b := *p.DefaultBookmaker
			cfg.Defaults.Bookmaker = &b
		}
		if p.DefaultBetType.Valid() {
			cfg.Defaults.BetType = p.DefaultBetType
		}
		if p.DefaultStake > 0 {
			cfg.Defaults.Stake = p.DefaultStake
		}
	}
	if cfg.Defaults.Bookmaker == nil && len(enabled) > 0 {
		b := enabled[0]
		cfg.Defaults.Bookmaker = &b
	}
	return cfg
}

// Update é a edição enviada pelo usuário; nil mantém o valor atual
type Update struct {
	EnabledBookmakers []string // nil mantém; vazio é recusado
	DefaultBookmaker  *string
	DefaultBetType    *string
	DefaultStake      *string
}

// Apply valida a edição contra o estado atual e devolve o novo estado completo.
// Todos os campos recusados voltam juntos em um *bet.ValidationError.
func (u Update) Apply(current Stored) (Stored, error) {
	var errs []bet.FieldError
	reject := func(field, value, reason string) {
		errs = append(errs, bet.FieldError{Field: field, Value: value, Reason: reason})
	}

	var enabled []catalog.Bookmaker
	if u.EnabledBookmakers != nil {
		seen := map[catalog.Bookmaker]bool{}
		for _, raw := range u.EnabledBookmakers {
			if strings.TrimSpace(raw) == "" {
				continue
			}
			f := normalize.Bookmaker(raw)
			if !f.OK() {
				reject(FieldEnabledBookmakers, raw, "unsupported bookmaker")
				continue
			}
			if !seen[f.Value] {
				seen[f.Value] = true
				enabled = append(enabled, f.Value)
			}
		}
		if len(enabled) == 0 && len(errs) == 0 {
			reject(FieldEnabledBookmakers, "", "at least one bookmaker must be enabled")
		}
	}

	var defBookmaker *catalog.Bookmaker
	if u.DefaultBookmaker != nil {
		f := normalize.Bookmaker(*u.DefaultBookmaker)
		if f.OK() {
			defBookmaker = &f.Value
		} else {
			reject(FieldDefaultBookmaker, *u.DefaultBookmaker, "unsupported bookmaker")
		}
	}

	var betType catalog.BetType
	if u.DefaultBetType != nil {
		t, ok := catalog.ParseBetType(*u.DefaultBetType)
		if ok {
			betType = t
		} else {
			reject(FieldDefaultBetType, *u.DefaultBetType, "unsupported bet type")
		}
	}

	var stake float64
	if u.DefaultStake != nil {
		v, ok := normalize.Number(*u.DefaultStake)
		if !ok || v <= 0 {
			reject(FieldDefaultStake, *u.DefaultStake, "must be a positive amount")
		} else {
			stake = v
		}
	}

	if len(errs) > 0 {
		return Stored{}, &bet.ValidationError{Fields: errs}
	}

	next := Stored{Enabled: current.Enabled}
	if enabled != nil {
		next.Enabled = enabled
	}
	nextEnabled := enabledOrAll(next.Enabled)

	if defBookmaker != nil && !has(nextEnabled, *defBookmaker) {
		return Stored{}, &bet.ValidationError{Fields: []bet.FieldError{{
			Field: FieldDefaultBookmaker, Value: string(*defBookmaker), Reason: "default bookmaker must be enabled",
		}}}
	}

	// parte da configuração efetiva atual, então campos não enviados são preservados
	eff := Resolve(Stored{Enabled: nextEnabled, Preference: current.Preference}).Defaults
	pref := &Preference{DefaultBookmaker: eff.Bookmaker, DefaultBetType: eff.BetType, DefaultStake: eff.Stake}
	if defBookmaker != nil {
		pref.DefaultBookmaker = defBookmaker
	}
	if betType != "" {
		pref.DefaultBetType = betType
	}
	if stake > 0 {
		pref.DefaultStake = stake
	}
	next.Preference = pref
	return next, nil
}

// enabledOrAll mantém a ordem do catálogo e ignora valores fora dele
func enabledOrAll(enabled []catalog.Bookmaker) []catalog.Bookmaker {
	var out []catalog.Bookmaker
	for _, b := range catalog.Bookmakers {
		if has(enabled, b) {
			out = append(out, b)
		}
	}
	if len(out) == 0 {
		return append([]catalog.Bookmaker(nil), catalog.Bookmakers...)
	}
	return out
}

func has(set []catalog.Bookmaker, b catalog.Bookmaker) bool {
	for _, s := range set {
		if s == b {
			return true
		}
	}
	return false
}
