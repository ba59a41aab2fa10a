package dto

import (
	"strings"

	"github.com/radieske/bet-ledger/internal/ledger/userconfig"
)

// UserConfigRequest é a edição da configuração. Campo ausente, null ou texto vazio mantém o atual;
// enabledBookmakers: [] é recusado.
type UserConfigRequest struct {
	EnabledBookmakers []string `json:"enabledBookmakers"`
	DefaultBookmaker  *Loose   `json:"defaultBookmaker"`
	DefaultBetType    *Loose   `json:"defaultBetType"`
	DefaultStake      *Loose   `json:"defaultStake"`
}

func (r UserConfigRequest) Update() userconfig.Update {
	return userconfig.Update{
		EnabledBookmakers: r.EnabledBookmakers,
		DefaultBookmaker:  nonBlank(r.DefaultBookmaker),
		DefaultBetType:    nonBlank(r.DefaultBetType),
		DefaultStake:      nonBlank(r.DefaultStake),
	}
}

func nonBlank(l *Loose) *string {
	if l == nil || strings.TrimSpace(string(*l)) == "" {
		return nil
	}
	return ptr(l)
}

type BookmakerOption struct {
	Bookmaker string `json:"bookmaker"`
	Enabled   bool   `json:"enabled"`
}

type UserDefaults struct {
	Bookmaker *string `json:"bookmaker"`
	BetType   string  `json:"betType"`
	Stake     float64 `json:"stake"`
}

type UserConfigResponse struct {
	Bookmakers        []BookmakerOption `json:"bookmakers"`
	EnabledBookmakers []string          `json:"enabledBookmakers"`
	Defaults          UserDefaults      `json:"defaults"`
}

func NewUserConfigResponse(c userconfig.Config) UserConfigResponse {
	r := UserConfigResponse{
		Bookmakers:        make([]BookmakerOption, 0, len(c.Bookmakers)),
		EnabledBookmakers: make([]string, 0, len(c.Enabled)),
		Defaults:          UserDefaults{BetType: string(c.Defaults.BetType), Stake: c.Defaults.Stake},
	}
	for _, o := range c.Bookmakers {
		r.Bookmakers = append(r.Bookmakers, BookmakerOption{Bookmaker: string(o.Bookmaker), Enabled: o.Enabled})
	}
	for _, b := range c.Enabled {
		r.EnabledBookmakers = append(r.EnabledBookmakers, string(b))
	}
	if c.Defaults.Bookmaker != nil {
		b := string(*c.Defaults.Bookmaker)
		r.Defaults.Bookmaker = &b
	}
	return r
}
