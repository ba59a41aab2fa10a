package events

// Tipos de evento publicados no tópico "bet_events"
const (
	BetRecorded = "bet_recorded"
	BetUpdated  = "bet_updated"
	BetDeleted  = "bet_deleted"
	BetRepaired = "bet_repaired"
)

// Origem da escrita
const (
	SourceAPI    = "api"
	SourceImport = "import"
	SourceRepair = "repair"
)

// BetEvent é emitido a cada escrita no ledger. A chave da mensagem é o userId,
// então os eventos de um usuário ficam ordenados na mesma partição.
type BetEvent struct {
	Type     string   `json:"type"`
	BetID    string   `json:"bet_id"`
	UserID   string   `json:"user_id"`
	Source   string   `json:"source"`
	BetType  string   `json:"bet_type,omitempty"`
	Result   string   `json:"result,omitempty"`
	Stake    float64  `json:"stake,omitempty"`
	Profit   *float64 `json:"profit"` // null enquanto não determinável
	TsUnixMs int64    `json:"ts_unix_ms"`
}
