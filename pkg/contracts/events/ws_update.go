package events

// WSUpdate é o envelope publicado no Redis Pub/Sub e repassado ao WebSocket do usuário
type WSUpdate struct {
	UserID  string   `json:"userId"`
	Payload BetEvent `json:"payload"`
}
