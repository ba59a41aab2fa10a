package topics

const (
	// Bets
	BetEvents    = "bet_events"
	BetEventsDLQ = "bet_events_dlq"
)

// Canal Redis Pub/Sub usado para empurrar eventos aos WebSockets
const ChannelBetUpdates = "bet_updates_broadcast"
