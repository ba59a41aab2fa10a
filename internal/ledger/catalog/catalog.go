package catalog

import "strings"

// Bookmaker é a casa de apostas onde a aposta foi feita (conjunto fechado)
type Bookmaker string

const (
	Bet365      Bookmaker = "Bet365"
	Betfair     Bookmaker = "Betfair"
	BetUK       Bookmaker = "BetUK"
	Ladbrokes   Bookmaker = "Ladbrokes"
	PaddyPower  Bookmaker = "PaddyPower"
	SkyBet      Bookmaker = "SkyBet"
	WilliamHill Bookmaker = "WilliamHill"
)

var Bookmakers = []Bookmaker{Bet365, Betfair, BetUK, Ladbrokes, PaddyPower, SkyBet, WilliamHill}

func (b Bookmaker) Valid() bool { return contains(Bookmakers, b) }

// StakeType indica se o stake saiu do bolso do usuário (NORMAL) ou de um crédito (FREE)
type StakeType string

const (
	StakeNormal StakeType = "NORMAL"
	StakeFree   StakeType = "FREE"
)

var StakeTypes = []StakeType{StakeNormal, StakeFree}

func (s StakeType) Valid() bool { return contains(StakeTypes, s) }

// Result é o estado de liquidação da aposta. VOID também cobre cash out.
type Result string

const (
	ResultOpen Result = "OPEN"
	ResultWon  Result = "WON"
	ResultLost Result = "LOST"
	ResultVoid Result = "VOID"
)

var Results = []Result{ResultOpen, ResultWon, ResultLost, ResultVoid}

func (r Result) Valid() bool { return contains(Results, r) }

// BetType é a categoria estrutural da aposta
type BetType string

const (
	Accumulator BetType = "Accumulator"
	BetBuilder  BetType = "Bet Builder"
	Superboost  BetType = "Superboost"
	PlayerProp  BetType = "Player Prop"
	FTResult    BetType = "FT Result"
	Other       BetType = "Other"
)

var BetTypes = []BetType{Accumulator, BetBuilder, Superboost, PlayerProp, FTResult, Other}

func (t BetType) Valid() bool { return contains(BetTypes, t) }

// NamedBetType reporta os tipos cuja seleção é o próprio nome do tipo
func (t BetType) NamedBetType() bool {
	return t == Accumulator || t == BetBuilder || t == Superboost
}

// ParseBetType aceita apenas o nome canônico, ignorando caixa e espaços nas pontas
func ParseBetType(raw string) (BetType, bool) {
	return lookup(BetTypes, raw)
}

// PlayerPropMarket é o mercado estatístico de um Player Prop
type PlayerPropMarket string

const (
	ShotsOver          PlayerPropMarket = "Shots Over"
	ShotsUnder         PlayerPropMarket = "Shots Under"
	SOTOver            PlayerPropMarket = "SOT Over"
	SOTUnder           PlayerPropMarket = "SOT Under"
	FoulsCommittedOver PlayerPropMarket = "Fouls Committed Over"
	FoulsWonOver       PlayerPropMarket = "Fouls Won Over"
	TacklesOver        PlayerPropMarket = "Tackles Over"
	ToBeCarded         PlayerPropMarket = "To Be Carded"
	AGS                PlayerPropMarket = "AGS"
)

var PlayerPropMarkets = []PlayerPropMarket{
	ShotsOver, ShotsUnder, SOTOver, SOTUnder,
	FoulsCommittedOver, FoulsWonOver, TacklesOver, ToBeCarded, AGS,
}

func (m PlayerPropMarket) Valid() bool { return contains(PlayerPropMarkets, m) }

// ParsePlayerPropMarket aceita apenas o nome canônico, ignorando caixa e espaços nas pontas
func ParsePlayerPropMarket(raw string) (PlayerPropMarket, bool) {
	return lookup(PlayerPropMarkets, raw)
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func lookup[T ~string](set []T, raw string) (T, bool) {
	raw = strings.TrimSpace(raw)
	for _, s := range set {
		if strings.EqualFold(string(s), raw) {
			return s, true
		}
	}
	var zero T
	return zero, false
}
