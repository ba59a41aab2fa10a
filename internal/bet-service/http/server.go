package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/radieske/bet-ledger/internal/bet-service/dto"
	"github.com/radieske/bet-ledger/internal/bet-service/repo"
	"github.com/radieske/bet-ledger/internal/ledger/bet"
	"github.com/radieske/bet-ledger/internal/ledger/profit"
	"github.com/radieske/bet-ledger/internal/ledger/userconfig"
	"github.com/radieske/bet-ledger/internal/shared/metrics"
	"github.com/radieske/bet-ledger/pkg/contracts/events"
)

// UserHeader identifica o dono das apostas; autenticação fica fora deste serviço
const UserHeader = "X-User-ID"

// Store é a persistência usada pela API (implementada por repo.Postgres)
type Store interface {
	Create(ctx context.Context, b *bet.Bet) (string, error)
	Get(ctx context.Context, userID, id string) (*bet.Bet, error)
	List(ctx context.Context, f repo.Filter) (repo.Page, error)
	Update(ctx context.Context, b *bet.Bet) error
	Delete(ctx context.Context, userID, id string) error
	Entries(ctx context.Context, userID string) ([]profit.Entry, error)

	UserConfig(ctx context.Context, userID string) (userconfig.Stored, error)
	SaveUserConfig(ctx context.Context, userID string, s userconfig.Stored) error
}

type Publisher interface {
	PublishBetEvent(ctx context.Context, e events.BetEvent) error
}

// SummaryCache guarda o resumo de P&L por usuário (Redis em produção)
type SummaryCache interface {
	Get(ctx context.Context, userID string) (dto.SummaryResponse, bool, error)
	Set(ctx context.Context, userID string, s dto.SummaryResponse) error
	Invalidate(ctx context.Context, userID string) error
}

// WSHandler atende o upgrade do WebSocket de um usuário
type WSHandler interface {
	Serve(w http.ResponseWriter, r *http.Request, userID string)
}

// API expõe os endpoints REST do ledger de apostas
type API struct {
	Log       *zap.Logger
	Store     Store
	Publisher Publisher
	Summaries SummaryCache
	Metrics   *metrics.Ledger
	WS        WSHandler // opcional
}

// Router retorna o roteador HTTP com os endpoints REST
func (a *API) Router() http.Handler {
	r := chi.NewRouter()

	r.Route("/v1", func(r chi.Router) {
		r.Use(requireUser)

		r.Get("/bets", a.listBets)
		r.Post("/bets", a.createBet)
		r.Get("/bets/summary", a.summary)
		r.Get("/bets/{id}", a.getBet)
		r.Put("/bets/{id}", a.updateBet)
		r.Patch("/bets/{id}", a.updateBet)
		r.Delete("/bets/{id}", a.deleteBet)

		r.Get("/bookmakers", a.bookmakers)
		r.Get("/bet-types", a.betTypes)
		r.Get("/player-prop-markets", a.playerPropMarkets)
		r.Get("/odds/convert", a.convertOdds)

		r.Get("/user/config", a.getUserConfig)
		r.Put("/user/config", a.putUserConfig)
	})

	if a.WS != nil {
		r.Get("/ws", a.serveWS)
	}
	return r
}

type ctxKey struct{}

// requireUser exige o cabeçalho X-User-ID e o coloca no contexto
func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(UserHeader))
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "missing "+UserHeader+" header")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, userID)))
	})
}

func userFrom(r *http.Request) string {
	s, _ := r.Context().Value(ctxKey{}).(string)
	return s
}

// serveWS aceita o usuário também pela query, já que o browser não envia cabeçalhos no upgrade
func (a *API) serveWS(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.Header.Get(UserHeader))
	if userID == "" {
		userID = strings.TrimSpace(r.URL.Query().Get("userId"))
	}
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing "+UserHeader+" header")
		return
	}
	a.WS.Serve(w, r, userID)
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, dto.ErrorResponse{Success: false, Message: msg})
}

func writeValidation(w http.ResponseWriter, errs []dto.FieldError) {
	writeJSON(w, http.StatusUnprocessableEntity, dto.ValidationFailed(errs))
}
