package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/radieske/bet-ledger/internal/bet-service/dto"
	"github.com/radieske/bet-ledger/internal/bet-service/producer"
	"github.com/radieske/bet-ledger/internal/bet-service/repo"
	"github.com/radieske/bet-ledger/internal/ledger/bet"
	"github.com/radieske/bet-ledger/internal/ledger/catalog"
	"github.com/radieske/bet-ledger/internal/ledger/odds"
	"github.com/radieske/bet-ledger/internal/ledger/profit"
	"github.com/radieske/bet-ledger/internal/ledger/userconfig"
	"github.com/radieske/bet-ledger/pkg/contracts/events"
)

const maxBodyBytes = 1 << 20

// listBets lista as apostas do usuário com filtros e paginação
func (a *API) listBets(w http.ResponseWriter, r *http.Request) {
	q, errs := dto.ParseListQuery(r.URL.Query())
	if len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	page, err := a.Store.List(r.Context(), q.Filter(userFrom(r)))
	if err != nil {
		a.Log.Error("list bets failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not list bets")
		return
	}
	writeJSON(w, http.StatusOK, dto.NewListResponse(page.Items, q, page.Total))
}

// createBet normaliza o payload e grava a aposta
func (a *API) createBet(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBetRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	b, err := bet.New(req.Input())
	if err != nil {
		a.rejected(w, err)
		return
	}
	b.UserID = userFrom(r)

	if _, err := a.Store.Create(r.Context(), &b); err != nil {
		a.Log.Error("create bet failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not save bet")
		return
	}
	a.written(r, b, events.BetRecorded, "create")
	writeJSON(w, http.StatusCreated, dto.NewBetResponse(b))
}

// getBet retorna uma aposta do usuário
func (a *API) getBet(w http.ResponseWriter, r *http.Request) {
	b, ok := a.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dto.NewBetResponse(*b))
}

// updateBet mescla a edição; potentialReturn e profit são sempre recalculados
func (a *API) updateBet(w http.ResponseWriter, r *http.Request) {
	current, ok := a.load(w, r)
	if !ok {
		return
	}

	var req dto.UpdateBetRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	next, err := current.Apply(req.Patch())
	if err != nil {
		a.rejected(w, err)
		return
	}

	if err := a.Store.Update(r.Context(), &next); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			writeError(w, http.StatusNotFound, "bet not found")
			return
		}
		a.Log.Error("update bet failed", zap.String("bet_id", next.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not save bet")
		return
	}
	a.written(r, next, events.BetUpdated, "update")
	writeJSON(w, http.StatusOK, dto.NewBetResponse(next))
}

// deleteBet remove a aposta definitivamente
func (a *API) deleteBet(w http.ResponseWriter, r *http.Request) {
	current, ok := a.load(w, r)
	if !ok {
		return
	}
	if err := a.Store.Delete(r.Context(), current.UserID, current.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			writeError(w, http.StatusNotFound, "bet not found")
			return
		}
		a.Log.Error("delete bet failed", zap.String("bet_id", current.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not delete bet")
		return
	}
	a.written(r, *current, events.BetDeleted, "delete")
	w.WriteHeader(http.StatusNoContent)
}

// summary retorna o P&L agregado, preferencialmente do cache
func (a *API) summary(w http.ResponseWriter, r *http.Request) {
	userID := userFrom(r)

	if s, ok, err := a.Summaries.Get(r.Context(), userID); err == nil && ok {
		a.Metrics.SummaryCache.WithLabelValues("hit").Inc()
		writeJSON(w, http.StatusOK, s)
		return
	} else if err != nil {
		a.Log.Warn("summary cache read failed", zap.Error(err))
	}
	a.Metrics.SummaryCache.WithLabelValues("miss").Inc()

	entries, err := a.Store.Entries(r.Context(), userID)
	if err != nil {
		a.Log.Error("load summary entries failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not compute summary")
		return
	}
	s := dto.NewSummaryResponse(profit.Summarize(entries))
	if err := a.Summaries.Set(r.Context(), userID, s); err != nil {
		a.Log.Warn("summary cache write failed", zap.Error(err))
	}
	writeJSON(w, http.StatusOK, s)
}

func (a *API) bookmakers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.Bookmakers)
}

func (a *API) betTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.BetTypes)
}

func (a *API) playerPropMarkets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.PlayerPropMarkets)
}

// convertOdds converte uma odd informada pelo usuário para as duas notações
func (a *API) convertOdds(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	format := odds.Decimal
	if raw := q.Get("format"); raw != "" {
		f, ok := odds.ParseFormat(raw)
		if !ok {
			writeValidation(w, []dto.FieldError{{Field: "format", Message: "must be decimal or fractional"}})
			return
		}
		format = f
	}

	value, ok := odds.ParseUserOdds(q.Get("value"), format)
	if !ok {
		writeValidation(w, []dto.FieldError{{Field: "value", Message: "invalid " + string(format) + " odds"}})
		return
	}
	value, _ = odds.NormalizePrecision(value)

	writeJSON(w, http.StatusOK, dto.OddsConvertResponse{
		Decimal:    value,
		Fractional: odds.ToFractional(value),
		Display:    odds.FormatForDisplay(value, format),
	})
}

// getUserConfig devolve casas habilitadas e padrões do formulário de aposta
func (a *API) getUserConfig(w http.ResponseWriter, r *http.Request) {
	stored, err := a.Store.UserConfig(r.Context(), userFrom(r))
	if err != nil {
		a.Log.Error("load user config failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load user config")
		return
	}
	writeJSON(w, http.StatusOK, dto.NewUserConfigResponse(userconfig.Resolve(stored)))
}

// putUserConfig valida a edição contra o estado gravado e devolve a configuração efetiva
func (a *API) putUserConfig(w http.ResponseWriter, r *http.Request) {
	var req dto.UserConfigRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	userID := userFrom(r)
	current, err := a.Store.UserConfig(r.Context(), userID)
	if err != nil {
		a.Log.Error("load user config failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load user config")
		return
	}

	next, err := req.Update().Apply(current)
	if err != nil {
		a.rejected(w, err)
		return
	}
	if err := a.Store.SaveUserConfig(r.Context(), userID, next); err != nil {
		a.Log.Error("save user config failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not save user config")
		return
	}
	writeJSON(w, http.StatusOK, dto.NewUserConfigResponse(userconfig.Resolve(next)))
}

// load busca a aposta do path; responde 404 quando não existe ou pertence a outro usuário
func (a *API) load(w http.ResponseWriter, r *http.Request) (*bet.Bet, bool) {
	b, err := a.Store.Get(r.Context(), userFrom(r), chi.URLParam(r, "id"))
	if errors.Is(err, repo.ErrNotFound) {
		writeError(w, http.StatusNotFound, "bet not found")
		return nil, false
	}
	if err != nil {
		a.Log.Error("get bet failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load bet")
		return nil, false
	}
	return b, true
}

// rejected responde 422 com os campos recusados
func (a *API) rejected(w http.ResponseWriter, err error) {
	var verr *bet.ValidationError
	if errors.As(err, &verr) {
		for _, f := range verr.Fields {
			a.Metrics.FieldsRejected.WithLabelValues(f.Field).Inc()
		}
		writeValidation(w, dto.FromValidation(verr))
		return
	}
	writeValidation(w, []dto.FieldError{{Field: "bet", Message: err.Error()}})
}

// written invalida o resumo e publica o evento; falhas aqui não desfazem a escrita
func (a *API) written(r *http.Request, b bet.Bet, eventType, op string) {
	a.Metrics.BetsWritten.WithLabelValues(op).Inc()

	if err := a.Summaries.Invalidate(r.Context(), b.UserID); err != nil {
		a.Log.Warn("summary cache invalidate failed", zap.String("user_id", b.UserID), zap.Error(err))
	}
	if a.Publisher == nil {
		return
	}
	if err := a.Publisher.PublishBetEvent(r.Context(), producer.NewBetEvent(b, eventType, events.SourceAPI)); err != nil {
		a.Log.Warn("publish bet event failed", zap.String("bet_id", b.ID), zap.Error(err))
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
}
