package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// NewRouter monta o gateway: /api/* vai para /v1/* do bet-service e /ws é repassado como está
func NewRouter(log *zap.Logger, betServiceURL string, origins []string) (http.Handler, error) {
	target, err := url.Parse(strings.TrimRight(betServiceURL, "/"))
	if err != nil || target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("invalid bet service url %q", betServiceURL)
	}

	// caminho absoluto: JoinPath sobre URL sem path devolveria "v1"
	apiTarget := *target
	apiTarget.Path = strings.TrimRight(target.Path, "/") + "/v1"
	apiTarget.RawPath = ""

	api := proxy(log, &apiTarget)
	ws := proxy(log, target)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-User-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.With(middleware.Timeout(30*time.Second)).Handle("/api/*", http.StripPrefix("/api", api))
	r.Handle("/ws", ws)
	return r, nil
}

func proxy(log *zap.Logger, to *url.URL) *httputil.ReverseProxy {
	rp := httputil.NewSingleHostReverseProxy(to)
	rp.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.Warn("upstream failed", zap.String("path", r.URL.Path), zap.Error(err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "bet service unavailable"})
	}
	return rp
}
