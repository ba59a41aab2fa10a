package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthz(t *testing.T) {
	reg := prometheus.NewRegistry()

	ok := Handler(reg, func(context.Context) error { return nil })
	rec := httptest.NewRecorder()
	ok.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	down := Handler(reg, func(context.Context) error { return errors.New("pg down") })
	rec = httptest.NewRecorder()
	down.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "pg down")
}

func TestLedgerCountersExposed(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewLedger(reg)
	m.BetsWritten.WithLabelValues("create").Inc()
	m.ImportRows.WithLabelValues("rejected").Add(2)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.BetsWritten.WithLabelValues("create")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ImportRows.WithLabelValues("rejected")))

	rec := httptest.NewRecorder()
	Handler(reg, func(context.Context) error { return nil }).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ledger_bets_written_total")
}
