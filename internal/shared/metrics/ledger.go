package metrics

import "github.com/prometheus/client_golang/prometheus"

// Ledger agrupa os contadores dos serviços do ledger
type Ledger struct {
	BetsWritten    *prometheus.CounterVec // por operação: create|update|delete
	FieldsRejected *prometheus.CounterVec // por campo recusado
	ImportRows     *prometheus.CounterVec // por resultado da linha
	RepairChanges  *prometheus.CounterVec // por regra aplicada
	SummaryCache   *prometheus.CounterVec // hit|miss

	EventsConsumed prometheus.Counter
	EventsHandled  prometheus.Counter
	EventErrors    *prometheus.CounterVec // por estágio
}

// NewLedger cria e registra os contadores no registerer informado
func NewLedger(reg prometheus.Registerer) *Ledger {
	m := &Ledger{
		BetsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_bets_written_total", Help: "escritas de apostas por operação",
		}, []string{"op"}),
		FieldsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_fields_rejected_total", Help: "campos obrigatórios recusados na normalização",
		}, []string{"field"}),
		ImportRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_import_rows_total", Help: "linhas de importação por resultado",
		}, []string{"outcome"}),
		RepairChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_repair_changes_total", Help: "registros alterados por regra de reparo",
		}, []string{"rule"}),
		SummaryCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_summary_cache_total", Help: "consultas ao cache de resumo",
		}, []string{"result"}),
		EventsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_events_consumed_total", Help: "eventos de aposta consumidos",
		}),
		EventsHandled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_events_handled_total", Help: "eventos processados com sucesso",
		}),
		EventErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_events_errors_total", Help: "erros por estágio",
		}, []string{"stage"}),
	}
	reg.MustRegister(
		m.BetsWritten, m.FieldsRejected, m.ImportRows, m.RepairChanges,
		m.SummaryCache, m.EventsConsumed, m.EventsHandled, m.EventErrors,
	)
	return m
}
