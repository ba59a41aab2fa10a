package repairjob

import (
	"context"
	"fmt"
	"io"
	"sort"

	"go.uber.org/zap"

	"github.com/radieske/bet-ledger/internal/ledger/repair"
	"github.com/radieske/bet-ledger/pkg/contracts/events"
)

// Store lê e grava a classificação das apostas de um usuário
type Store interface {
	RepairRecords(ctx context.Context, userID string) ([]repair.Record, error)
	ApplyRepair(ctx context.Context, userID string, r repair.Record) error
}

type Publisher interface {
	PublishBetEvent(ctx context.Context, e events.BetEvent) error
}

// Job roda as regras de reparo sobre todas as apostas de um usuário.
// Sem Apply é só simulação: nada é gravado nem publicado.
type Job struct {
	Store     Store
	Publisher Publisher // opcional
	Log       *zap.Logger
	Rules     []repair.Rule
	Apply     bool

	OnChange func(rule string) // métricas
}

// Run processa os registros em ordem; uma falha de gravação é contada e o lote segue
func (j *Job) Run(ctx context.Context, userID string) (repair.Tally, error) {
	var tally repair.Tally

	records, err := j.Store.RepairRecords(ctx, userID)
	if err != nil {
		return tally, fmt.Errorf("load records: %w", err)
	}

	rules := j.Rules
	if len(rules) == 0 {
		rules = repair.Default
	}

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return tally, err
		}

		next, fired := repair.Run(rec, rules...)
		change := repair.Diff(rec, next)
		if !change.Any() {
			tally.Add(change, nil)
			continue
		}

		if j.Apply {
			if err := j.Store.ApplyRepair(ctx, userID, next); err != nil {
				j.Log.Warn("apply repair failed", zap.String("bet_id", rec.ID), zap.Error(err))
				tally.Scanned++
				tally.Failed++
				continue
			}
			j.publish(ctx, userID, next)
		}

		j.Log.Debug("bet repaired",
			zap.String("bet_id", rec.ID),
			zap.String("bet_type", next.BetType),
			zap.String("selection", next.Selection),
			zap.Strings("rules", fired),
		)
		tally.Add(change, fired)
		if j.OnChange != nil {
			for _, name := range fired {
				j.OnChange(name)
			}
		}
	}
	return tally, nil
}

func (j *Job) publish(ctx context.Context, userID string, r repair.Record) {
	if j.Publisher == nil {
		return
	}
	e := events.BetEvent{
		Type:    events.BetRepaired,
		BetID:   r.ID,
		UserID:  userID,
		Source:  events.SourceRepair,
		BetType: r.BetType,
	}
	if err := j.Publisher.PublishBetEvent(ctx, e); err != nil {
		j.Log.Warn("publish bet event failed", zap.String("bet_id", r.ID), zap.Error(err))
	}
}

// PrintTally escreve o relatório da execução
func PrintTally(w io.Writer, t repair.Tally, applied bool) {
	mode := "dry run"
	if applied {
		mode = "applied"
	}
	fmt.Fprintf(w, "repair %s: %d scanned, %d changed, %d failed\n", mode, t.Scanned, t.Changed, t.Failed)
	fmt.Fprintf(w, "  bet types changed:   %d\n", t.BetTypes)
	fmt.Fprintf(w, "  selections changed:  %d\n", t.Selections)
	fmt.Fprintf(w, "  markets set:         %d\n", t.MarketsSet)
	fmt.Fprintf(w, "  markets cleared:     %d\n", t.MarketsCleared)
	fmt.Fprintf(w, "  markets corrected:   %d\n", t.MarketsFixed)

	names := make([]string, 0, len(t.Rules))
	for name := range t.Rules {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  rule %s: %d\n", name, t.Rules[name])
	}
	if !applied && t.Changed > 0 {
		fmt.Fprintln(w, "run with -apply to persist")
	}
}
