package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/radieske/bet-ledger/internal/bet-service/producer"
	"github.com/radieske/bet-ledger/internal/ledger/bet"
	"github.com/radieske/bet-ledger/internal/ledger/catalog"
	"github.com/radieske/bet-ledger/pkg/contracts/events"
)

// Resultado de cada linha, usado como label de métrica
const (
	OutcomeImported = "imported"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// coluna da planilha correspondente a cada campo obrigatório
var fieldColumns = map[string]string{
	bet.FieldPlacedAt:  ColDate,
	bet.FieldBookmaker: ColBookie,
	bet.FieldFixture:   ColFixture,
	bet.FieldSelection: ColBet,
	bet.FieldStake:     ColStake,
	bet.FieldOdds:      ColOdds,
}

// Store grava apostas já normalizadas
type Store interface {
	Create(ctx context.Context, b *bet.Bet) (string, error)
}

// Publisher é opcional; sem ele nenhum evento é emitido
type Publisher interface {
	PublishBetEvent(ctx context.Context, e events.BetEvent) error
}

// RowError é a falha de uma linha específica
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	var verr *bet.ValidationError
	if errors.As(e.Err, &verr) {
		parts := make([]string, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			col := fieldColumns[f.Field]
			if col == "" {
				col = f.Field
			}
			if f.Value == "" {
				parts = append(parts, fmt.Sprintf("empty %s", col))
				continue
			}
			parts = append(parts, fmt.Sprintf("invalid %s '%s'", col, f.Value))
		}
		return fmt.Sprintf("Row %d: %s", e.Row, strings.Join(parts, "; "))
	}
	return fmt.Sprintf("Row %d: %v", e.Row, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// Report resume uma execução
type Report struct {
	DryRun        bool
	Processed     int
	Imported      int
	Errors        []RowError
	Uncategorized []string // seleções de player prop sem mercado inferido, sem repetição
	Defaulted     map[string]int
}

func (r Report) Failed() int { return len(r.Errors) }

// Importer transforma linhas de planilha em apostas
type Importer struct {
	store  Store
	pub    Publisher
	log    *zap.Logger
	dryRun bool

	OnRow func(outcome string) // métricas
}

type Option func(*Importer)

func WithDryRun(dry bool) Option { return func(i *Importer) { i.dryRun = dry } }
func WithPublisher(p Publisher) Option { return func(i *Importer) { i.pub = p } }

func New(store Store, log *zap.Logger, opts ...Option) *Importer {
	i := &Importer{store: store, log: log}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Run processa as linhas em ordem. Linha recusada não interrompe o lote e nunca é gravada.
// Em dry run nada é gravado, mas as contagens são as mesmas de uma execução real.
func (im *Importer) Run(ctx context.Context, userID string, rows []Row) (Report, error) {
	rep := Report{DryRun: im.dryRun, Defaulted: map[string]int{}}
	seen := map[string]bool{}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		rep.Processed++

		b, def, err := bet.Build(toInput(row))
		if err != nil {
			rep.Errors = append(rep.Errors, RowError{Row: row.Number, Err: err})
			im.observe(OutcomeRejected)
			continue
		}
		b.UserID = userID

		if def.Result {
			rep.Defaulted["result"]++
		}
		if def.StakeType {
			rep.Defaulted["stakeType"]++
		}
		if def.BetType {
			rep.Defaulted["betType"]++
		}
		if b.BetType == catalog.PlayerProp && b.PlayerPropMarket == nil && !seen[b.Selection] {
			seen[b.Selection] = true
			rep.Uncategorized = append(rep.Uncategorized, b.Selection)
		}

		if im.dryRun {
			rep.Imported++
			im.observe(OutcomeImported)
			continue
		}

		id, err := im.store.Create(ctx, &b)
		if err != nil {
			im.log.Warn("import row failed", zap.Int("row", row.Number), zap.Error(err))
			rep.Errors = append(rep.Errors, RowError{Row: row.Number, Err: err})
			im.observe(OutcomeFailed)
			continue
		}
		b.ID = id
		rep.Imported++
		im.observe(OutcomeImported)

		if im.pub != nil {
			if err := im.pub.PublishBetEvent(ctx, producer.NewBetEvent(b, events.BetRecorded, events.SourceImport)); err != nil {
				im.log.Warn("publish bet event failed", zap.String("bet_id", id), zap.Error(err))
			}
		}
	}

	return rep, nil
}

func (im *Importer) observe(outcome string) {
	if im.OnRow != nil {
		im.OnRow(outcome)
	}
}

// toInput mapeia as colunas da planilha. Cash out só é lido para resultados VOID,
// e isso é decidido pelo próprio normalizador.
func toInput(r Row) bet.Input {
	return bet.Input{
		PlacedAt:     r.Get(ColDate),
		Fixture:      r.Get(ColFixture),
		Bookmaker:    r.Get(ColBookie),
		Selection:    r.Get(ColBet),
		StakeType:    r.Get(ColBetType),
		Stake:        r.Get(ColStake),
		Odds:         r.Get(ColOdds),
		Result:       r.Get(ColResult),
		CashOutValue: r.Get(ColCashOutValue),
	}
}
