package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/radieske/bet-ledger/internal/ledger/bet"
	"github.com/radieske/bet-ledger/internal/ledger/catalog"
	"github.com/radieske/bet-ledger/internal/ledger/profit"
	"github.com/radieske/bet-ledger/internal/ledger/repair"
)

var ErrNotFound = errors.New("bet not found")

const betColumns = `id, user_id, fixture, selection, bookmaker, stake_type, bet_type, player_prop_market,
	stake, odds, potential_return, result, cash_out_value, profit, placed_at, created_at, updated_at`

// Filter restringe a listagem de apostas de um usuário
type Filter struct {
	UserID    string
	Search    string // fixture ou seleção, sem diferenciar caixa
	Bookmaker catalog.Bookmaker
	Result    catalog.Result
	BetType   catalog.BetType
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// Page é uma página da listagem com o total sem paginação
type Page struct {
	Items []bet.Bet
	Total int
}

// Postgres implementa operações de persistência de apostas em banco Postgres
type Postgres struct{ db *sql.DB }

// NewPostgres retorna uma instância do repositório de apostas
func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

// Create grava uma aposta nova e devolve o id gerado
func (p *Postgres) Create(ctx context.Context, b *bet.Bet) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO bets (`+betColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$16)`,
		id, b.UserID, b.Fixture, b.Selection, string(b.Bookmaker), string(b.StakeType), string(b.BetType),
		marketArg(b.PlayerPropMarket), b.Stake, b.Odds, b.PotentialReturn, string(b.Result),
		b.CashOutValue, b.Profit, b.PlacedAt, now,
	)
	if err != nil {
		return "", fmt.Errorf("insert bet: %w", err)
	}
	b.ID = id
	b.CreatedAt = now
	b.UpdatedAt = now
	return id, nil
}

// Get busca uma aposta do usuário; aposta de outro usuário é tratada como inexistente
func (p *Postgres) Get(ctx context.Context, userID, id string) (*bet.Bet, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	row := p.db.QueryRowContext(ctx, `SELECT `+betColumns+` FROM bets WHERE id=$1 AND user_id=$2`, id, userID)
	b, err := scanBet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get bet: %w", err)
	}
	return b, nil
}

// List devolve as apostas mais recentes primeiro
func (p *Postgres) List(ctx context.Context, f Filter) (Page, error) {
	where, args := buildWhere(f)

	var total int
	if err := p.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bets`+where, args...).Scan(&total); err != nil {
		return Page{}, fmt.Errorf("count bets: %w", err)
	}

	query := `SELECT ` + betColumns + ` FROM bets` + where + ` ORDER BY placed_at DESC, created_at DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return Page{}, fmt.Errorf("query bets: %w", err)
	}
	defer rows.Close()

	page := Page{Total: total, Items: []bet.Bet{}}
	for rows.Next() {
		b, err := scanBet(rows)
		if err != nil {
			return Page{}, fmt.Errorf("scan bet: %w", err)
		}
		page.Items = append(page.Items, *b)
	}
	if err := rows.Err(); err != nil {
		return Page{}, fmt.Errorf("iterate bets: %w", err)
	}
	return page, nil
}

// Update regrava todos os campos editáveis e derivados
func (p *Postgres) Update(ctx context.Context, b *bet.Bet) error {
	now := time.Now().UTC()
	res, err := p.db.ExecContext(ctx, `
		UPDATE bets SET fixture=$3, selection=$4, bookmaker=$5, stake_type=$6, bet_type=$7,
			player_prop_market=$8, stake=$9, odds=$10, potential_return=$11, result=$12,
			cash_out_value=$13, profit=$14, placed_at=$15, updated_at=$16
		WHERE id=$1 AND user_id=$2`,
		b.ID, b.UserID, b.Fixture, b.Selection, string(b.Bookmaker), string(b.StakeType), string(b.BetType),
		marketArg(b.PlayerPropMarket), b.Stake, b.Odds, b.PotentialReturn, string(b.Result),
		b.CashOutValue, b.Profit, b.PlacedAt, now,
	)
	if err != nil {
		return fmt.Errorf("update bet: %w", err)
	}
	if err := expectOne(res); err != nil {
		return err
	}
	b.UpdatedAt = now
	return nil
}

// Delete remove a aposta definitivamente
func (p *Postgres) Delete(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	res, err := p.db.ExecContext(ctx, `DELETE FROM bets WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete bet: %w", err)
	}
	return expectOne(res)
}

// Entries devolve o recorte de todas as apostas do usuário para o resumo de P&L
func (p *Postgres) Entries(ctx context.Context, userID string) ([]profit.Entry, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT stake, stake_type, result, profit FROM bets WHERE user_id=$1`, userID)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var out []profit.Entry
	for rows.Next() {
		var (
			e         profit.Entry
			stakeType string
			result    string
			pnl       sql.NullFloat64
		)
		if err := rows.Scan(&e.Stake, &stakeType, &result, &pnl); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.StakeType = catalog.StakeType(stakeType)
		e.Result = catalog.Result(result)
		e.Profit = floatPtr(pnl)
		out = append(out, e)
	}
	return out, rows.Err()
}

// RepairRecords lê a classificação gravada, sem normalizar, para as regras de reparo
func (p *Postgres) RepairRecords(ctx context.Context, userID string) ([]repair.Record, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, bet_type, selection, player_prop_market FROM bets WHERE user_id=$1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("query repair records: %w", err)
	}
	defer rows.Close()

	var out []repair.Record
	for rows.Next() {
		var (
			r      repair.Record
			market sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.BetType, &r.Selection, &market); err != nil {
			return nil, fmt.Errorf("scan repair record: %w", err)
		}
		if market.Valid {
			m := market.String
			r.PlayerPropMarket = &m
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ApplyRepair grava apenas os campos de classificação de um registro reparado
func (p *Postgres) ApplyRepair(ctx context.Context, userID string, r repair.Record) error {
	res, err := p.db.ExecContext(ctx, `
		UPDATE bets SET bet_type=$3, selection=$4, player_prop_market=$5, updated_at=NOW()
		WHERE id=$1 AND user_id=$2`,
		r.ID, userID, r.BetType, r.Selection, r.PlayerPropMarket,
	)
	if err != nil {
		return fmt.Errorf("apply repair: %w", err)
	}
	return expectOne(res)
}

// buildWhere monta a cláusula WHERE com placeholders numerados
func buildWhere(f Filter) (string, []any) {
	conds := []string{"user_id = $1"}
	args := []any{f.UserID}

	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		add("(fixture ILIKE $%[1]d OR selection ILIKE $%[1]d)", "%"+escapeLike(s)+"%")
	}
	if f.Bookmaker != "" {
		add("bookmaker = $%d", string(f.Bookmaker))
	}
	if f.Result != "" {
		add("result = $%d", string(f.Result))
	}
	if f.BetType != "" {
		add("bet_type = $%d", string(f.BetType))
	}
	if f.From != nil {
		add("placed_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("placed_at <= $%d", *f.To)
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

type scanner interface {
	Scan(dest ...any) error
}

func scanBet(s scanner) (*bet.Bet, error) {
	var (
		b                                     bet.Bet
		bookmaker, stakeType, betType, result string
		market                                sql.NullString
		cashOut, pnl                          sql.NullFloat64
	)
	err := s.Scan(&b.ID, &b.UserID, &b.Fixture, &b.Selection, &bookmaker, &stakeType, &betType, &market,
		&b.Stake, &b.Odds, &b.PotentialReturn, &result, &cashOut, &pnl, &b.PlacedAt, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.Bookmaker = catalog.Bookmaker(bookmaker)
	b.StakeType = catalog.StakeType(stakeType)
	b.BetType = catalog.BetType(betType)
	b.Result = catalog.Result(result)
	if market.Valid {
		m := catalog.PlayerPropMarket(market.String)
		b.PlayerPropMarket = &m
	}
	b.CashOutValue = floatPtr(cashOut)
	b.Profit = floatPtr(pnl)
	b.PlacedAt = b.PlacedAt.UTC()
	return &b, nil
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func marketArg(m *catalog.PlayerPropMarket) any {
	if m == nil {
		return nil
	}
	return string(*m)
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
