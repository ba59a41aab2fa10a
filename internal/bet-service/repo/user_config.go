package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/radieske/bet-ledger/internal/ledger/catalog"
	"github.com/radieske/bet-ledger/internal/ledger/userconfig"
)

// UserConfig lê as casas habilitadas e as preferências. Usuário sem registro devolve Stored vazio.
func (p *Postgres) UserConfig(ctx context.Context, userID string) (userconfig.Stored, error) {
	var out userconfig.Stored

	rows, err := p.db.QueryContext(ctx,
		`SELECT bookmaker FROM user_bookmakers WHERE user_id=$1 ORDER BY bookmaker`, userID)
	if err != nil {
		return out, fmt.Errorf("query user bookmakers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			return out, fmt.Errorf("scan user bookmaker: %w", err)
		}
		out.Enabled = append(out.Enabled, catalog.Bookmaker(b))
	}
	if err := rows.Err(); err != nil {
		return out, fmt.Errorf("iterate user bookmakers: %w", err)
	}

	var (
		pref      userconfig.Preference
		bookmaker sql.NullString
		betType   string
	)
	err = p.db.QueryRowContext(ctx,
		`SELECT default_bookmaker, default_bet_type, default_stake FROM user_preferences WHERE user_id=$1`, userID,
	).Scan(&bookmaker, &betType, &pref.DefaultStake)
	if errors.Is(err, sql.ErrNoRows) {
		return out, nil
	}
	if err != nil {
		return out, fmt.Errorf("get user preferences: %w", err)
	}
	if bookmaker.Valid {
		b := catalog.Bookmaker(bookmaker.String)
		pref.DefaultBookmaker = &b
	}
	pref.DefaultBetType = catalog.BetType(betType)
	out.Preference = &pref
	return out, nil
}

// SaveUserConfig substitui as casas habilitadas e faz upsert das preferências numa transação
func (p *Postgres) SaveUserConfig(ctx context.Context, userID string, s userconfig.Stored) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_bookmakers WHERE user_id=$1`, userID); err != nil {
		return fmt.Errorf("clear user bookmakers: %w", err)
	}
	for _, b := range s.Enabled {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO user_bookmakers (user_id, bookmaker) VALUES ($1,$2) ON CONFLICT DO NOTHING`,
			userID, string(b)); err != nil {
			return fmt.Errorf("insert user bookmaker: %w", err)
		}
	}

	if pref := s.Preference; pref != nil {
		var bookmaker any
		if pref.DefaultBookmaker != nil {
			bookmaker = string(*pref.DefaultBookmaker)
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO user_preferences (user_id, default_bookmaker, default_bet_type, default_stake, updated_at)
			VALUES ($1,$2,$3,$4,NOW())
			ON CONFLICT (user_id) DO UPDATE SET
				default_bookmaker=EXCLUDED.default_bookmaker,
				default_bet_type=EXCLUDED.default_bet_type,
				default_stake=EXCLUDED.default_stake,
				updated_at=NOW()`,
			userID, bookmaker, string(pref.DefaultBetType), pref.DefaultStake,
		)
		if err != nil {
			return fmt.Errorf("upsert user preferences: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit user config: %w", err)
	}
	return nil
}
