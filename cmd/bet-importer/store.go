package main

import (
	"context"
	"fmt"

	"github.com/radieske/bet-ledger/internal/bet-service/repo"
	"github.com/radieske/bet-ledger/internal/importer"
	"github.com/radieske/bet-ledger/internal/shared/db"
	"github.com/radieske/bet-ledger/internal/shared/metrics"
)

type storeConn struct {
	store  importer.Store
	health metrics.HealthFunc
	close  func() error
}

// openStore conecta e migra o Postgres. Em dry run nada é gravado, então não abre conexão
// nem aplica migrations.
func openStore(ctx context.Context, dsn string, dryRun bool) (storeConn, error) {
	if dryRun {
		return storeConn{
			health: func(context.Context) error { return nil },
			close:  func() error { return nil },
		}, nil
	}

	pg, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		return storeConn{}, err
	}
	if _, err := db.Migrate(pg); err != nil {
		_ = pg.Close()
		return storeConn{}, fmt.Errorf("migrate: %w", err)
	}
	return storeConn{store: repo.NewPostgres(pg), health: pg.PingContext, close: pg.Close}, nil
}
