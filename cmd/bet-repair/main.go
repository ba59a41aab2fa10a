package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/bet-ledger/internal/bet-service/producer"
	"github.com/radieske/bet-ledger/internal/bet-service/repo"
	"github.com/radieske/bet-ledger/internal/ledger/repair"
	"github.com/radieske/bet-ledger/internal/repairjob"
	"github.com/radieske/bet-ledger/internal/shared/config"
	"github.com/radieske/bet-ledger/internal/shared/db"
	"github.com/radieske/bet-ledger/internal/shared/kafka"
	"github.com/radieske/bet-ledger/internal/shared/logger"
	"github.com/radieske/bet-ledger/internal/shared/metrics"
)

var (
	userID = flag.String("user", "", "owner of the bets to repair (required)")
	apply  = flag.Bool("apply", false, "persist the changes (default is a dry run)")
	rules  = flag.String("rules", "retrofit,legacy", "comma separated rules: retrofit, legacy")
)

func main() {
	flag.Parse()

	cfg := config.Load()
	if cfg.ServiceName == "" {
		cfg.ServiceName = "bet-repair"
	}
	log, err := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if *userID == "" {
		log.Fatal("missing -user")
	}
	selected, err := repair.ParseRules(*rules)
	if err != nil {
		log.Fatal("invalid -rules", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pg, err := db.ConnectPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg", zap.Error(err))
	}
	defer pg.Close()

	reg := prometheus.NewRegistry()
	m := metrics.NewLedger(reg)
	if cfg.MetricsPort != "" {
		srv := metrics.StartMetricsServer(log, cfg.MetricsPort, reg, func(ctx context.Context) error { return pg.PingContext(ctx) })
		defer srv.Close()
	}

	job := &repairjob.Job{
		Store:    repo.NewPostgres(pg),
		Log:      log,
		Rules:    selected,
		Apply:    *apply,
		OnChange: func(rule string) { m.RepairChanges.WithLabelValues(rule).Inc() },
	}
	if *apply {
		writer := kafka.NewWriter(cfg.Brokers(), cfg.TopicBetEvents)
		defer writer.Close()
		job.Publisher = producer.NewKafkaPublisher(writer, cfg.TopicBetEvents)
	}

	names := make([]string, 0, len(selected))
	for _, r := range selected {
		names = append(names, r.Name)
	}
	log.Info("repair started", zap.String("user_id", *userID), zap.Bool("apply", *apply), zap.Strings("rules", names))

	tally, err := job.Run(ctx, *userID)
	repairjob.PrintTally(os.Stdout, tally, *apply)
	if err != nil {
		log.Fatal("repair interrupted", zap.Error(err))
	}
	log.Info("repair finished", zap.Int("scanned", tally.Scanned), zap.Int("changed", tally.Changed), zap.Int("failed", tally.Failed))
}
