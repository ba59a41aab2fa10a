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
	"github.com/radieske/bet-ledger/internal/importer"
	"github.com/radieske/bet-ledger/internal/shared/config"
	"github.com/radieske/bet-ledger/internal/shared/kafka"
	"github.com/radieske/bet-ledger/internal/shared/logger"
	"github.com/radieske/bet-ledger/internal/shared/metrics"
)

var (
	file    = flag.String("file", "imports/bets.csv", "CSV export with the bets to import")
	userID  = flag.String("user", "", "owner of the imported bets (required)")
	dryRun  = flag.Bool("dry-run", false, "validate and report without writing")
	publish = flag.Bool("publish", true, "publish bet_recorded events for imported rows")
)

func main() {
	flag.Parse()

	cfg := config.Load()
	if cfg.ServiceName == "" {
		cfg.ServiceName = "bet-importer"
	}
	log, err := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if *userID == "" {
		log.Fatal("missing -user")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal("open csv", zap.String("file", *file), zap.Error(err))
	}
	rows, err := importer.ReadCSV(f)
	_ = f.Close()
	if err != nil {
		log.Fatal("read csv", zap.String("file", *file), zap.Error(err))
	}

	conn, err := openStore(ctx, cfg.PostgresDSN, *dryRun)
	if err != nil {
		log.Fatal("pg", zap.Error(err))
	}
	defer conn.close()

	reg := prometheus.NewRegistry()
	m := metrics.NewLedger(reg)
	if cfg.MetricsPort != "" {
		srv := metrics.StartMetricsServer(log, cfg.MetricsPort, reg, conn.health)
		defer srv.Close()
	}
	opts := []importer.Option{importer.WithDryRun(*dryRun)}
	if *publish && !*dryRun {
		writer := kafka.NewWriter(cfg.Brokers(), cfg.TopicBetEvents)
		defer writer.Close()
		opts = append(opts, importer.WithPublisher(producer.NewKafkaPublisher(writer, cfg.TopicBetEvents)))
	}

	im := importer.New(conn.store, log, opts...)
	im.OnRow = func(outcome string) { m.ImportRows.WithLabelValues(outcome).Inc() }

	log.Info("import started", zap.String("file", *file), zap.Int("rows", len(rows)), zap.Bool("dry_run", *dryRun))
	rep, err := im.Run(ctx, *userID, rows)
	rep.Print(os.Stdout)
	if err != nil {
		log.Fatal("import interrupted", zap.Error(err))
	}
	log.Info("import finished",
		zap.Int("processed", rep.Processed),
		zap.Int("imported", rep.Imported),
		zap.Int("failed", rep.Failed()),
		zap.Int("uncategorized", len(rep.Uncategorized)),
	)
}
