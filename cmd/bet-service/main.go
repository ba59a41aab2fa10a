package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/radieske/bet-ledger/internal/bet-service/cache"
	bhttp "github.com/radieske/bet-ledger/internal/bet-service/http"
	kpub "github.com/radieske/bet-ledger/internal/bet-service/producer"
	"github.com/radieske/bet-ledger/internal/bet-service/repo"
	"github.com/radieske/bet-ledger/internal/bet-service/ws"
	sharedcache "github.com/radieske/bet-ledger/internal/shared/cache"
	"github.com/radieske/bet-ledger/internal/shared/config"
	"github.com/radieske/bet-ledger/internal/shared/db"
	"github.com/radieske/bet-ledger/internal/shared/kafka"
	"github.com/radieske/bet-ledger/internal/shared/logger"
	"github.com/radieske/bet-ledger/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	if cfg.ServiceName == "" {
		cfg.ServiceName = "bet-service"
	}
	log, err := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Postgres + migrations
	pg, err := db.ConnectPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg", zap.Error(err))
	}
	defer pg.Close()

	version, err := db.Migrate(pg)
	if err != nil {
		log.Fatal("migrate", zap.Error(err))
	}
	log.Info("schema ready", zap.Uint("version", version))

	// Redis
	rdb, err := sharedcache.ConnectRedis(ctx, cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	// Kafka writer (topic bet_events)
	writer := kafka.NewWriter(cfg.Brokers(), cfg.TopicBetEvents)
	defer writer.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	ledgerMetrics := metrics.NewLedger(reg)

	// WebSocket: o worker publica no Pub/Sub e o hub entrega ao usuário
	hub := ws.NewHub(ws.AllowOrigins(cfg.CORSOrigins))
	ws.StartRedisSubscriber(ctx, rdb, cfg.RedisPubSubChannel, hub, log)

	api := &bhttp.API{
		Log:       log,
		Store:     repo.NewPostgres(pg),
		Publisher: kpub.NewKafkaPublisher(writer, cfg.TopicBetEvents),
		Summaries: cache.NewSummaryCache(rdb, cfg.SummaryCacheTTL),
		Metrics:   ledgerMetrics,
		WS:        hub,
	}
	apiSrv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// metrics/health
	metricsSrv := metrics.StartMetricsServer(log, cfg.MetricsPort, reg, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return fmt.Errorf("pg: %w", err)
		}
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		return nil
	})

	go func() {
		log.Info("bet-service listening", zap.String("addr", apiSrv.Addr))
		if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("api", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = apiSrv.Shutdown(shutdownCtx)
	_ = metricsSrv.Shutdown(shutdownCtx)
}
