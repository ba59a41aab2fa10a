package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/bet-ledger/internal/bet-service/cache"
	"github.com/radieske/bet-ledger/internal/events-worker/consumer"
	"github.com/radieske/bet-ledger/internal/events-worker/pubsub"
	sharedcache "github.com/radieske/bet-ledger/internal/shared/cache"
	"github.com/radieske/bet-ledger/internal/shared/config"
	"github.com/radieske/bet-ledger/internal/shared/kafka"
	"github.com/radieske/bet-ledger/internal/shared/logger"
	"github.com/radieske/bet-ledger/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	if cfg.ServiceName == "" {
		cfg.ServiceName = "ledger-events-worker"
	}
	log, err := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Sinalização para shutdown gracioso (SIGINT/SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	redisClient, err := sharedcache.ConnectRedis(ctx, cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer redisClient.Close()

	// Consumer group próprio: cada worker recebe os eventos de um subconjunto de usuários
	reader := kafka.NewReader(cfg.Brokers(), cfg.TopicBetEvents, "ledger-events-worker")
	defer reader.Close()

	dlq := kafka.NewWriter(cfg.Brokers(), cfg.TopicBetEventsDLQ)
	defer dlq.Close()

	reg := prometheus.NewRegistry()
	m := metrics.NewLedger(reg)

	proc := &consumer.Processor{
		Log:         log,
		Reader:      reader,
		Summaries:   cache.NewSummaryCache(redisClient, cfg.SummaryCacheTTL),
		Broadcaster: pubsub.NewRedisBroadcaster(redisClient),
		Channel:     cfg.RedisPubSubChannel,
		DLQ:         dlq,
		OnConsumed:  func() { m.EventsConsumed.Inc() },
		OnHandled:   func() { m.EventsHandled.Inc() },
		OnError:     func(stage string) { m.EventErrors.WithLabelValues(stage).Inc() },
	}

	// Servidor HTTP para métricas e health check
	metricsSrv := metrics.StartMetricsServer(log, cfg.MetricsPort, reg, func(ctx context.Context) error {
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		return nil
	})
	defer func() {
		shutdownCtx, c := context.WithTimeout(context.Background(), 5*time.Second)
		defer c()
		_ = metricsSrv.Shutdown(shutdownCtx)
	}()

	log.Info("ledger-events-worker started", zap.String("topic", cfg.TopicBetEvents))
	if err := proc.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal("processor stopped with error", zap.Error(err))
	}
	log.Info("ledger-events-worker stopped")
}
