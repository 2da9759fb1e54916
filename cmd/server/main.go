package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/honeynil/CreatorMonetizationService/internal/api"
	"github.com/honeynil/CreatorMonetizationService/internal/clock"
	"github.com/honeynil/CreatorMonetizationService/internal/config"
	"github.com/honeynil/CreatorMonetizationService/internal/fees"
	"github.com/honeynil/CreatorMonetizationService/internal/gateway"
	"github.com/honeynil/CreatorMonetizationService/internal/handler"
	"github.com/honeynil/CreatorMonetizationService/internal/infrastructure/kafka"
	"github.com/honeynil/CreatorMonetizationService/internal/infrastructure/redis"
	"github.com/honeynil/CreatorMonetizationService/internal/observability"
	core "github.com/honeynil/CreatorMonetizationService/internal/repository/postgres"
	service "github.com/honeynil/CreatorMonetizationService/internal/services"
	_ "github.com/lib/pq"
)

const (
	serviceName     = "monetization-service"
	shutdownTimeout = 10 * time.Second
	maxConsumerWait = time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, metricsHandler := observability.Setup(ctx, observability.Options{
		ServiceName:  serviceName,
		LogLevel:     cfg.LogLevel,
		OTLPEndpoint: cfg.OTLPEndpoint,
	})
	defer shutdownTracing(context.Background())

	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		slog.Error("failed to open Postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := core.RunMigrations(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	redisClient, err := redis.NewClient(ctx, cfg.RedisAddr)
	if err != nil {
		slog.Error("failed to connect to Redis", "addr", cfg.RedisAddr, "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	producer := kafka.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()

	calculator, err := fees.NewCalculator(cfg.FeeSchedule)
	if err != nil {
		slog.Error("invalid fee schedule", "error", err)
		os.Exit(1)
	}

	transactionRepo := core.NewPostgresTransactionRepository(db)
	subscriptionRepo := core.NewPostgresSubscriptionRepository(db)
	documentRepo := core.NewPostgresDocumentRepository(db)
	userRepo := core.NewPostgresUserRepository(db)
	analyticsRepo := core.NewPostgresAnalyticsRepository(db)

	clk := clock.New()
	paymentGateway := gateway.NewHTTPClient(cfg.GatewayBaseURL, cfg.GatewayAPIKey, cfg.GatewayTimeout)
	webhooks := gateway.NewWebhookVerifier(cfg.WebhookSecret, gateway.DefaultSignatureTolerance, clk)

	ledger := service.NewLedgerService(
		transactionRepo,
		documentRepo,
		userRepo,
		paymentGateway,
		calculator,
		redisClient,
		producer,
		cfg.KafkaLedgerTopic,
		clk,
	)
	subscriptions := service.NewSubscriptionService(
		subscriptionRepo,
		userRepo,
		paymentGateway,
		calculator,
		redisClient,
		producer,
		cfg.KafkaLedgerTopic,
		clk,
	)
	analytics := service.NewAnalyticsService(
		analyticsRepo,
		userRepo,
		redisClient,
		cfg.AnalyticsCacheTTL,
		cfg.AnalyticsLocation,
		clk,
	)
	events := service.NewProcessorEventService(ledger, subscriptions, producer, cfg.KafkaProcessorTopic, clk)

	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		runConsumer(ctx, cfg, events)
	}()

	h := handler.NewHandler(ledger, subscriptions, analytics, events, webhooks)
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.SetupRouter(h, redisClient, cfg.JWTSecret, metricsHandler),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		slog.Info("starting server", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	<-consumerDone
	slog.Info("server stopped")
}

// runConsumer applies queued processor events until ctx is cancelled. A failed
// event stops the reader; a fresh reader resumes from the last committed
// offset so the event is retried after a growing pause.
func runConsumer(ctx context.Context, cfg *config.Config, events kafka.ProcessorEventHandler) {
	wait := time.Second
	for {
		consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaProcessorTopic, cfg.KafkaGroupID, events)
		err := consumer.Consume(ctx)
		if closeErr := consumer.Close(); closeErr != nil {
			slog.Warn("failed to close consumer", "error", closeErr)
		}
		if ctx.Err() != nil {
			return
		}
		if err == nil {
			wait = time.Second
			continue
		}

		slog.Error("processor event consumer stopped, restarting", "retry_in", wait, "error", err)
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
		wait *= 2
		if wait > maxConsumerWait {
			wait = maxConsumerWait
		}
	}
}
