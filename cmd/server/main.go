package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/fondocore/fondo/internal/adapter/http"
	"github.com/fondocore/fondo/internal/adapter/http/handler"
	"github.com/fondocore/fondo/internal/adapter/http/middleware"
	postgresRepo "github.com/fondocore/fondo/internal/adapter/repository/postgres"
	redisRepo "github.com/fondocore/fondo/internal/adapter/repository/redis"
	"github.com/fondocore/fondo/internal/infrastructure/auth"
	"github.com/fondocore/fondo/internal/infrastructure/config"
	"github.com/fondocore/fondo/internal/infrastructure/eventpublisher"
	"github.com/fondocore/fondo/internal/infrastructure/logger"
	"github.com/fondocore/fondo/internal/infrastructure/metrics"
	"github.com/fondocore/fondo/internal/infrastructure/postgres"
	"github.com/fondocore/fondo/internal/infrastructure/redis"
	"github.com/fondocore/fondo/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Apply pending migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	movementRepo := postgresRepo.NewMovementRepository(pool)
	typeRepo := postgresRepo.NewMovementTypeRepository(pool)
	closingRepo := postgresRepo.NewClosingRepository(pool)
	companyRepo := postgresRepo.NewCompanyRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)
	directory := redisRepo.NewDirectoryCache(companyRepo, cache, usecase.DirectoryCacheTTL)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier()

	// Initialize use cases
	typeUC := usecase.NewMovementTypeUseCase(typeRepo, txManager, idGen)
	movementUC := usecase.NewMovementUseCase(txManager, movementRepo, typeUC, outboxRepo, idGen)
	closingUC := usecase.NewClosingUseCase(txManager, closingRepo, movementRepo, typeUC, directory, outboxRepo, idGen, retrier)
	summaryUC := usecase.NewSummaryUseCase(movementRepo, typeUC)
	ledgerUC := usecase.NewLedgerUseCase(movementRepo, typeUC)
	consistencyUC := usecase.NewConsistencyUseCase(closingRepo, closingUC)

	// Initialize metrics
	m := metrics.New()

	// Initialize handlers
	movementHandler := handler.NewMovementHandler(movementUC, m)
	typeHandler := handler.NewMovementTypeHandler(typeUC, m)
	closingHandler := handler.NewClosingHandler(closingUC, m)
	summaryHandler := handler.NewSummaryHandler(summaryUC, m, cfg.SummaryIncludeAdjustments)
	ledgerHandler := handler.NewLedgerHandler(ledgerUC, consistencyUC, m)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Optional JWT authentication
	var jwtManager *auth.JWTManager
	if cfg.AuthEnabled && cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, 24*time.Hour)
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		MovementHandler:     movementHandler,
		MovementTypeHandler: typeHandler,
		ClosingHandler:      closingHandler,
		SummaryHandler:      summaryHandler,
		LedgerHandler:       ledgerHandler,
		HealthHandler:       healthHandler,
		Logger:              appLogger,
		IdempotencyStore:    idempotencyStore,
		JWTManager:          jwtManager,
		RateLimiter:         middleware.NewRateLimiter(100, 200),
	})

	// Start the outbox publisher worker
	publisherCtx, stopPublisher := context.WithCancel(ctx)
	defer stopPublisher()

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewLogPublisher(slog.Default()),
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxInterval,
	})
	go func() {
		if err := publisher.Start(publisherCtx); err != nil && publisherCtx.Err() == nil {
			log.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopPublisher()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
