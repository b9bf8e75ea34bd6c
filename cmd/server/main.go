package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/dentora/clinicledger/internal/adapter/http"
	"github.com/dentora/clinicledger/internal/adapter/http/handler"
	"github.com/dentora/clinicledger/internal/adapter/http/middleware"
	postgresRepo "github.com/dentora/clinicledger/internal/adapter/repository/postgres"
	redisRepo "github.com/dentora/clinicledger/internal/adapter/repository/redis"
	"github.com/dentora/clinicledger/internal/infrastructure/config"
	"github.com/dentora/clinicledger/internal/infrastructure/eventpublisher"
	"github.com/dentora/clinicledger/internal/infrastructure/logger"
	"github.com/dentora/clinicledger/internal/infrastructure/metrics"
	"github.com/dentora/clinicledger/internal/infrastructure/postgres"
	"github.com/dentora/clinicledger/internal/infrastructure/redis"
	"github.com/dentora/clinicledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "clinicledger",
	})
	log.Logger = appLogger
	zerolog.DefaultContextLogger = &appLogger

	ctx := context.Background()

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, resolveMigrationsPath()); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Metrics
	appMetrics := metrics.New()
	metrics.RegisterPoolStats(pool)

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	patientRepo := postgresRepo.NewPatientRepository(pool)
	appointmentRepo := postgresRepo.NewAppointmentRepository(pool)
	labWorkRepo := postgresRepo.NewLabWorkRepository(pool)
	paymentRepo := postgresRepo.NewPaymentRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	retrier := postgresRepo.NewRetrier(appLogger)
	idGen := postgresRepo.NewULIDGenerator()
	balanceCache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Initialize use cases
	balanceUC := usecase.NewBalanceUseCase(patientRepo, appointmentRepo, labWorkRepo, paymentRepo, balanceCache)
	reconcileUC := usecase.NewReconcileUseCase(txManager, balanceUC, appointmentRepo, labWorkRepo, paymentRepo, outboxRepo, idGen, retrier)
	paymentUC := usecase.NewPaymentUseCase(txManager, patientRepo, paymentRepo, auditRepo, outboxRepo, idGen, balanceUC, reconcileUC, appLogger)
	auditUC := usecase.NewAuditUseCase(auditRepo)

	// Initialize handlers
	balanceHandler := handler.NewBalanceHandler(balanceUC, reconcileUC)
	paymentHandler := handler.NewPaymentHandler(paymentUC)
	auditHandler := handler.NewAuditHandler(auditUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		BalanceHandler:   balanceHandler,
		PaymentHandler:   paymentHandler,
		AuditHandler:     auditHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
		RateLimiter:      rateLimiter,
		Logger:           appLogger,
	})

	// Start the outbox publisher worker
	publisherCtx, stopPublisher := context.WithCancel(ctx)
	defer stopPublisher()

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewLogPublisher(appLogger),
		Logger:     appLogger,
		Metrics:    appMetrics,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxPollInterval,
	})
	go func() {
		if err := publisher.Start(publisherCtx); err != nil && err != context.Canceled {
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

func resolveMigrationsPath() string {
	if path := os.Getenv("MIGRATIONS_PATH"); path != "" {
		return path
	}
	return "migrations"
}
