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

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/credigo/credit-engine/internal/application/usecase"
	"github.com/credigo/credit-engine/internal/domain/service"
	"github.com/credigo/credit-engine/internal/infrastructure/config"
	"github.com/credigo/credit-engine/internal/infrastructure/kafka"
	pgRepo "github.com/credigo/credit-engine/internal/infrastructure/persistence/postgres"
	"github.com/credigo/credit-engine/internal/platform/auth"
	platformkafka "github.com/credigo/credit-engine/internal/platform/kafka"
	"github.com/credigo/credit-engine/internal/platform/observability"
	platformpg "github.com/credigo/credit-engine/internal/platform/postgres"
	grpcPresentation "github.com/credigo/credit-engine/internal/presentation/grpc"
	"github.com/credigo/credit-engine/internal/presentation/rest"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load .env in local development; real deployments set the environment.
	_ = godotenv.Load() //nolint:errcheck

	cfg := config.Load()
	cfg.Validate()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	slog.SetDefault(logger)

	logger.Info("starting credit-engine",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pgCfg := platformpg.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}
	pool, err := platformpg.NewPool(dbCtx, pgCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if migErr := platformpg.RunMigrations(pgCfg.DSN(), cfg.MigrationsDir); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Wire infrastructure adapters.
	customerRepo := pgRepo.NewCustomerRepo(pool)
	loanRepo := pgRepo.NewLoanRepo(pool)

	kafkaProducer := platformkafka.NewProducer(platformkafka.Config{
		Brokers: cfg.Kafka.Brokers,
	})
	defer kafkaProducer.Close()
	publisher := kafka.NewKafkaEventPublisher(kafkaProducer, cfg.Kafka.Topic, logger)

	// Wire the decision core.
	scorer := service.NewScorer(logger)
	engine := service.NewDecisionEngine(scorer)
	metrics := observability.NewDecisionMetrics(prometheus.DefaultRegisterer)

	// Wire use cases.
	registerUC := usecase.NewRegisterCustomerUseCase(customerRepo, publisher, logger)
	eligibilityUC := usecase.NewCheckEligibilityUseCase(customerRepo, loanRepo, engine, metrics)
	createLoanUC := usecase.NewCreateLoanUseCase(customerRepo, loanRepo, engine, publisher, metrics, logger)
	creditScoreUC := usecase.NewGetCreditScoreUseCase(customerRepo, loanRepo, scorer)
	getLoanUC := usecase.NewGetLoanUseCase(customerRepo, loanRepo)
	listLoansUC := usecase.NewListCustomerLoansUseCase(customerRepo, loanRepo)

	// Token validation (optional, shared-secret with the gateway).
	var tokenService *auth.TokenService
	if cfg.Auth.Enabled {
		tokenService, err = auth.NewTokenService(cfg.Auth.Secret, cfg.Auth.Issuer)
		if err != nil {
			logger.Error("failed to initialize token service", "error", err)
			os.Exit(1)
		}
	}

	// gRPC server.
	handler := grpcPresentation.NewCreditHandler(
		registerUC, eligibilityUC, createLoanUC, creditScoreUC, getLoanUC, listLoansUC,
	)
	grpcServer := grpcPresentation.NewServer(handler, logger, tokenService)

	// HTTP server (health checks and metrics).
	mux := http.NewServeMux()
	healthHandler := rest.NewHealthHandler(pool, logger)
	healthHandler.RegisterRoutes(mux)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("credit-engine stopped")
}
