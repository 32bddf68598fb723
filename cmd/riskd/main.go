package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bibbank/credit-risk-service/internal/application/usecase"
	"github.com/bibbank/credit-risk-service/internal/domain/port"
	"github.com/bibbank/credit-risk-service/internal/domain/service"
	"github.com/bibbank/credit-risk-service/internal/infrastructure/config"
	"github.com/bibbank/credit-risk-service/internal/infrastructure/kafka"
	pgRepo "github.com/bibbank/credit-risk-service/internal/infrastructure/postgres"
	"github.com/bibbank/credit-risk-service/internal/infrastructure/redis"
	grpcPresentation "github.com/bibbank/credit-risk-service/internal/presentation/grpc"
	"github.com/bibbank/credit-risk-service/internal/presentation/rest"
	"github.com/bibbank/credit-risk-service/pkg/auth"
	pkgkafka "github.com/bibbank/credit-risk-service/pkg/kafka"
	"github.com/bibbank/credit-risk-service/pkg/observability"
	pkgpostgres "github.com/bibbank/credit-risk-service/pkg/postgres"
)

func main() {
	if err := run(); err != nil {
		slog.Error("credit-risk-service exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.ServiceName,
	})

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Info("starting credit-risk-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"min_score_approve", cfg.Scoring.MinScoreApprove,
		"base_interest_rate", cfg.Scoring.BaseInterestRate.String(),
	)

	// Tracing is optional; without an endpoint spans go to the no-op provider.
	if cfg.Telemetry.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: cfg.ServiceName,
			Endpoint:    cfg.Telemetry.OTLPEndpoint,
			Insecure:    cfg.Telemetry.OTLPInsecure,
			SampleRatio: cfg.Telemetry.SampleRatio,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer func() { _ = shutdown(context.Background()) }() //nolint:errcheck // best-effort tracer shutdown
		}
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck // best-effort

	// Database connection and schema.
	pgCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
		MaxConns: int32(cfg.DB.MaxConns),
	}

	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pkgpostgres.NewPool(dbCtx, pgCfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if err := pkgpostgres.RunMigrations(pgCfg.DSN(), pgRepo.Migrations, pgRepo.MigrationsDir); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// Wire infrastructure adapters.
	repo := pgRepo.NewAssessmentRepo(pool)

	producer, err := pkgkafka.NewProducer(pkgkafka.Config{
		ClientID:      cfg.ServiceName,
		Brokers:       cfg.Kafka.Brokers,
		TLS:           cfg.Kafka.TLS,
		SASLEnabled:   cfg.Kafka.SASLMechanism != "",
		SASLMechanism: cfg.Kafka.SASLMechanism,
		SASLUsername:  cfg.Kafka.SASLUsername,
		SASLPassword:  cfg.Kafka.SASLPassword,
	})
	if err != nil {
		return fmt.Errorf("create kafka producer: %w", err)
	}
	defer func() { _ = producer.Close() }() //nolint:errcheck // best-effort flush
	publisher := kafka.NewEventPublisher(producer, cfg.Kafka.Topic, logger)

	var cache port.AssessmentCache
	if cfg.Redis.Addr != "" {
		client, err := redis.NewClient(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logger.Warn("redis unavailable, assessment cache disabled", "error", err)
		} else {
			defer func() { _ = client.Close() }() //nolint:errcheck // best-effort
			cache = redis.NewAssessmentCache(client, cfg.Redis.TTL)
			logger.Info("assessment cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL.String())
		}
	}

	evaluator := service.NewRiskEvaluator(cfg.ScoringPolicy())

	// Wire use cases.
	evaluateUC := usecase.NewEvaluateCreditUseCase(repo, cache, publisher, evaluator, logger)
	quoteUC := usecase.NewQuoteUseCase(evaluator)
	getUC := usecase.NewGetAssessmentUseCase(repo, cache, logger)
	listUC := usecase.NewListAssessmentsUseCase(repo)

	jwtSvc, err := newJWTService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("initialize JWT service: %w", err)
	}

	// gRPC server.
	handler := grpcPresentation.NewCreditRiskHandler(evaluateUC, quoteUC, getUC, listUC, logger)
	grpcServer, err := grpcPresentation.NewServer(handler, jwtSvc, grpcPresentation.ServerOptions{
		ServiceName:  cfg.ServiceName,
		CertFile:     cfg.TLS.CertFile,
		KeyFile:      cfg.TLS.KeyFile,
		ClientCAFile: cfg.TLS.ClientCAFile,
		Reflection:   cfg.GRPCReflection,
	}, logger)
	if err != nil {
		return fmt.Errorf("create gRPC server: %w", err)
	}

	// HTTP server: probes, metrics and the REST credit routes.
	mux := http.NewServeMux()
	rest.NewHealthHandler(pool, cfg.ServiceName, logger).RegisterRoutes(mux)
	rest.NewCreditHandler(quoteUC, getUC, listUC, logger).RegisterRoutes(mux, auth.HTTPMiddleware(jwtSvc))
	mux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           rest.LoggingMiddleware(logger)(mux),
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
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr = <-errCh:
		logger.Error("server error", "error", serveErr)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("credit-risk-service stopped")
	return serveErr
}

// newJWTService builds a validation-only JWT service: public key preferred,
// shared secret as fallback.
func newJWTService(cfg config.AuthConfig) (*auth.JWTService, error) {
	jwtCfg := auth.JWTConfig{Issuer: cfg.Issuer}
	if cfg.PublicKeyFile != "" {
		keyData, err := auth.LoadKeyFromFile(cfg.PublicKeyFile)
		if err != nil {
			return nil, err
		}
		jwtCfg.PublicKeyPEM = string(keyData)
	} else {
		jwtCfg.Secret = cfg.Secret
	}
	return auth.NewJWTService(jwtCfg)
}
