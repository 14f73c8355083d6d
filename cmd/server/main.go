package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/trxrecords/internal/adapter/http"
	"github.com/iho/trxrecords/internal/adapter/http/handler"
	"github.com/iho/trxrecords/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/trxrecords/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/trxrecords/internal/adapter/repository/redis"
	"github.com/iho/trxrecords/internal/adapter/source"
	"github.com/iho/trxrecords/internal/infrastructure/config"
	"github.com/iho/trxrecords/internal/infrastructure/logger"
	"github.com/iho/trxrecords/internal/infrastructure/metrics"
	"github.com/iho/trxrecords/internal/infrastructure/postgres"
	"github.com/iho/trxrecords/internal/infrastructure/redis"
	"github.com/iho/trxrecords/internal/usecase"
)

const limiterCleanupInterval = 10 * time.Minute

func main() {
	// Until config is loaded, log to stderr in a readable form.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(ctx context.Context) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logger.SetGlobal(appLogger)

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	appLogger.Info().Msg("connected to postgres")

	if cfg.DatabaseAutoMigrate {
		if err := postgres.RunMigrations(cfg.DatabaseURL, appLogger); err != nil {
			return err
		}
	}

	// Connect to Redis
	redisClient, err := redis.Connect(ctx, cfg.RedisURL, appLogger)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	recordRepo := postgresRepo.NewRecordRepository(pool)
	importRunRepo := postgresRepo.NewImportRunRepository()

	// Initialize use cases
	importUC := usecase.NewImportUseCase(
		txManager,
		recordRepo,
		importRunRepo,
		postgresRepo.NewRetrier(appLogger),
		postgresRepo.NewULIDGenerator(),
		usecase.ImportConfig{
			Deduplicate: cfg.ImportDeduplicate,
			Metrics:     m,
			Logger:      appLogger,
		},
	)
	recordUC := usecase.NewRecordUseCase(recordRepo, cfg.MaxPageSize, m)

	if cfg.ImportOnStartup {
		if _, err := runStartupImport(ctx, importUC, cfg.ImportFileLocation, appLogger); err != nil {
			return err
		}
	}

	routerCfg := httpAdapter.RouterConfig{
		RecordHandler:  handler.NewRecordHandler(recordUC),
		HealthHandler:  handler.NewHealthHandler(pool, redisClient),
		Logger:         appLogger,
		IdempotencyTTL: cfg.IdempotencyTTL,
		RateLimiter:    newRateLimiter(cfg, m),
	}
	if redisClient != nil {
		routerCfg.IdempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
	}
	if routerCfg.RateLimiter != nil {
		go cleanupLimiters(ctx, routerCfg.RateLimiter)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      httpAdapter.NewRouter(routerCfg),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", server.Addr, err)
	}

	return serve(ctx, server, ln, cfg.HTTPShutdownTimeout, appLogger)
}

type importer interface {
	Import(ctx context.Context, src usecase.ImportSource) (*usecase.ImportResult, error)
}

// runStartupImport loads the configured file, or the bundled data set, before
// the server accepts traffic. A nil result means there was nothing to import.
func runStartupImport(ctx context.Context, uc importer, location string, logger zerolog.Logger) (*usecase.ImportResult, error) {
	src, ok := source.Resolve(location, logger)
	if !ok {
		return nil, nil
	}

	result, err := uc.Import(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("startup import: %w", err)
	}

	return result, nil
}

func newRateLimiter(cfg *config.Config, m *metrics.Metrics) *middleware.RateLimiter {
	if cfg.RateLimitRPS <= 0 {
		return nil
	}

	return middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m.ObserveRateLimited)
}

func cleanupLimiters(ctx context.Context, rl *middleware.RateLimiter) {
	ticker := time.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.CleanupLimiters(limiterCleanupInterval)
		}
	}
}

// serve runs server on ln until ctx is canceled, then shuts it down.
func serve(ctx context.Context, server *http.Server, ln net.Listener, shutdownTimeout time.Duration, logger zerolog.Logger) error {
	errCh := make(chan error, 1)

	go func() {
		logger.Info().Str("addr", ln.Addr().String()).Msg("starting server")
		errCh <- server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info().Msg("server stopped")

	return nil
}
