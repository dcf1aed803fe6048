package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	httpadapter "github.com/iho/moneymanager/internal/adapter/http"
	"github.com/iho/moneymanager/internal/adapter/http/handler"
	postgresrepo "github.com/iho/moneymanager/internal/adapter/repository/postgres"
	redisrepo "github.com/iho/moneymanager/internal/adapter/repository/redis"
	"github.com/iho/moneymanager/internal/infrastructure/config"
	"github.com/iho/moneymanager/internal/infrastructure/logger"
	"github.com/iho/moneymanager/internal/infrastructure/metrics"
	"github.com/iho/moneymanager/internal/infrastructure/postgres"
	redisinfra "github.com/iho/moneymanager/internal/infrastructure/redis"
	"github.com/iho/moneymanager/internal/usecase"
)

// redisPinger adapts the redis client to the health handler's Pinger.
type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logr := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = logr

	ctx := context.Background()

	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Redis is optional: without it requests are simply not idempotent and
	// readiness only checks postgres.
	var (
		idempotencyStore usecase.IdempotencyStore
		cachePinger      handler.Pinger
	)
	if cfg.RedisURL != "" {
		redisClient, err := redisinfra.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		log.Info().Msg("connected to redis")

		idempotencyStore = redisrepo.NewIdempotencyStore(redisClient)
		cachePinger = redisPinger{client: redisClient}
	}

	accountRepo := postgresrepo.NewAccountRepository(pool)
	entryRepo := postgresrepo.NewEntryRepository(pool)
	transferRepo := postgresrepo.NewTransferRepository(pool)

	locks := usecase.NewLockManager()
	clock := usecase.SystemClock{}
	idGen := postgresrepo.NewULIDGenerator()
	refGen := postgresrepo.NewUUIDReferenceGenerator()
	m := metrics.New()

	accountUC := usecase.NewAccountUseCase(accountRepo, locks, idGen, clock, m)
	ledgerUC := usecase.NewLedgerUseCase(entryRepo, idGen, clock, cfg.EditWindow, m)
	transferUC := usecase.NewTransferUseCase(accountUC, transferRepo, locks, idGen, refGen, clock, m)
	transferUC.SetLockTimeout(cfg.LockTimeout)
	reportUC := usecase.NewReportUseCase(entryRepo)

	router := httpadapter.NewRouter(httpadapter.RouterConfig{
		AccountHandler:     handler.NewAccountHandler(accountUC),
		TransactionHandler: handler.NewTransactionHandler(ledgerUC),
		TransferHandler:    handler.NewTransferHandler(transferUC),
		DashboardHandler:   handler.NewDashboardHandler(reportUC),
		HealthHandler:      handler.NewHealthHandler(pool, cachePinger),
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		Logger:             logr,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
