package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"

	httpAdapter "github.com/odra/finbook/internal/adapter/http"
	"github.com/odra/finbook/internal/adapter/http/handler"
	postgresRepo "github.com/odra/finbook/internal/adapter/repository/postgres"
	redisRepo "github.com/odra/finbook/internal/adapter/repository/redis"
	"github.com/odra/finbook/internal/infrastructure/clock"
	"github.com/odra/finbook/internal/infrastructure/config"
	"github.com/odra/finbook/internal/infrastructure/logger"
	"github.com/odra/finbook/internal/infrastructure/metrics"
	"github.com/odra/finbook/internal/infrastructure/postgres"
	"github.com/odra/finbook/internal/infrastructure/redis"
	"github.com/odra/finbook/internal/scheduler"
	"github.com/odra/finbook/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns, cfg.DatabaseTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()
	clk := clock.New()

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	categoryRepo := postgresRepo.NewCategoryRepository(pool)
	budgetRepo := postgresRepo.NewBudgetRepository(pool)
	recurringRepo := postgresRepo.NewRecurringRepository(pool)
	goalRepo := postgresRepo.NewGoalRepository(pool)
	debtRepo := postgresRepo.NewDebtRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log)
	cache := redisRepo.NewCache(redisClient)
	tickLock := redisRepo.NewTickLock(redisClient, cfg.SchedulerLockTTL)

	// Use cases
	ledgerUC := usecase.NewLedgerUseCase(txManager, accountRepo, transactionRepo, categoryRepo, idGen, clk)
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, transactionRepo, idGen, clk)
	recurringUC := usecase.NewRecurringUseCase(txManager, recurringRepo, accountRepo, categoryRepo, ledgerUC, idGen, clk, log)
	dailyUC := usecase.NewDailyUseCase(txManager, budgetRepo, transactionRepo, goalRepo, ledgerUC, clk)
	debtUC := usecase.NewDebtUseCase(txManager, debtRepo, ledgerUC, idGen, clk)
	goalUC := usecase.NewGoalUseCase(goalRepo, idGen, clk)

	// Handlers
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		Logger:       log,
		Metrics:      m,
		Accounts:     handler.NewAccountHandler(accountUC),
		Transactions: handler.NewTransactionHandler(ledgerUC, cache, m),
		Recurring:    handler.NewRecurringHandler(recurringUC),
		Daily:        handler.NewDailyHandler(dailyUC, cache, cfg.DailyCacheTTL, m, log),
		Debts:        handler.NewDebtHandler(debtUC, m),
		Goals:        handler.NewGoalHandler(goalUC),
		Health:       handler.NewHealthHandler(pool, redisPinger{redisClient}),
	})

	// Recurring scheduler
	runner, err := scheduler.New(recurringUC, tickLock, retrier, m, clk, log, cfg.SchedulerTickTime)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid scheduler configuration")
	}

	schedCtx, stopScheduler := context.WithCancel(ctx)
	defer stopScheduler()
	go runner.Run(schedCtx)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
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
	stopScheduler()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// redisPinger adapts the redis client to the health handler's Pinger.
type redisPinger struct {
	client *goredis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
