package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/versuslog/stats-api/internal/config"
	"github.com/versuslog/stats-api/internal/db"
	"github.com/versuslog/stats-api/internal/handlers"
	"github.com/versuslog/stats-api/internal/logic"
	"github.com/versuslog/stats-api/internal/worker"
)

func newLogger(env string) *zap.Logger {
	if env == "development" {
		logger, err := zap.NewDevelopment()
		if err == nil {
			return logger
		}
	}
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	return logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := newLogger(os.Getenv("ENV"))
	defer logger.Sync()
	sugar := logger.Sugar()

	cfg, err := config.Load()
	if err != nil {
		sugar.Errorw("config load failed", "error", err)
		os.Exit(1)
	}

	pool, err := db.NewPool(ctx, cfg.PostgresURL)
	if err != nil {
		sugar.Errorw("postgres connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.PostgresURL, sugar); err != nil {
		sugar.Errorw("migrations failed", "error", err)
		os.Exit(1)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		sugar.Errorw("invalid redis url", "error", err)
		os.Exit(1)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	matches := db.NewMatchStore(pool, sugar)
	clients := db.NewClientStore(pool, sugar)
	players := db.NewPlayerDirectory(pool, sugar)

	ingestPool := worker.NewPool(worker.PoolConfig{
		WorkerCount:   cfg.WorkerCount,
		QueueSize:     cfg.QueueSize,
		BatchSize:     cfg.BatchSize,
		FlushInterval: cfg.FlushInterval,
		Matches:       matches,
		Players:       players,
		Logger:        logger,
	})
	ingestPool.Start(ctx)

	statsService := logic.NewPlayerStatsService(matches, players, sugar,
		cfg.HighlightMinSample, cfg.HighlightTrendGames)

	h := handlers.New(handlers.Config{
		WorkerPool:  ingestPool,
		Postgres:    pool,
		Redis:       redisClient,
		Logger:      logger,
		Clients:     clients,
		Matches:     matches,
		PlayerStats: statsService,

		MaxUploadBytes:      cfg.MaxUploadBytes,
		MaxBatchCount:       cfg.MaxBatchCount,
		RateLimitPerSecond:  cfg.RateLimitPerSecond,
		RateLimitBurst:      cfg.RateLimitBurst,
		LeaderboardMinGames: cfg.LeaderboardMinGames,
		LeaderboardLimit:    cfg.LeaderboardLimit,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h.Routes(cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		sugar.Infow("stats api listening", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Errorw("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	sugar.Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("server shutdown failed", "error", err)
	}

	// Drain queued match uploads before exiting.
	ingestPool.Stop()
	sugar.Infow("shutdown complete")
}
