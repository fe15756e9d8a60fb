package handlers

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/versuslog/stats-api/internal/db"
	"github.com/versuslog/stats-api/internal/logic"
	"github.com/versuslog/stats-api/internal/models"
)

// MaxBodySize is the fallback request body cap when no explicit limit is
// configured.
const MaxBodySize = 4 << 20

// IngestQueue is the interface to the match ingestion worker pool.
type IngestQueue interface {
	Enqueue(record models.MatchRecord, clientID string) bool
	QueueDepth() int
}

// ClientDirectory manages upload client credentials.
type ClientDirectory interface {
	Create(ctx context.Context, c db.Client) error
	GetByTokenHash(ctx context.Context, hash string) (db.Client, error)
	TouchLastSeen(ctx context.Context, id string)
}

// MatchCounter feeds the readiness payload.
type MatchCounter interface {
	CountSince(ctx context.Context, cutoff time.Time) (int64, error)
}

type Config struct {
	WorkerPool IngestQueue
	Postgres   *pgxpool.Pool
	Redis      *redis.Client
	Logger     *zap.Logger
	Clients    ClientDirectory
	Matches    MatchCounter
	// Services
	PlayerStats logic.PlayerStatsService

	// Limits and defaults
	MaxUploadBytes      int64
	MaxBatchCount       int
	RateLimitPerSecond  int
	RateLimitBurst      int
	LeaderboardMinGames int
	LeaderboardLimit    int
}

type Handler struct {
	pool        IngestQueue
	pg          *pgxpool.Pool
	redis       *redis.Client
	logger      *zap.SugaredLogger
	validator   *validator.Validate
	clients     ClientDirectory
	matches     MatchCounter
	playerStats logic.PlayerStatsService

	maxUploadBytes      int64
	maxBatchCount       int
	rateLimitPerSecond  int
	rateLimitBurst      int
	leaderboardMinGames int
	leaderboardLimit    int
}

func New(cfg Config) *Handler {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = MaxBodySize
	}
	if cfg.MaxBatchCount <= 0 {
		cfg.MaxBatchCount = 500
	}
	if cfg.LeaderboardMinGames <= 0 {
		cfg.LeaderboardMinGames = 10
	}
	if cfg.LeaderboardLimit <= 0 {
		cfg.LeaderboardLimit = 100
	}

	return &Handler{
		pool:        cfg.WorkerPool,
		pg:          cfg.Postgres,
		redis:       cfg.Redis,
		logger:      cfg.Logger.Sugar(),
		validator:   validator.New(),
		clients:     cfg.Clients,
		matches:     cfg.Matches,
		playerStats: cfg.PlayerStats,

		maxUploadBytes:      cfg.MaxUploadBytes,
		maxBatchCount:       cfg.MaxBatchCount,
		rateLimitPerSecond:  cfg.RateLimitPerSecond,
		rateLimitBurst:      cfg.RateLimitBurst,
		leaderboardMinGames: cfg.LeaderboardMinGames,
		leaderboardLimit:    cfg.LeaderboardLimit,
	}
}
