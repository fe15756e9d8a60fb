package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port int
	Env  string

	// CORS
	AllowedOrigins []string

	// Databases
	PostgresURL string
	RedisURL    string

	// Ingest pool
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration

	// Upload limits
	MaxUploadBytes int64
	MaxBatchCount  int

	// Rate limiting
	RateLimitPerSecond int
	RateLimitBurst     int

	// Leaderboard and search defaults
	LeaderboardMinGames int
	LeaderboardLimit    int

	// Highlights
	HighlightMinSample  int
	HighlightTrendGames int
}

// Load reads configuration from the environment. A local .env file is
// folded in first when present; real environment variables win. Missing
// critical values are an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnvInt("PORT", 8080),
		Env:  getEnv("ENV", "development"),

		WorkerCount:   getEnvInt("WORKER_COUNT", 2),
		QueueSize:     getEnvInt("QUEUE_SIZE", 4096),
		BatchSize:     getEnvInt("BATCH_SIZE", 200),
		FlushInterval: getEnvDuration("FLUSH_INTERVAL", 1*time.Second),

		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 4<<20)),
		MaxBatchCount:  getEnvInt("MAX_BATCH_COUNT", 500),

		RateLimitPerSecond: getEnvInt("RATE_LIMIT_PER_SECOND", 20),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 40),

		LeaderboardMinGames: getEnvInt("LEADERBOARD_MIN_GAMES", 10),
		LeaderboardLimit:    getEnvInt("LEADERBOARD_LIMIT", 100),

		HighlightMinSample:  getEnvInt("HIGHLIGHT_MIN_SAMPLE", 3),
		HighlightTrendGames: getEnvInt("HIGHLIGHT_TREND_GAMES", 10),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	rawOrigins := strings.Split(origins, ",")
	for _, o := range rawOrigins {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	// Critical configuration - fail if missing
	var err error
	if cfg.PostgresURL, err = getEnvRequired("POSTGRES_URL"); err != nil {
		return nil, err
	}
	if cfg.RedisURL, err = getEnvRequired("REDIS_URL"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvRequired(key string) (string, error) {
	if value := os.Getenv(key); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("missing required environment variable: %s", key)
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
