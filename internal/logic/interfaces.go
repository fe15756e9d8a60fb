package logic

import (
	"context"
	"errors"

	"github.com/versuslog/stats-api/internal/models"
)

// ErrPlayerNotFound is returned for tags the system has never seen.
var ErrPlayerNotFound = errors.New("logic: player not found")

// MatchSource is the read side of match storage.
type MatchSource interface {
	ListAll(ctx context.Context) ([]models.MatchRecord, error)
	ListByTag(ctx context.Context, tag string) ([]models.MatchRecord, error)
}

// TagDirectory reports whether a player tag has ever appeared in an
// accepted match.
type TagDirectory interface {
	Exists(ctx context.Context, tag string) (bool, error)
}

// PlayerStatsService exposes the player statistics operations backed by
// stored match records.
type PlayerStatsService interface {
	GetPlayerSummary(ctx context.Context, tag string) (*models.PlayerStatsSummary, error)
	GetDetailedAnalysis(ctx context.Context, tag string, filter models.AnalysisFilter) (*models.DetailedAnalysisResult, error)
	SearchPlayers(ctx context.Context, query string, minGames int) ([]models.PlayerStatsSummary, error)
	GetLeaderboard(ctx context.Context, minGames, limit int) ([]models.PlayerStatsSummary, error)
	GetPlayerHighlights(ctx context.Context, tag string) (*models.PlayerHighlights, error)
	GetRecentMatches(ctx context.Context, tag string, limit int) ([]models.RecentMatchView, error)
}
