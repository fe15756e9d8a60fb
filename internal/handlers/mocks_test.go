package handlers

import (
	"context"

	"github.com/versuslog/stats-api/internal/db"
	"github.com/versuslog/stats-api/internal/models"
)

// MockIngestQueue
type MockIngestQueue struct {
	EnqueueFunc func(record models.MatchRecord, clientID string) bool
	Enqueued    []models.MatchRecord
}

func (m *MockIngestQueue) Enqueue(record models.MatchRecord, clientID string) bool {
	if m.EnqueueFunc != nil {
		return m.EnqueueFunc(record, clientID)
	}
	m.Enqueued = append(m.Enqueued, record)
	return true
}
func (m *MockIngestQueue) QueueDepth() int { return len(m.Enqueued) }

// MockPlayerStatsService
type MockPlayerStatsService struct {
	GetPlayerSummaryFunc    func(ctx context.Context, tag string) (*models.PlayerStatsSummary, error)
	GetDetailedAnalysisFunc func(ctx context.Context, tag string, filter models.AnalysisFilter) (*models.DetailedAnalysisResult, error)
	SearchPlayersFunc       func(ctx context.Context, query string, minGames int) ([]models.PlayerStatsSummary, error)
	GetLeaderboardFunc      func(ctx context.Context, minGames, limit int) ([]models.PlayerStatsSummary, error)
	GetPlayerHighlightsFunc func(ctx context.Context, tag string) (*models.PlayerHighlights, error)
	GetRecentMatchesFunc    func(ctx context.Context, tag string, limit int) ([]models.RecentMatchView, error)
}

func (m *MockPlayerStatsService) GetPlayerSummary(ctx context.Context, tag string) (*models.PlayerStatsSummary, error) {
	if m.GetPlayerSummaryFunc != nil {
		return m.GetPlayerSummaryFunc(ctx, tag)
	}
	return &models.PlayerStatsSummary{PlayerTag: tag}, nil
}

func (m *MockPlayerStatsService) GetDetailedAnalysis(ctx context.Context, tag string, filter models.AnalysisFilter) (*models.DetailedAnalysisResult, error) {
	if m.GetDetailedAnalysisFunc != nil {
		return m.GetDetailedAnalysisFunc(ctx, tag, filter)
	}
	return &models.DetailedAnalysisResult{AppliedFilters: filter}, nil
}

func (m *MockPlayerStatsService) SearchPlayers(ctx context.Context, query string, minGames int) ([]models.PlayerStatsSummary, error) {
	if m.SearchPlayersFunc != nil {
		return m.SearchPlayersFunc(ctx, query, minGames)
	}
	return nil, nil
}

func (m *MockPlayerStatsService) GetLeaderboard(ctx context.Context, minGames, limit int) ([]models.PlayerStatsSummary, error) {
	if m.GetLeaderboardFunc != nil {
		return m.GetLeaderboardFunc(ctx, minGames, limit)
	}
	return nil, nil
}

func (m *MockPlayerStatsService) GetPlayerHighlights(ctx context.Context, tag string) (*models.PlayerHighlights, error) {
	if m.GetPlayerHighlightsFunc != nil {
		return m.GetPlayerHighlightsFunc(ctx, tag)
	}
	return &models.PlayerHighlights{}, nil
}

func (m *MockPlayerStatsService) GetRecentMatches(ctx context.Context, tag string, limit int) ([]models.RecentMatchView, error) {
	if m.GetRecentMatchesFunc != nil {
		return m.GetRecentMatchesFunc(ctx, tag, limit)
	}
	return nil, nil
}

// MockClientDirectory
type MockClientDirectory struct {
	CreateFunc         func(ctx context.Context, c db.Client) error
	GetByTokenHashFunc func(ctx context.Context, hash string) (db.Client, error)
	Created            []db.Client
	Touched            []string
}

func (m *MockClientDirectory) Create(ctx context.Context, c db.Client) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	m.Created = append(m.Created, c)
	return nil
}

func (m *MockClientDirectory) GetByTokenHash(ctx context.Context, hash string) (db.Client, error) {
	if m.GetByTokenHashFunc != nil {
		return m.GetByTokenHashFunc(ctx, hash)
	}
	return db.Client{}, db.ErrNotFound
}

func (m *MockClientDirectory) TouchLastSeen(ctx context.Context, id string) {
	m.Touched = append(m.Touched, id)
}
