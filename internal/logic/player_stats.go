package logic

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/versuslog/stats-api/internal/models"
	"github.com/versuslog/stats-api/internal/stats"
)

type playerStatsService struct {
	matches     MatchSource
	players     TagDirectory
	logger      *zap.SugaredLogger
	minSample   int
	trendWindow int
}

// NewPlayerStatsService builds the stats service. minSample and
// trendWindow tune the highlight computation; non-positive values fall
// back to the package defaults.
func NewPlayerStatsService(matches MatchSource, players TagDirectory, logger *zap.SugaredLogger, minSample, trendWindow int) PlayerStatsService {
	if minSample <= 0 {
		minSample = stats.DefaultMinSample
	}
	if trendWindow <= 0 {
		trendWindow = stats.DefaultTrendWindow
	}
	return &playerStatsService{
		matches:     matches,
		players:     players,
		logger:      logger,
		minSample:   minSample,
		trendWindow: trendWindow,
	}
}

// GetPlayerSummary returns the basic win/loss summary for a tag. The
// match fetch and the directory check run in parallel; a tag with no
// matches that the directory has also never seen is ErrPlayerNotFound,
// while a known tag with no games gets an all-zero summary.
func (s *playerStatsService) GetPlayerSummary(ctx context.Context, tag string) (*models.PlayerStatsSummary, error) {
	var (
		records []models.MatchRecord
		known   bool
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.matches.ListByTag(ctx, tag)
		if err != nil {
			return fmt.Errorf("load matches: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		known, err = s.players.Exists(ctx, tag)
		if err != nil {
			return fmt.Errorf("check player directory: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := stats.BasicSummary(tag, records)
	if summary.TotalGames == 0 && !known {
		return nil, ErrPlayerNotFound
	}
	return &summary, nil
}

// GetDetailedAnalysis computes the filtered breakdown for a tag. A tag
// with no matches yields a valid empty result rather than an error.
func (s *playerStatsService) GetDetailedAnalysis(ctx context.Context, tag string, filter models.AnalysisFilter) (*models.DetailedAnalysisResult, error) {
	records, err := s.matches.ListByTag(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("load matches: %w", err)
	}

	result := stats.DetailedAnalysis(tag, records, filter)
	return &result, nil
}

func (s *playerStatsService) SearchPlayers(ctx context.Context, query string, minGames int) ([]models.PlayerStatsSummary, error) {
	records, err := s.matches.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load matches: %w", err)
	}
	return stats.SearchPlayers(records, query, minGames), nil
}

func (s *playerStatsService) GetLeaderboard(ctx context.Context, minGames, limit int) ([]models.PlayerStatsSummary, error) {
	records, err := s.matches.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load matches: %w", err)
	}

	board := stats.LeaderboardFromRecords(records, minGames)
	if limit > 0 && len(board) > limit {
		board = board[:limit]
	}
	return board, nil
}

// GetPlayerHighlights derives the profile highlight block. Players below
// the minimum sample get an empty block, never an error.
func (s *playerStatsService) GetPlayerHighlights(ctx context.Context, tag string) (*models.PlayerHighlights, error) {
	records, err := s.matches.ListByTag(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("load matches: %w", err)
	}

	pairs := stats.ExtractPairs(records, tag)
	highlights := stats.Highlights(pairs, s.minSample, s.trendWindow)
	return &highlights, nil
}

// GetRecentMatches lists a player's latest games, newest first. A
// free-for-all match contributes one row per opponent.
func (s *playerStatsService) GetRecentMatches(ctx context.Context, tag string, limit int) ([]models.RecentMatchView, error) {
	if limit <= 0 {
		limit = 20
	}

	records, err := s.matches.ListByTag(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("load matches: %w", err)
	}

	pairs := stats.ExtractPairs(records, tag)
	sort.Slice(pairs, func(i, j int) bool {
		if !pairs[i].StartTime.Equal(pairs[j].StartTime) {
			return pairs[i].StartTime.After(pairs[j].StartTime)
		}
		return pairs[i].MatchID < pairs[j].MatchID
	})
	if len(pairs) > limit {
		pairs = pairs[:limit]
	}

	views := make([]models.RecentMatchView, 0, len(pairs))
	for _, p := range pairs {
		views = append(views, models.RecentMatchView{
			MatchID:           p.MatchID,
			StartTime:         p.StartTime,
			StageID:           p.StageID,
			CharacterName:     p.Subject.CharacterName,
			OpponentTag:       p.Opponent.PlayerTag,
			OpponentCharacter: p.Opponent.CharacterName,
			Result:            p.Subject.Result,
		})
	}
	return views, nil
}
