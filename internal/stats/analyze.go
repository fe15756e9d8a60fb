package stats

import (
	"sort"

	"github.com/versuslog/stats-api/internal/models"
)

// Everything in this file recomputes from the records it is handed.
// There is no cache and no shared state; concurrent calls are safe
// because inputs are snapshots and outputs are freshly allocated.

// BasicSummary computes the summary line for one player. A tag with no
// matches yields an all-zero summary, not an error; telling an unknown
// player apart from an idle one is the caller's job.
func BasicSummary(tag string, records []models.MatchRecord) models.PlayerStatsSummary {
	return BuildSummary(tag, ExtractPairs(records, tag))
}

// DetailedAnalysis runs the full filter-aware breakdown. All groupings
// and the overall line cover the filtered set; filter_options always
// reflect the unfiltered history; the applied filter is echoed back so
// clients can reconcile UI state.
func DetailedAnalysis(tag string, records []models.MatchRecord, filter models.AnalysisFilter) models.DetailedAnalysisResult {
	unfiltered := ExtractPairs(records, tag)
	filtered := ApplyFilter(unfiltered, filter)
	overall := Summarize(filtered)

	return models.DetailedAnalysisResult{
		TotalGames:             overall.Games,
		Wins:                   overall.Wins,
		OverallWinrate:         overall.WinRate,
		AppliedFilters:         filter,
		CharacterStats:         facetStats(GroupPairs(filtered, KeyCharacter)),
		OpponentStats:          facetStats(GroupPairs(filtered, KeyOpponent)),
		OpponentCharacterStats: facetStats(GroupPairs(filtered, KeyOpponentCharacter)),
		DateStats:              dateStats(GroupPairs(filtered, KeyDay)),
		FilterOptions:          Options(unfiltered),
	}
}

// SearchPlayers returns summaries for every player whose tag contains
// query (case-insensitive), ranked by total_games descending, ties by
// tag ascending.
func SearchPlayers(records []models.MatchRecord, query string, minGames int) []models.PlayerStatsSummary {
	byPlayer := ExtractAllPairs(records)
	out := make([]models.PlayerStatsSummary, 0, len(byPlayer))
	for tag, pairs := range byPlayer {
		if !MatchTag(tag, query) {
			continue
		}
		summary := BuildSummary(tag, pairs)
		if summary.TotalGames < minGames {
			continue
		}
		out = append(out, summary)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalGames != out[j].TotalGames {
			return out[i].TotalGames > out[j].TotalGames
		}
		return out[i].PlayerTag < out[j].PlayerTag
	})
	return out
}

// LeaderboardFromRecords extracts every player in one pass and ranks them.
func LeaderboardFromRecords(records []models.MatchRecord, minGames int) []models.PlayerStatsSummary {
	return Leaderboard(ExtractAllPairs(records), minGames)
}

func facetStats(groups map[string]Summary) map[string]models.FacetStat {
	out := make(map[string]models.FacetStat, len(groups))
	for k, s := range groups {
		out[k] = models.FacetStat{Games: s.Games, Wins: s.Wins, WinRate: s.WinRate}
	}
	return out
}

func dateStats(groups map[string]Summary) map[string]models.DateStat {
	out := make(map[string]models.DateStat, len(groups))
	for k, s := range groups {
		out[k] = models.DateStat{Games: s.Games, WinRate: s.WinRate}
	}
	return out
}
