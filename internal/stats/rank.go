package stats

import (
	"sort"

	"github.com/versuslog/stats-api/internal/models"
)

const (
	// DefaultMinSample gates highlight groups: fewer games than this and
	// the group cannot be anyone's best or worst anything.
	DefaultMinSample = 3

	// DefaultTrendWindow is how many recent games the trend compares
	// against the all-time rate.
	DefaultTrendWindow = 10
)

// BuildSummary assembles the per-player summary line from extracted pairs.
func BuildSummary(tag string, pairs []Pair) models.PlayerStatsSummary {
	s := Summarize(pairs)
	return models.PlayerStatsSummary{
		PlayerTag:           tag,
		TotalGames:          s.Games,
		Wins:                s.Wins,
		Losses:              s.Games - s.Wins,
		WinRate:             s.WinRate,
		MostPlayedCharacter: MostPlayed(pairs),
		LastGameTime:        LastGameTime(pairs),
	}
}

// Leaderboard ranks every player at or above the games threshold. The
// ordering is a strict total order: win_rate desc, then total_games desc,
// then player_tag asc.
func Leaderboard(byPlayer map[string][]Pair, minGames int) []models.PlayerStatsSummary {
	out := make([]models.PlayerStatsSummary, 0, len(byPlayer))
	for tag, pairs := range byPlayer {
		summary := BuildSummary(tag, pairs)
		if summary.TotalGames < minGames {
			continue
		}
		out = append(out, summary)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WinRate != out[j].WinRate {
			return out[i].WinRate > out[j].WinRate
		}
		if out[i].TotalGames != out[j].TotalGames {
			return out[i].TotalGames > out[j].TotalGames
		}
		return out[i].PlayerTag < out[j].PlayerTag
	})
	return out
}

// Highlights derives the profile callouts: best character and stage by
// win rate, the rival the player loses to most, and a rising trend when
// the recent window beats the all-time rate. Every field is nil when no
// group reaches minSample.
func Highlights(pairs []Pair, minSample, trendWindow int) models.PlayerHighlights {
	if minSample <= 0 {
		minSample = DefaultMinSample
	}
	if trendWindow <= 0 {
		trendWindow = DefaultTrendWindow
	}
	return models.PlayerHighlights{
		BestCharacter: pickExtreme(GroupPairs(pairs, KeyCharacter), minSample, true),
		Rival:         pickExtreme(GroupPairs(pairs, KeyOpponent), minSample, false),
		BestStage:     pickExtreme(GroupPairs(pairs, KeyStage), minSample, true),
		RisingTrend:   risingTrend(pairs, minSample, trendWindow),
	}
}

// pickExtreme selects the qualifying group with the highest (or lowest)
// win rate. Rate ties go to the lexicographically smallest name so
// repeated calls agree.
func pickExtreme(groups map[string]Summary, minSample int, wantMax bool) *models.HighlightStat {
	names := make([]string, 0, len(groups))
	for name, s := range groups {
		if s.Games >= minSample {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)

	best := names[0]
	for _, name := range names[1:] {
		if wantMax && groups[name].WinRate > groups[best].WinRate {
			best = name
		}
		if !wantMax && groups[name].WinRate < groups[best].WinRate {
			best = name
		}
	}
	s := groups[best]
	return &models.HighlightStat{Name: best, Games: s.Games, Wins: s.Wins, WinRate: s.WinRate}
}

// risingTrend compares win rate over the most recent games against the
// all-time rate. Recency is by start_time, match id breaking timestamp
// ties. Nil unless the window holds at least minSample games and the
// delta is strictly positive.
func risingTrend(pairs []Pair, minSample, window int) *models.TrendHighlight {
	if len(pairs) < minSample {
		return nil
	}

	ordered := make([]Pair, len(pairs))
	copy(ordered, pairs)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].StartTime.Equal(ordered[j].StartTime) {
			return ordered[i].StartTime.Before(ordered[j].StartTime)
		}
		return ordered[i].MatchID < ordered[j].MatchID
	})

	recent := ordered
	if len(ordered) > window {
		recent = ordered[len(ordered)-window:]
	}
	if len(recent) < minSample {
		return nil
	}

	all := Summarize(pairs)
	rec := Summarize(recent)
	delta := rec.WinRate - all.WinRate
	if delta <= 0 {
		return nil
	}
	return &models.TrendHighlight{
		RecentGames:    rec.Games,
		RecentWinRate:  rec.WinRate,
		OverallWinRate: all.WinRate,
		Delta:          delta,
	}
}
