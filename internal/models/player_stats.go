package models

import "time"

// PlayerStatsSummary is the basic per-player line: totals plus the two
// convenience fields profile pages lead with. Computed fresh per request,
// never persisted.
type PlayerStatsSummary struct {
	PlayerTag           string     `json:"player_tag"`
	TotalGames          int        `json:"total_games"`
	Wins                int        `json:"wins"`
	Losses              int        `json:"losses"`
	WinRate             float64    `json:"win_rate"`
	MostPlayedCharacter string     `json:"most_played_character,omitempty"`
	LastGameTime        *time.Time `json:"last_game_time,omitempty"`
}

// HighlightStat names the group behind a highlight (a character, an
// opponent tag, a stage) with its sample.
type HighlightStat struct {
	Name    string  `json:"name"`
	Games   int     `json:"games"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"win_rate"`
}

// TrendHighlight compares the recent window against the all-time rate.
type TrendHighlight struct {
	RecentGames    int     `json:"recent_games"`
	RecentWinRate  float64 `json:"recent_win_rate"`
	OverallWinRate float64 `json:"overall_win_rate"`
	Delta          float64 `json:"delta"`
}

// PlayerHighlights carries the derived best/worst picks for a player.
// Every field is nil when no group reaches the minimum sample size.
type PlayerHighlights struct {
	BestCharacter *HighlightStat  `json:"best_character,omitempty"`
	Rival         *HighlightStat  `json:"rival,omitempty"`
	BestStage     *HighlightStat  `json:"best_stage,omitempty"`
	RisingTrend   *TrendHighlight `json:"rising_trend,omitempty"`
}

// PlayerOverviewResponse is the profile endpoint payload.
type PlayerOverviewResponse struct {
	Player     PlayerStatsSummary `json:"player"`
	Highlights PlayerHighlights   `json:"highlights"`
}
