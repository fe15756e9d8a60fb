package models

// LeaderboardEntry is one ranked row. Rank starts at 1 and follows the
// deterministic ordering: win_rate desc, total_games desc, tag asc.
type LeaderboardEntry struct {
	Rank int `json:"rank"`
	PlayerStatsSummary
}

// LeaderboardResponse wraps the ranked rows with the query echo.
type LeaderboardResponse struct {
	Entries  []LeaderboardEntry `json:"entries"`
	Total    int                `json:"total"`
	MinGames int                `json:"min_games"`
}

// SearchResponse is the fuzzy player search payload, ranked by
// total_games descending.
type SearchResponse struct {
	Query   string               `json:"query"`
	Players []PlayerStatsSummary `json:"players"`
	Count   int                  `json:"count"`
}
