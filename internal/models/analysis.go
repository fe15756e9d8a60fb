package models

// FacetStat is the per-group line inside a detailed analysis: one entry
// per character, opponent, or opponent character.
type FacetStat struct {
	Games   int     `json:"games"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"win_rate"`
}

// DateStat is the per-day line of the time series.
type DateStat struct {
	Games   int     `json:"games"`
	WinRate float64 `json:"win_rate"`
}

// FilterOptions lists the distinct facet values present in a player's
// unfiltered history, sorted ascending. Always computed from the full
// set so filter UIs keep offering every option.
type FilterOptions struct {
	Characters         []string `json:"characters"`
	Opponents          []string `json:"opponents"`
	OpponentCharacters []string `json:"opponent_characters"`
}

// DetailedAnalysisResult is the filter-aware analysis payload. The maps
// are keyed by facet value (date_stats by ISO date) and are never nil,
// so empty results serialize as {} rather than null.
type DetailedAnalysisResult struct {
	TotalGames             int                  `json:"total_games"`
	Wins                   int                  `json:"wins"`
	OverallWinrate         float64              `json:"overall_winrate"`
	AppliedFilters         AnalysisFilter       `json:"applied_filters"`
	CharacterStats         map[string]FacetStat `json:"character_stats"`
	OpponentStats          map[string]FacetStat `json:"opponent_stats"`
	OpponentCharacterStats map[string]FacetStat `json:"opponent_character_stats"`
	DateStats              map[string]DateStat  `json:"date_stats"`
	FilterOptions          FilterOptions        `json:"filter_options"`
}
