package stats

import (
	"sort"

	"github.com/versuslog/stats-api/internal/models"
)

// ApplyFilter keeps the pairs matching every facet of the filter: own
// character, opponent tag, opponent character. An empty result is valid,
// it means zero games matched.
func ApplyFilter(pairs []Pair, filter models.AnalysisFilter) []Pair {
	if filter.IsAll() {
		return pairs
	}
	out := make([]Pair, 0, len(pairs))
	for _, p := range pairs {
		if !filter.Character.Matches(p.Subject.CharacterName) {
			continue
		}
		if !filter.Opponent.Matches(p.Opponent.PlayerTag) {
			continue
		}
		if !filter.OpponentCharacter.Matches(p.Opponent.CharacterName) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Options collects the distinct non-empty facet values across a pair set.
// Callers pass the unfiltered set so a UI can keep offering every option
// while a filter is active.
func Options(pairs []Pair) models.FilterOptions {
	characters := make(map[string]struct{})
	opponents := make(map[string]struct{})
	opponentCharacters := make(map[string]struct{})

	for _, p := range pairs {
		if p.Subject.CharacterName != "" {
			characters[p.Subject.CharacterName] = struct{}{}
		}
		if p.Opponent.PlayerTag != "" {
			opponents[p.Opponent.PlayerTag] = struct{}{}
		}
		if p.Opponent.CharacterName != "" {
			opponentCharacters[p.Opponent.CharacterName] = struct{}{}
		}
	}

	return models.FilterOptions{
		Characters:         sortedKeys(characters),
		Opponents:          sortedKeys(opponents),
		OpponentCharacters: sortedKeys(opponentCharacters),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
