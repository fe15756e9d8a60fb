package stats

import (
	"time"

	"github.com/versuslog/stats-api/internal/models"
)

// Summary is the count line shared by every aggregation level. Unknown
// results count toward Games but never toward Wins.
type Summary struct {
	Games   int
	Wins    int
	WinRate float64
}

// Rate is wins over games, defined as 0 when games is 0.
func Rate(wins, games int) float64 {
	if games == 0 {
		return 0
	}
	return float64(wins) / float64(games)
}

// Summarize counts one pair set.
func Summarize(pairs []Pair) Summary {
	s := Summary{Games: len(pairs)}
	for _, p := range pairs {
		if p.Subject.Result == models.ResultWin {
			s.Wins++
		}
	}
	s.WinRate = Rate(s.Wins, s.Games)
	return s
}

// Key functions for GroupPairs. An empty key drops the pair from the
// grouping without affecting any other bucket.

func KeyCharacter(p Pair) string { return p.Subject.CharacterName }

func KeyOpponent(p Pair) string { return p.Opponent.PlayerTag }

func KeyOpponentCharacter(p Pair) string { return p.Opponent.CharacterName }

func KeyStage(p Pair) string { return p.StageID }

// KeyDay truncates start_time to its date as recorded, no timezone
// conversion. Records without a start time fall out of the grouping.
func KeyDay(p Pair) string {
	if p.StartTime.IsZero() {
		return ""
	}
	return p.StartTime.Format("2006-01-02")
}

// GroupPairs partitions pairs by key and summarizes each partition.
func GroupPairs(pairs []Pair, key func(Pair) string) map[string]Summary {
	groups := make(map[string]Summary)
	for _, p := range pairs {
		k := key(p)
		if k == "" {
			continue
		}
		s := groups[k]
		s.Games++
		if p.Subject.Result == models.ResultWin {
			s.Wins++
		}
		groups[k] = s
	}
	for k, s := range groups {
		s.WinRate = Rate(s.Wins, s.Games)
		groups[k] = s
	}
	return groups
}

// MostPlayed returns the character with the most subject appearances,
// empty when no pair names a character. Ties go to the character seen
// first in pair order, so identical input always gives the same answer.
func MostPlayed(pairs []Pair) string {
	counts := make(map[string]int)
	order := make([]string, 0, 8)
	for _, p := range pairs {
		name := p.Subject.CharacterName
		if name == "" {
			continue
		}
		if _, seen := counts[name]; !seen {
			order = append(order, name)
		}
		counts[name]++
	}

	best := ""
	bestCount := 0
	for _, name := range order {
		if counts[name] > bestCount {
			best = name
			bestCount = counts[name]
		}
	}
	return best
}

// LastGameTime returns the latest start_time across the pairs, nil when
// there are none (or none carry a timestamp).
func LastGameTime(pairs []Pair) *time.Time {
	var last time.Time
	for _, p := range pairs {
		if p.StartTime.After(last) {
			last = p.StartTime
		}
	}
	if last.IsZero() {
		return nil
	}
	return &last
}
