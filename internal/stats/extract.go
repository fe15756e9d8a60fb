package stats

import (
	"time"

	"github.com/versuslog/stats-api/internal/models"
)

// Pair is the subject-vs-opponent view of one match, the unit everything
// downstream filters and aggregates. Derived per request, never stored.
type Pair struct {
	MatchID   string
	StartTime time.Time
	StageID   string
	Subject   models.ParticipantEntry
	Opponent  models.ParticipantEntry
}

// ExtractPairs flattens match records into pairs whose subject tag equals
// the requested tag (exact, case-sensitive). A two-participant match
// yields one pair; an N-participant match yields one pair per other
// participant. Entries without a usable tag never become a subject and
// are excluded as opponents.
func ExtractPairs(records []models.MatchRecord, tag string) []Pair {
	pairs := make([]Pair, 0, len(records))
	for _, rec := range records {
		for i, subject := range rec.Participants {
			if !subject.HasTag() || subject.PlayerTag != tag {
				continue
			}
			for j, opponent := range rec.Participants {
				if j == i || !opponent.HasTag() {
					continue
				}
				pairs = append(pairs, Pair{
					MatchID:   rec.MatchID,
					StartTime: rec.StartTime,
					StageID:   rec.StageID,
					Subject:   subject,
					Opponent:  opponent,
				})
			}
		}
	}
	return pairs
}

// ExtractAllPairs partitions pairs by subject tag for every player at
// once. One linear scan over the records, for leaderboard and search
// paths that would otherwise rescan per player.
func ExtractAllPairs(records []models.MatchRecord) map[string][]Pair {
	byPlayer := make(map[string][]Pair)
	for _, rec := range records {
		for i, subject := range rec.Participants {
			if !subject.HasTag() {
				continue
			}
			for j, opponent := range rec.Participants {
				if j == i || !opponent.HasTag() {
					continue
				}
				byPlayer[subject.PlayerTag] = append(byPlayer[subject.PlayerTag], Pair{
					MatchID:   rec.MatchID,
					StartTime: rec.StartTime,
					StageID:   rec.StageID,
					Subject:   subject,
					Opponent:  opponent,
				})
			}
		}
	}
	return byPlayer
}
