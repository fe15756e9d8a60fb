package stats

import (
	"testing"
	"time"

	"github.com/versuslog/stats-api/internal/models"
)

var baseTime = time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)

func entry(tag, character string, result models.Result) models.ParticipantEntry {
	return models.ParticipantEntry{PlayerTag: tag, CharacterName: character, Result: result}
}

func mkMatch(id string, offset time.Duration, stage string, entries ...models.ParticipantEntry) models.MatchRecord {
	return models.MatchRecord{
		MatchID:      id,
		StartTime:    baseTime.Add(offset),
		StageID:      stage,
		Participants: entries,
	}
}

// duel builds the common two-participant case with mirrored results.
func duel(id string, offset time.Duration, stage, tagA, charA string, aWon bool, tagB, charB string) models.MatchRecord {
	resA, resB := models.ResultWin, models.ResultLoss
	if !aWon {
		resA, resB = models.ResultLoss, models.ResultWin
	}
	return mkMatch(id, offset, stage, entry(tagA, charA, resA), entry(tagB, charB, resB))
}

func TestExtractPairs_Duel(t *testing.T) {
	records := []models.MatchRecord{
		duel("m1", 0, "battlefield", "A#1", "Fox", true, "B#2", "Marth"),
	}

	pairs := ExtractPairs(records, "A#1")
	if len(pairs) != 1 {
		t.Fatalf("pairs = %d, want 1", len(pairs))
	}
	p := pairs[0]
	if p.Subject.PlayerTag != "A#1" || p.Opponent.PlayerTag != "B#2" {
		t.Errorf("pair = %s vs %s, want A#1 vs B#2", p.Subject.PlayerTag, p.Opponent.PlayerTag)
	}
	if p.Subject.Result != models.ResultWin {
		t.Errorf("subject result = %q, want win", p.Subject.Result)
	}
	if p.MatchID != "m1" || p.StageID != "battlefield" {
		t.Errorf("pair lost match header: %+v", p)
	}

	// Other direction for the other player
	pairs = ExtractPairs(records, "B#2")
	if len(pairs) != 1 {
		t.Fatalf("pairs for B#2 = %d, want 1", len(pairs))
	}
	if pairs[0].Subject.Result != models.ResultLoss {
		t.Errorf("B#2 result = %q, want loss", pairs[0].Subject.Result)
	}
}

func TestExtractPairs_CaseSensitiveTag(t *testing.T) {
	records := []models.MatchRecord{
		duel("m1", 0, "", "Bob#1", "Fox", true, "C#3", "Falco"),
	}
	if got := ExtractPairs(records, "bob#1"); len(got) != 0 {
		t.Errorf("lowercase query matched canonical tag, got %d pairs", len(got))
	}
	if got := ExtractPairs(records, "Bob#1"); len(got) != 1 {
		t.Errorf("exact tag gave %d pairs, want 1", len(got))
	}
}

func TestExtractPairs_FreeForAll(t *testing.T) {
	records := []models.MatchRecord{
		mkMatch("ffa", 0, "stadium",
			entry("A#1", "Fox", models.ResultWin),
			entry("B#2", "Marth", models.ResultLoss),
			entry("C#3", "Peach", models.ResultLoss),
			entry("D#4", "Kirby", models.ResultLoss),
		),
	}

	pairs := ExtractPairs(records, "A#1")
	if len(pairs) != 3 {
		t.Fatalf("pairs = %d, want one per other participant (3)", len(pairs))
	}
	seen := map[string]bool{}
	for _, p := range pairs {
		seen[p.Opponent.PlayerTag] = true
	}
	for _, want := range []string{"B#2", "C#3", "D#4"} {
		if !seen[want] {
			t.Errorf("missing opponent %s", want)
		}
	}
}

func TestExtractPairs_SkipsBlankTags(t *testing.T) {
	records := []models.MatchRecord{
		mkMatch("m1", 0, "",
			entry("A#1", "Fox", models.ResultWin),
			entry("   ", "Marth", models.ResultLoss),
			entry("", "Peach", models.ResultLoss),
		),
	}

	if got := ExtractPairs(records, "A#1"); len(got) != 0 {
		t.Errorf("blank-tag entries used as opponents, got %d pairs", len(got))
	}
	if got := ExtractPairs(records, "   "); len(got) != 0 {
		t.Errorf("blank tag became a subject, got %d pairs", len(got))
	}

	byPlayer := ExtractAllPairs(records)
	if len(byPlayer) != 0 {
		t.Errorf("all-players extraction invented players: %v", byPlayer)
	}
}

func TestExtractPairs_EmptyAndMissingParticipants(t *testing.T) {
	records := []models.MatchRecord{
		{MatchID: "empty", StartTime: baseTime},
		{MatchID: "solo", StartTime: baseTime, Participants: []models.ParticipantEntry{entry("A#1", "Fox", models.ResultWin)}},
		duel("ok", 0, "", "A#1", "Fox", true, "B#2", "Marth"),
	}

	pairs := ExtractPairs(records, "A#1")
	if len(pairs) != 1 {
		t.Fatalf("pairs = %d, want 1 (only the well-formed match)", len(pairs))
	}
	if pairs[0].MatchID != "ok" {
		t.Errorf("pair from %q, want ok", pairs[0].MatchID)
	}
}

func TestExtractAllPairs_BothDirections(t *testing.T) {
	records := []models.MatchRecord{
		duel("m1", 0, "", "A#1", "Fox", true, "B#2", "Marth"),
		duel("m2", time.Hour, "", "A#1", "Fox", false, "C#3", "Peach"),
	}

	byPlayer := ExtractAllPairs(records)
	if len(byPlayer) != 3 {
		t.Fatalf("players = %d, want 3", len(byPlayer))
	}
	if len(byPlayer["A#1"]) != 2 {
		t.Errorf("A#1 pairs = %d, want 2", len(byPlayer["A#1"]))
	}
	if len(byPlayer["B#2"]) != 1 || len(byPlayer["C#3"]) != 1 {
		t.Errorf("opponents should each get their own direction: B=%d C=%d",
			len(byPlayer["B#2"]), len(byPlayer["C#3"]))
	}
	if byPlayer["B#2"][0].Opponent.PlayerTag != "A#1" {
		t.Errorf("B#2 opponent = %q, want A#1", byPlayer["B#2"][0].Opponent.PlayerTag)
	}
}

func TestMatchTag(t *testing.T) {
	cases := []struct {
		tag   string
		query string
		want  bool
	}{
		{"BOB#1", "b", true},
		{"BOB#1", "bob", true},
		{"BOB#1", "OB#", true},
		{"alice#2", "b", false},
		{"alice#2", "ALICE", true},
		{"BOB#1", "", true},
		{"BOB#1", "bob#12", false},
	}
	for _, tc := range cases {
		if got := MatchTag(tc.tag, tc.query); got != tc.want {
			t.Errorf("MatchTag(%q, %q) = %v, want %v", tc.tag, tc.query, got, tc.want)
		}
	}
}
