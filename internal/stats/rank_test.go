package stats

import (
	"math"
	"testing"
	"time"

	"github.com/versuslog/stats-api/internal/models"
)

// series appends n duels for tag, the first wins of them won.
func series(records []models.MatchRecord, tag string, n, wins int, opponent string) []models.MatchRecord {
	for i := 0; i < n; i++ {
		id := tag + "-" + opponent + "-" + string(rune('a'+i))
		records = append(records, duel(id, time.Duration(len(records))*time.Hour, "fd",
			tag, "Fox", i < wins, opponent, "Marth"))
	}
	return records
}

func TestBuildSummary(t *testing.T) {
	var records []models.MatchRecord
	records = series(records, "A#1", 4, 3, "B#2")
	records = append(records, mkMatch("unk", 100*time.Hour, "",
		entry("A#1", "Fox", models.ResultUnknown),
		entry("B#2", "Marth", models.ResultUnknown),
	))

	s := BuildSummary("A#1", ExtractPairs(records, "A#1"))
	if s.PlayerTag != "A#1" {
		t.Errorf("tag = %q", s.PlayerTag)
	}
	if s.TotalGames != 5 || s.Wins != 3 {
		t.Errorf("games/wins = %d/%d, want 5/3", s.TotalGames, s.Wins)
	}
	// Losses fold unknown results in: total minus wins.
	if s.Losses != 2 {
		t.Errorf("losses = %d, want 2", s.Losses)
	}
	if math.Abs(s.WinRate-0.6) > 1e-9 {
		t.Errorf("win rate = %f, want 0.6", s.WinRate)
	}
	if s.MostPlayedCharacter != "Fox" {
		t.Errorf("most played = %q, want Fox", s.MostPlayedCharacter)
	}
	if s.LastGameTime == nil || !s.LastGameTime.Equal(baseTime.Add(100*time.Hour)) {
		t.Errorf("last game time = %v", s.LastGameTime)
	}
}

func TestLeaderboard_OrderAndThreshold(t *testing.T) {
	var records []models.MatchRecord
	records = series(records, "ACE#1", 10, 8, "X#9")   // 0.8 over 10
	records = series(records, "BEE#2", 20, 16, "X#9")  // 0.8 over 20
	records = series(records, "CAT#3", 10, 5, "X#9")   // 0.5 over 10
	records = series(records, "NEW#4", 2, 2, "X#9")    // 1.0 but only 2 games

	board := Leaderboard(ExtractAllPairs(records), 5)

	tags := make([]string, len(board))
	for i, s := range board {
		tags[i] = s.PlayerTag
	}
	// X#9 played 42 games losing most, lands last; NEW#4 is excluded
	// despite the perfect rate.
	want := []string{"BEE#2", "ACE#1", "CAT#3", "X#9"}
	if len(tags) != len(want) {
		t.Fatalf("board = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("board = %v, want %v", tags, want)
		}
	}
	if board[0].TotalGames != 20 {
		t.Errorf("equal rates must rank more games first, got %+v", board[0])
	}
}

func TestLeaderboard_TagTieBreak(t *testing.T) {
	var records []models.MatchRecord
	records = series(records, "zed#1", 6, 3, "Q#0")
	records = series(records, "amy#2", 6, 3, "Q#0")

	board := Leaderboard(ExtractAllPairs(records), 6)
	if len(board) != 2 {
		t.Fatalf("board size = %d, want 2", len(board))
	}
	if board[0].PlayerTag != "amy#2" || board[1].PlayerTag != "zed#1" {
		t.Errorf("identical rate and games should order by tag: %q, %q",
			board[0].PlayerTag, board[1].PlayerTag)
	}
}

func TestLeaderboard_Deterministic(t *testing.T) {
	var records []models.MatchRecord
	for _, tag := range []string{"P#1", "P#2", "P#3", "P#4", "P#5"} {
		records = series(records, tag, 4, 2, "X#9")
	}
	byPlayer := ExtractAllPairs(records)

	first := Leaderboard(byPlayer, 0)
	for i := 0; i < 20; i++ {
		again := Leaderboard(byPlayer, 0)
		for j := range first {
			if again[j].PlayerTag != first[j].PlayerTag {
				t.Fatalf("run %d: position %d changed from %q to %q",
					i, j, first[j].PlayerTag, again[j].PlayerTag)
			}
		}
	}
}

func TestHighlights_MinSample(t *testing.T) {
	var records []models.MatchRecord
	records = series(records, "A#1", 2, 2, "B#2")

	h := Highlights(ExtractPairs(records, "A#1"), 3, 10)
	if h.BestCharacter != nil || h.Rival != nil || h.BestStage != nil || h.RisingTrend != nil {
		t.Errorf("two games should produce no highlights, got %+v", h)
	}
}

func TestHighlights_BestAndRival(t *testing.T) {
	var records []models.MatchRecord
	// 4-1 vs B#2, 1-3 vs C#3
	records = series(records, "A#1", 5, 4, "B#2")
	records = series(records, "A#1", 4, 1, "C#3")
	// 3 games on battlefield all wins, on top of the fd series above
	for i := 0; i < 3; i++ {
		records = append(records, duel("bf-"+string(rune('a'+i)), time.Duration(50+i)*time.Hour,
			"battlefield", "A#1", "Falco", true, "D#4", "Kirby"))
	}

	h := Highlights(ExtractPairs(records, "A#1"), 3, 10)

	if h.Rival == nil || h.Rival.Name != "C#3" {
		t.Fatalf("rival = %+v, want C#3", h.Rival)
	}
	if h.Rival.Games != 4 || h.Rival.Wins != 1 {
		t.Errorf("rival sample = %d/%d, want 4 games 1 win", h.Rival.Games, h.Rival.Wins)
	}
	if h.BestStage == nil || h.BestStage.Name != "battlefield" {
		t.Fatalf("best stage = %+v, want battlefield", h.BestStage)
	}
	if h.BestStage.WinRate != 1 {
		t.Errorf("best stage rate = %f, want 1", h.BestStage.WinRate)
	}
	if h.BestCharacter == nil || h.BestCharacter.Name != "Falco" {
		t.Errorf("best character = %+v, want Falco (3-0)", h.BestCharacter)
	}
}

func TestHighlights_RisingTrend(t *testing.T) {
	// 10 early losses then 10 late wins: recent window is all wins.
	var records []models.MatchRecord
	records = series(records, "A#1", 10, 0, "B#2")
	for i := 0; i < 10; i++ {
		records = append(records, duel("late-"+string(rune('a'+i)),
			time.Duration(100+i)*time.Hour, "fd", "A#1", "Fox", true, "B#2", "Marth"))
	}

	h := Highlights(ExtractPairs(records, "A#1"), 3, 10)
	if h.RisingTrend == nil {
		t.Fatal("rising trend = nil, want positive delta")
	}
	tr := h.RisingTrend
	if tr.RecentGames != 10 || tr.RecentWinRate != 1 {
		t.Errorf("recent = %d games at %f, want 10 at 1.0", tr.RecentGames, tr.RecentWinRate)
	}
	if tr.OverallWinRate != 0.5 {
		t.Errorf("overall = %f, want 0.5", tr.OverallWinRate)
	}
	if math.Abs(tr.Delta-0.5) > 1e-9 {
		t.Errorf("delta = %f, want 0.5", tr.Delta)
	}
}

func TestHighlights_NoTrendWhenDeclining(t *testing.T) {
	// 10 early wins then 10 late losses: delta is negative.
	var records []models.MatchRecord
	records = series(records, "A#1", 10, 10, "B#2")
	for i := 0; i < 10; i++ {
		records = append(records, duel("late-"+string(rune('a'+i)),
			time.Duration(100+i)*time.Hour, "fd", "A#1", "Fox", false, "B#2", "Marth"))
	}

	h := Highlights(ExtractPairs(records, "A#1"), 3, 10)
	if h.RisingTrend != nil {
		t.Errorf("declining player got a rising trend: %+v", h.RisingTrend)
	}
}

func TestHighlights_FlatIsNotRising(t *testing.T) {
	var records []models.MatchRecord
	records = series(records, "A#1", 20, 10, "B#2")

	// Window covers the whole history, so delta is exactly 0.
	h := Highlights(ExtractPairs(records, "A#1"), 3, 20)
	if h.RisingTrend != nil {
		t.Errorf("zero delta surfaced as rising: %+v", h.RisingTrend)
	}
}
