package models

import (
	"strings"
	"time"
)

// Result is the recorded outcome for one participant of a match.
type Result string

const (
	ResultWin     Result = "win"
	ResultLoss    Result = "loss"
	ResultUnknown Result = ""
)

// ParseResult canonicalizes the many result spellings uploaders produce
// ("Win", "W", "1", "true", ...). Anything unrecognized maps to
// ResultUnknown, which counts toward games played but never toward wins
// or losses.
func ParseResult(s string) Result {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "win", "w", "won", "victory", "1", "true":
		return ResultWin
	case "loss", "lose", "lost", "l", "defeat", "0", "false":
		return ResultLoss
	default:
		return ResultUnknown
	}
}

// ParticipantEntry is one player's slot inside a match record. Tags with
// only whitespace are treated as empty and excluded from all aggregation.
type ParticipantEntry struct {
	PlayerTag     string `json:"player_tag"`
	CharacterName string `json:"character_name,omitempty"`
	Result        Result `json:"result,omitempty"`
}

// HasTag reports whether the entry carries a usable player tag.
func (p ParticipantEntry) HasTag() bool {
	return strings.TrimSpace(p.PlayerTag) != ""
}

// MatchRecord is one completed match as read back from storage: a flat
// header plus the embedded participant list. Records are immutable once
// stored.
type MatchRecord struct {
	MatchID      string             `json:"match_id"`
	StartTime    time.Time          `json:"start_time"`
	StageID      string             `json:"stage_id,omitempty"`
	Participants []ParticipantEntry `json:"participants"`
}

// MatchUpload is the incoming match report from replay clients. Clients
// may omit match_id; the server assigns one. Decoding is tolerant of
// string-encoded numbers and epoch timestamps, see flex_json.go.
type MatchUpload struct {
	MatchID      string             `json:"match_id,omitempty"`
	StartTime    time.Time          `json:"start_time" validate:"required"`
	StageID      string             `json:"stage_id,omitempty"`
	Participants []ParticipantEntry `json:"participants" validate:"required,min=2"`
}

// Record converts a validated upload into the canonical stored form.
func (u MatchUpload) Record() MatchRecord {
	return MatchRecord{
		MatchID:      u.MatchID,
		StartTime:    u.StartTime,
		StageID:      u.StageID,
		Participants: u.Participants,
	}
}

// RecentMatchView is one row of a player's recent match history.
type RecentMatchView struct {
	MatchID           string    `json:"match_id"`
	StartTime         time.Time `json:"start_time"`
	StageID           string    `json:"stage_id,omitempty"`
	CharacterName     string    `json:"character_name,omitempty"`
	OpponentTag       string    `json:"opponent_tag"`
	OpponentCharacter string    `json:"opponent_character,omitempty"`
	Result            Result    `json:"result,omitempty"`
}
