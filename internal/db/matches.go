package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/versuslog/stats-api/internal/models"
)

// StoredMatch is one match headed for the matches table.
type StoredMatch struct {
	Record   models.MatchRecord
	ClientID string
}

// MatchStore reads and writes the denormalized match rows the analysis
// core consumes.
type MatchStore struct {
	pool   Querier
	logger *zap.SugaredLogger
}

func NewMatchStore(pool Querier, logger *zap.SugaredLogger) *MatchStore {
	return &MatchStore{pool: pool, logger: logger}
}

// InsertBatch writes matches in one round trip. Conflicting match ids are
// left untouched so re-uploaded replays stay idempotent. Returns how many
// rows were actually inserted.
func (s *MatchStore) InsertBatch(ctx context.Context, matches []StoredMatch) (int, error) {
	if len(matches) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, m := range matches {
		participants, err := json.Marshal(m.Record.Participants)
		if err != nil {
			return 0, fmt.Errorf("encode participants: %w", err)
		}
		batch.Queue(`
			INSERT INTO matches (match_id, client_id, start_time, stage_id, participants)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (match_id) DO NOTHING
		`, m.Record.MatchID, m.ClientID, m.Record.StartTime, m.Record.StageID, participants)
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for range matches {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("insert match: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

// ListAll returns every stored match, oldest first.
func (s *MatchStore) ListAll(ctx context.Context) ([]models.MatchRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT match_id, start_time, stage_id, participants
		FROM matches
		ORDER BY start_time ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	return s.collectRecords(rows)
}

// ListByTag returns the matches containing the given player tag, oldest
// first, via JSONB containment so the GIN index carries the lookup.
func (s *MatchStore) ListByTag(ctx context.Context, tag string) ([]models.MatchRecord, error) {
	needle, err := json.Marshal([]map[string]string{{"player_tag": tag}})
	if err != nil {
		return nil, fmt.Errorf("encode tag probe: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT match_id, start_time, stage_id, participants
		FROM matches
		WHERE participants @> $1
		ORDER BY start_time ASC
	`, needle)
	if err != nil {
		return nil, fmt.Errorf("query matches by tag: %w", err)
	}
	defer rows.Close()

	return s.collectRecords(rows)
}

// collectRecords scans rows into records. A row whose embedded
// participant JSON no longer decodes is skipped, not fatal: one bad
// match must never take down a whole analysis.
func (s *MatchStore) collectRecords(rows pgx.Rows) ([]models.MatchRecord, error) {
	records := make([]models.MatchRecord, 0, 64)
	skipped := 0

	for rows.Next() {
		var (
			rec models.MatchRecord
			raw []byte
		)
		if err := rows.Scan(&rec.MatchID, &rec.StartTime, &rec.StageID, &raw); err != nil {
			skipped++
			continue
		}
		if err := json.Unmarshal(raw, &rec.Participants); err != nil {
			skipped++
			s.logger.Debugw("skipping match with undecodable participants",
				"match_id", rec.MatchID, "error", err)
			continue
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read matches: %w", err)
	}

	if skipped > 0 {
		s.logger.Warnw("skipped malformed match rows", "count", skipped)
	}
	return records, nil
}

// CountSince reports matches stored at or after the cutoff, for the
// readiness payload.
func (s *MatchStore) CountSince(ctx context.Context, cutoff time.Time) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM matches WHERE created_at >= $1`, cutoff).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count matches: %w", err)
	}
	return n, nil
}
