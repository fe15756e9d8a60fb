package db

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// PlayerDirectory tracks every tag that has appeared in an accepted
// match. It backs the distinction between an unknown player and a
// known player with no recorded games.
type PlayerDirectory struct {
	pool   Querier
	logger *zap.SugaredLogger
}

func NewPlayerDirectory(pool Querier, logger *zap.SugaredLogger) *PlayerDirectory {
	return &PlayerDirectory{pool: pool, logger: logger}
}

// UpsertSeen records that each tag appeared in count matches at seenAt.
// Tags are processed in sorted order so concurrent batches take row
// locks in a consistent order.
func (d *PlayerDirectory) UpsertSeen(ctx context.Context, counts map[string]int, seenAt time.Time) error {
	if len(counts) == 0 {
		return nil
	}

	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	batch := &pgx.Batch{}
	for _, tag := range tags {
		batch.Queue(`
			INSERT INTO players (tag, games_count, first_seen, last_seen)
			VALUES ($1, $2, $3, $3)
			ON CONFLICT (tag) DO UPDATE
			SET games_count = players.games_count + EXCLUDED.games_count,
			    last_seen = GREATEST(players.last_seen, EXCLUDED.last_seen)
		`, tag, counts[tag], seenAt)
	}

	results := d.pool.SendBatch(ctx, batch)
	defer results.Close()

	for _, tag := range tags {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("upsert player %s: %w", tag, err)
		}
	}
	return nil
}

// Exists reports whether the tag has ever been seen.
func (d *PlayerDirectory) Exists(ctx context.Context, tag string) (bool, error) {
	var found bool
	err := d.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM players WHERE tag = $1)`, tag).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("check player: %w", err)
	}
	return found, nil
}
