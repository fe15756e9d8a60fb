package worker

import (
	"context"
	"sync"
	"time"

	"github.com/versuslog/stats-api/internal/db"
)

// MockMatchWriter collects inserted batches for inspection.
type MockMatchWriter struct {
	mu              sync.Mutex
	Inserted        []db.StoredMatch
	InsertBatchFunc func(ctx context.Context, matches []db.StoredMatch) (int, error)
}

func (m *MockMatchWriter) InsertBatch(ctx context.Context, matches []db.StoredMatch) (int, error) {
	if m.InsertBatchFunc != nil {
		return m.InsertBatchFunc(ctx, matches)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Inserted = append(m.Inserted, matches...)
	return len(matches), nil
}

func (m *MockMatchWriter) InsertedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Inserted)
}

// MockDirectoryUpserter accumulates the per-tag counts it was handed.
type MockDirectoryUpserter struct {
	mu             sync.Mutex
	Counts         map[string]int
	UpsertSeenFunc func(ctx context.Context, counts map[string]int, seenAt time.Time) error
}

func (m *MockDirectoryUpserter) UpsertSeen(ctx context.Context, counts map[string]int, seenAt time.Time) error {
	if m.UpsertSeenFunc != nil {
		return m.UpsertSeenFunc(ctx, counts, seenAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Counts == nil {
		m.Counts = make(map[string]int)
	}
	for tag, n := range counts {
		m.Counts[tag] += n
	}
	return nil
}

func (m *MockDirectoryUpserter) CountFor(tag string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Counts[tag]
}
