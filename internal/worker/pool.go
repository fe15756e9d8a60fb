// Package worker implements the buffered worker pool between the ingest
// endpoint and Postgres. It decouples HTTP request handling from storage
// writes, sheds load when the queue is full, batches inserts, and flushes
// everything on shutdown.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/versuslog/stats-api/internal/db"
	"github.com/versuslog/stats-api/internal/models"
)

// Prometheus metrics
var (
	matchesEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "versus_matches_enqueued_total",
		Help: "Total number of match records accepted into the ingest queue",
	})

	matchesStored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "versus_matches_stored_total",
		Help: "Total number of match records written to storage",
	})

	matchesDuplicate = promauto.NewCounter(prometheus.CounterOpts{
		Name: "versus_matches_duplicate_total",
		Help: "Total number of match records skipped as already stored",
	})

	matchesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "versus_matches_failed_total",
		Help: "Total number of match records that failed to store",
	})

	matchesLoadShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "versus_matches_load_shed_total",
		Help: "Total number of match records dropped because the queue was full",
	})

	ingestQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "versus_ingest_queue_depth",
		Help: "Current depth of the ingest queue",
	})

	batchInsertDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "versus_batch_insert_duration_seconds",
		Help:    "Duration of batch inserts to Postgres",
		Buckets: prometheus.DefBuckets,
	})
)

// MatchWriter is the write side of match storage.
type MatchWriter interface {
	InsertBatch(ctx context.Context, matches []db.StoredMatch) (int, error)
}

// DirectoryUpserter records which tags appeared in stored matches.
type DirectoryUpserter interface {
	UpsertSeen(ctx context.Context, counts map[string]int, seenAt time.Time) error
}

// Job is one match record waiting to be stored.
type Job struct {
	Record   models.MatchRecord
	ClientID string
	Received time.Time
}

// PoolConfig configures the ingest pool.
type PoolConfig struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	Matches       MatchWriter
	Players       DirectoryUpserter
	Logger        *zap.Logger
}

// Pool fans match records out to workers that write them in batches.
type Pool struct {
	config   PoolConfig
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
	logger   *zap.SugaredLogger
}

// NewPool creates an ingest pool. Zero config values fall back to
// serviceable defaults.
func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 4096
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 200
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}

	return &Pool{
		config:   cfg,
		jobQueue: make(chan Job, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	go p.reportQueueDepth()

	p.logger.Infow("ingest pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"batchSize", p.config.BatchSize,
	)
}

// Stop drains the queue, flushes pending batches, and waits for the
// workers to exit.
func (p *Pool) Stop() {
	p.logger.Info("stopping ingest pool")
	p.stopOnce.Do(func() {
		close(p.jobQueue)
	})
	p.wg.Wait()
	if p.cancel != nil {
		p.cancel()
	}
	p.logger.Info("ingest pool stopped")
}

// Enqueue offers a match record to the pool. It never blocks: when the
// queue is full the record is shed and false returned, so a slow
// database stalls uploads instead of the whole API.
func (p *Pool) Enqueue(record models.MatchRecord, clientID string) (ok bool) {
	job := Job{
		Record:   record,
		ClientID: clientID,
		Received: time.Now(),
	}

	// Enqueue after Stop sends on a closed channel.
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warnw("enqueue on stopped pool", "match_id", record.MatchID)
			ok = false
		}
	}()

	select {
	case p.jobQueue <- job:
		matchesEnqueued.Inc()
		return true
	default:
		matchesLoadShed.Inc()
		p.logger.Warnw("ingest queue full, shedding match", "match_id", record.MatchID)
		return false
	}
}

// QueueDepth returns the current queue size.
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	batch := make([]Job, 0, p.config.BatchSize)
	ticker := time.NewTicker(p.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		start := time.Now()
		if err := p.processBatch(batch); err != nil {
			p.logger.Errorw("batch store failed",
				"worker", id,
				"batchSize", len(batch),
				"error", err,
			)
			matchesFailed.Add(float64(len(batch)))
		} else {
			p.logger.Debugw("batch stored",
				"worker", id,
				"batchSize", len(batch),
				"duration", time.Since(start),
			)
		}
		batchInsertDuration.Observe(time.Since(start).Seconds())

		batch = batch[:0]
	}

	for {
		select {
		case job, ok := <-p.jobQueue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, job)
			if len(batch) >= p.config.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()

		case <-p.ctx.Done():
			flush()
			return
		}
	}
}

// processBatch writes one batch: the match rows first, then the player
// directory entries for every tag seen in the batch. Directory failures
// are logged but do not fail the batch; the directory is advisory.
func (p *Pool) processBatch(batch []Job) error {
	ctx := context.Background()

	matches := make([]db.StoredMatch, 0, len(batch))
	counts := make(map[string]int)
	var latest time.Time

	for _, job := range batch {
		matches = append(matches, db.StoredMatch{Record: job.Record, ClientID: job.ClientID})

		seen := make(map[string]struct{}, len(job.Record.Participants))
		for _, part := range job.Record.Participants {
			if !part.HasTag() {
				continue
			}
			if _, dup := seen[part.PlayerTag]; dup {
				continue
			}
			seen[part.PlayerTag] = struct{}{}
			counts[part.PlayerTag]++
		}

		if job.Record.StartTime.After(latest) {
			latest = job.Record.StartTime
		}
	}
	if latest.IsZero() {
		latest = time.Now()
	}

	inserted, err := p.config.Matches.InsertBatch(ctx, matches)
	if err != nil {
		return fmt.Errorf("insert matches: %w", err)
	}
	matchesStored.Add(float64(inserted))
	if dup := len(matches) - inserted; dup > 0 {
		matchesDuplicate.Add(float64(dup))
	}

	if err := p.config.Players.UpsertSeen(ctx, counts, latest); err != nil {
		p.logger.Warnw("player directory upsert failed",
			"players", len(counts),
			"error", err,
		)
	}

	return nil
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ingestQueueDepth.Set(float64(len(p.jobQueue)))
		case <-p.ctx.Done():
			return
		}
	}
}
