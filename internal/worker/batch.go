package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/ppiankov/wordbank/internal/model"
	"github.com/ppiankov/wordbank/internal/score"
)

// Scorer scores a nullable text field
type Scorer interface {
	ScoreField(text *string) score.Result
}

// ScoreJob scores a single record
type ScoreJob struct {
	Position int // slot in the output slice
	Record   model.Record
	Scorer   Scorer
	done     *atomic.Int64
	progress func()
}

// Execute executes the score job
func (j *ScoreJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &ScoreResult{Position: j.Position, Scored: model.ScoredRecord{Record: j.Record}, Error: err}
	}

	result := j.Scorer.ScoreField(j.Record.Text)

	if j.done != nil {
		j.done.Add(1)
	}
	if j.progress != nil {
		j.progress()
	}

	return &ScoreResult{
		Position: j.Position,
		Scored:   model.ScoredRecord{Record: j.Record, Result: result},
	}
}

// ScoreResult represents the result of a score job
type ScoreResult struct {
	Position int
	Scored   model.ScoredRecord
	Error    error
}

// GetError returns the error from the score result
func (r *ScoreResult) GetError() error {
	return r.Error
}

// BatchProcessor scores records concurrently
type BatchProcessor struct {
	scorer      Scorer
	concurrency int
	logger      *slog.Logger
	progress    *rate.Sometimes
}

// NewBatchProcessor creates a new batch processor. Progress is logged at most
// once per progressInterval; zero disables progress logging.
func NewBatchProcessor(scorer Scorer, concurrency int, logger *slog.Logger, progressInterval time.Duration) *BatchProcessor {
	if logger == nil {
		logger = slog.Default()
	}

	b := &BatchProcessor{
		scorer:      scorer,
		concurrency: concurrency,
		logger:      logger,
	}
	if progressInterval > 0 {
		b.progress = &rate.Sometimes{Interval: progressInterval}
	}
	return b
}

// ProcessRecords scores every record and returns the results in input order.
// If ctx ends before all records are scored, the context error is returned.
func (b *BatchProcessor) ProcessRecords(ctx context.Context, records []model.Record) ([]model.ScoredRecord, error) {
	if len(records) == 0 {
		return []model.ScoredRecord{}, nil
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	var done atomic.Int64
	total := len(records)
	report := b.reporter(&done, total)

	for i, rec := range records {
		job := &ScoreJob{
			Position: i,
			Record:   rec,
			Scorer:   b.scorer,
			done:     &done,
			progress: report,
		}
		if !pool.Submit(job) {
			break
		}
	}

	results := pool.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("score records: %w", err)
	}

	scored := make([]model.ScoredRecord, total)
	filled := 0
	for _, r := range results {
		res := r.(*ScoreResult)
		if res.Error != nil {
			return nil, fmt.Errorf("score record %d: %w", res.Scored.Index, res.Error)
		}
		scored[res.Position] = res.Scored
		filled++
	}
	if filled != total {
		return nil, fmt.Errorf("score records: %d of %d completed", filled, total)
	}

	return scored, nil
}

func (b *BatchProcessor) reporter(done *atomic.Int64, total int) func() {
	if b.progress == nil {
		return nil
	}
	return func() {
		b.progress.Do(func() {
			b.logger.Info("scoring progress", "done", done.Load(), "total", total)
		})
	}
}
