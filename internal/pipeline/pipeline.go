package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/ppiankov/wordbank/internal/cache"
	"github.com/ppiankov/wordbank/internal/lexicon"
	"github.com/ppiankov/wordbank/internal/model"
	"github.com/ppiankov/wordbank/internal/score"
	"github.com/ppiankov/wordbank/internal/util"
	"github.com/ppiankov/wordbank/internal/worker"
)

const (
	// DefaultUserAgent identifies remote input downloads
	DefaultUserAgent = "wordbank/0.1 (+https://github.com/ppiankov/wordbank)"

	progressInterval = 2 * time.Second
)

// Pipeline scores CSV batches
type Pipeline struct {
	config  *model.Config
	lexicon *lexicon.Lexicon
	scorer  *score.Scorer
	cached  *CachedScorer // nil when caching is disabled
	fetcher *Fetcher
	logger  *slog.Logger
}

// NewPipeline loads the configured lexicon and wires the scorer, cache and fetcher
func NewPipeline(cfg *model.Config, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}

	lex, err := LoadLexicon(cfg.Lexicon.Path)
	if err != nil {
		return nil, err
	}

	scorer := score.NewScorer(lex, score.WithWindow(cfg.Lexicon.Window))

	p := &Pipeline{
		config:  cfg,
		lexicon: lex,
		scorer:  scorer,
		fetcher: newFetcher(cfg.HTTP),
		logger:  logger,
	}

	if cfg.Cache.Enabled {
		var c cache.Cache
		if cfg.Cache.Dir != "" {
			c = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		} else {
			c = cache.NewMemoryCache(cfg.Cache.MemoryTTL, 10*time.Minute)
		}
		p.cached = NewCachedScorer(scorer, c, logger)
	}

	return p, nil
}

func newFetcher(cfg model.HTTPConfig) *Fetcher {
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	f := NewFetcher(cfg.Timeout, userAgent, cfg.MaxBytes, cfg.InsecureTLS, cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy)
	if cfg.RespectRobots {
		f.RespectRobots(util.NewRobotsChecker(userAgent, cfg.Timeout))
	}
	return f
}

// LoadLexicon reads the lexicon at path, or returns the embedded default when path is empty
func LoadLexicon(path string) (*lexicon.Lexicon, error) {
	if path == "" {
		return lexicon.Default(), nil
	}
	lex, err := lexicon.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}
	return lex, nil
}

// Scorer returns the uncached scorer
func (p *Pipeline) Scorer() *score.Scorer {
	return p.scorer
}

// Lexicon returns the loaded lexicon
func (p *Pipeline) Lexicon() *lexicon.Lexicon {
	return p.lexicon
}

// RunOptions selects batch input and outputs
type RunOptions struct {
	Input       string // path, URL or "-" for stdin
	Output      string // path; empty or "-" writes to stdout
	SummaryJSON string // optional path for the JSON summary
}

// Run scores every row of the input CSV and writes the augmented CSV
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) (*model.Summary, error) {
	started := time.Now()
	runID := uuid.NewString()
	logger := p.logger.With("run_id", runID)

	// 1. Read records
	in, err := p.fetcher.OpenInput(ctx, opts.Input)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", opts.Input, err)
	}
	header, records, err := ReadRecords(in, p.config.Batch.TextColumn)
	_ = in.Close()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", opts.Input, err)
	}
	logger.Info("records loaded", "input", opts.Input, "rows", len(records), "text_column", p.config.Batch.TextColumn)

	// 2. Score concurrently
	var scorer worker.Scorer = p.scorer
	if p.cached != nil {
		scorer = p.cached
	}
	processor := worker.NewBatchProcessor(scorer, p.config.Batch.Workers, logger, progressInterval)
	scored, err := processor.ProcessRecords(ctx, records)
	if err != nil {
		return nil, err
	}

	// 3. Write augmented CSV
	if err := p.writeOutput(opts.Output, header, scored); err != nil {
		return nil, err
	}

	// 4. Summarize
	summary := Summarize(scored)
	summary.RunID = runID
	summary.LexiconVersion = p.lexicon.Version()
	summary.Input = opts.Input
	summary.Output = opts.Output
	summary.TextColumn = p.config.Batch.TextColumn
	summary.StartedAt = started.UTC()
	summary.Duration = time.Since(started)
	if p.cached != nil {
		summary.CacheHits = p.cached.CacheHits()
	}

	if opts.SummaryJSON != "" {
		if err := WriteJSONFile(opts.SummaryJSON, summary); err != nil {
			return nil, fmt.Errorf("write summary: %w", err)
		}
	}

	logger.Info("batch complete",
		"rows", summary.Total,
		"present", summary.Present,
		"mean", summary.Mean,
		"cache_hits", summary.CacheHits,
		"duration", summary.Duration,
	)

	return &summary, nil
}

func (p *Pipeline) writeOutput(path string, header []string, scored []model.ScoredRecord) error {
	cols := Columns{
		Score:   p.config.Batch.ScoreColumn,
		Hits:    p.config.Batch.HitsColumn,
		Present: p.config.Batch.PresentColumn,
	}

	if path == "" || path == "-" {
		if err := WriteRecords(os.Stdout, header, scored, cols); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := WriteRecords(file, header, scored, cols); err != nil {
		_ = file.Close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}
