package pipeline

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/ppiankov/wordbank/internal/cache"
	"github.com/ppiankov/wordbank/internal/score"
)

// CachedScorer memoises results by lexicon content, window and normalized text
type CachedScorer struct {
	scorer *score.Scorer
	cache  cache.Cache
	scope  string
	logger *slog.Logger
	hits   atomic.Int64
}

// NewCachedScorer wraps scorer with c
func NewCachedScorer(scorer *score.Scorer, c cache.Cache, logger *slog.Logger) *CachedScorer {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedScorer{
		scorer: scorer,
		cache:  c,
		scope:  fmt.Sprintf("%s/w%d", scorer.LexiconFingerprint(), scorer.Window()),
		logger: logger,
	}
}

// ScoreField scores a nullable text field, consulting the cache first.
// Cache failures are logged and never change the result.
func (s *CachedScorer) ScoreField(text *string) score.Result {
	if text == nil {
		return score.Result{}
	}

	normalized := score.Normalize(*text)
	if normalized == "" {
		return score.Result{}
	}

	key := cache.Key(s.scope, normalized)
	if data, ok := s.cache.Get(key); ok {
		var result score.Result
		if err := json.Unmarshal(data, &result); err == nil {
			s.hits.Add(1)
			return result
		}
		s.logger.Debug("discarding unreadable cache entry", "key", key)
	}

	result := s.scorer.ScoreNormalized(normalized)

	data, err := json.Marshal(result)
	if err == nil {
		err = s.cache.Set(key, data, 0)
	}
	if err != nil {
		s.logger.Warn("cache write failed", "error", err)
	}

	return result
}

// CacheHits returns how many results were served from the cache
func (s *CachedScorer) CacheHits() int64 {
	return s.hits.Load()
}
