package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/wordbank/internal/cache"
	"github.com/ppiankov/wordbank/internal/lexicon"
	"github.com/ppiankov/wordbank/internal/score"
)

func ptr(s string) *string { return &s }

func TestCachedScorer(t *testing.T) {
	scorer := score.NewScorer(nil)
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	cached := NewCachedScorer(scorer, c, nil)

	first := cached.ScoreField(ptr("Analysts turn bullish despite concerns"))
	assert.Equal(t, scorer.Score("Analysts turn bullish despite concerns"), first)
	assert.Zero(t, cached.CacheHits())

	// different raw text, same normalized form
	second := cached.ScoreField(ptr("  ANALYSTS turn   bullish despite concerns "))
	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, cached.CacheHits())
	assert.Equal(t, 1, c.Len())
}

func TestCachedScorer_NeutralInputsSkipCache(t *testing.T) {
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	cached := NewCachedScorer(score.NewScorer(nil), c, nil)

	assert.Equal(t, score.Result{}, cached.ScoreField(nil))
	assert.Equal(t, score.Result{}, cached.ScoreField(ptr("   ")))
	assert.Zero(t, c.Len())
}

func TestCachedScorer_WindowScopesKeys(t *testing.T) {
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	text := ptr("not the usual quarter for a bullish call")

	wide := NewCachedScorer(score.NewScorer(nil, score.WithWindow(8)), c, nil)
	narrow := NewCachedScorer(score.NewScorer(nil), c, nil)

	assert.Equal(t, -0.96, wide.ScoreField(text).Score)
	assert.Equal(t, 0.96, narrow.ScoreField(text).Score)
	assert.Zero(t, narrow.CacheHits())
}

func TestCachedScorer_LexiconContentScopesKeys(t *testing.T) {
	build := func(strongPositive string) *score.Scorer {
		lex, err := lexicon.New(lexicon.Spec{
			Version: "2024.11",
			Categories: map[lexicon.Category][]string{
				lexicon.StrongPositive:   {strongPositive},
				lexicon.ModeratePositive: {"gains"},
				lexicon.WeakPositive:     {"stable"},
				lexicon.WeakNegative:     {"concerns"},
				lexicon.ModerateNegative: {"miss"},
				lexicon.StrongNegative:   {"bearish"},
			},
			Modifiers: []lexicon.Modifier{{Phrase: "very", Multiplier: 1.5}},
			Negations: []string{"not"},
		})
		require.NoError(t, err)
		return score.NewScorer(lex)
	}

	dir := t.TempDir()
	text := ptr("bullish outlook")

	// Same version label, different phrases, one disk cache
	original := NewCachedScorer(build("bullish"), cache.NewDiskCache(dir, time.Hour), nil)
	assert.Equal(t, score.Result{Score: 0.96, Hits: 1}, original.ScoreField(text))

	edited := NewCachedScorer(build("zzz"), cache.NewDiskCache(dir, time.Hour), nil)
	assert.Equal(t, score.Result{}, edited.ScoreField(text))
	assert.Zero(t, edited.CacheHits())

	again := NewCachedScorer(build("bullish"), cache.NewDiskCache(dir, time.Hour), nil)
	assert.Equal(t, score.Result{Score: 0.96, Hits: 1}, again.ScoreField(text))
	assert.EqualValues(t, 1, again.CacheHits())
}

func TestCachedScorer_CorruptEntry(t *testing.T) {
	scorer := score.NewScorer(nil)
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	cached := NewCachedScorer(scorer, c, nil)

	key := cache.Key(cached.scope, "bullish")
	require.NoError(t, c.Set(key, []byte("{"), 0))

	assert.Equal(t, 0.96, cached.ScoreField(ptr("bullish")).Score)
	assert.Zero(t, cached.CacheHits())
}
