package pipeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ppiankov/wordbank/internal/model"
	"github.com/ppiankov/wordbank/internal/score"
)

func scoredOf(results ...score.Result) []model.ScoredRecord {
	out := make([]model.ScoredRecord, len(results))
	for i, r := range results {
		out[i] = model.ScoredRecord{Record: model.Record{Index: i}, Result: r}
	}
	return out
}

func TestSummarize(t *testing.T) {
	s := Summarize(scoredOf(
		score.Result{Score: 0.96, Hits: 1},
		score.Result{Score: -0.96, Hits: 1},
		score.Result{Score: 0, Hits: 0},
		score.Result{Score: 0, Hits: 2}, // balanced
	))

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.Positive)
	assert.Equal(t, 1, s.Negative)
	assert.Equal(t, 2, s.Neutral)
	assert.Equal(t, 3, s.Present)
	assert.InDelta(t, 0, s.Mean, 1e-12)
	// sample std: sqrt((0.96² + 0.96²) / 3)
	assert.InDelta(t, math.Sqrt(2*0.96*0.96/3), s.StdDev, 1e-12)
	assert.Equal(t, -0.96, s.Min)
	assert.Equal(t, 0.96, s.Max)
	assert.InDelta(t, 50.0, s.Percent(s.Neutral), 1e-12)
}

func TestSummarize_Edges(t *testing.T) {
	empty := Summarize(nil)
	assert.Zero(t, empty.Total)
	assert.Zero(t, empty.Percent(empty.Positive))

	single := Summarize(scoredOf(score.Result{Score: 0.64, Hits: 2}))
	assert.Equal(t, 0.64, single.Mean)
	assert.Zero(t, single.StdDev)
	assert.Equal(t, 0.64, single.Min)
	assert.Equal(t, 0.64, single.Max)
}
