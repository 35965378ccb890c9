package worker

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/wordbank/internal/model"
	"github.com/ppiankov/wordbank/internal/score"
)

// mockScorer returns the text length as the score
type mockScorer struct {
	calls atomic.Int32
	delay time.Duration
}

func (m *mockScorer) ScoreField(text *string) score.Result {
	m.calls.Add(1)
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	if text == nil {
		return score.Result{}
	}
	return score.Result{Score: float64(len(*text)), Hits: 1}
}

func records(texts ...string) []model.Record {
	out := make([]model.Record, len(texts))
	for i, text := range texts {
		text := text
		out[i] = model.Record{Index: i, Text: &text, Fields: []string{text}}
	}
	return out
}

func TestBatchProcessor_ProcessRecords_Order(t *testing.T) {
	scorer := &mockScorer{}
	processor := NewBatchProcessor(scorer, 4, nil, 0)

	texts := make([]string, 200)
	for i := range texts {
		texts[i] = strings.Repeat("x", i)
	}

	scored, err := processor.ProcessRecords(context.Background(), records(texts...))
	require.NoError(t, err)
	require.Len(t, scored, len(texts))

	for i, rec := range scored {
		assert.Equal(t, i, rec.Index)
		assert.Equal(t, float64(i), rec.Result.Score)
	}
	assert.EqualValues(t, len(texts), scorer.calls.Load())
}

func TestBatchProcessor_ProcessRecords_NilText(t *testing.T) {
	processor := NewBatchProcessor(&mockScorer{}, 2, nil, 0)

	recs := []model.Record{{Index: 0, Text: nil, Fields: []string{""}}}
	scored, err := processor.ProcessRecords(context.Background(), recs)
	require.NoError(t, err)
	require.Len(t, scored, 1)
	assert.Equal(t, score.Result{}, scored[0].Result)
	assert.False(t, scored[0].Result.Present())
}

func TestBatchProcessor_ProcessRecords_Empty(t *testing.T) {
	processor := NewBatchProcessor(&mockScorer{}, 2, nil, 0)

	scored, err := processor.ProcessRecords(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, scored)
}

func TestBatchProcessor_ProcessRecords_Cancelled(t *testing.T) {
	processor := NewBatchProcessor(&mockScorer{delay: 5 * time.Millisecond}, 2, nil, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	texts := make([]string, 500)
	_, err := processor.ProcessRecords(ctx, records(texts...))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestBatchProcessor_Progress(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	processor := NewBatchProcessor(&mockScorer{}, 2, logger, time.Hour)

	_, err := processor.ProcessRecords(context.Background(), records("a", "b", "c"))
	require.NoError(t, err)

	// First call always logs, the interval suppresses the rest
	assert.Equal(t, 1, strings.Count(buf.String(), "scoring progress"))
}

func TestScoreResult_GetError(t *testing.T) {
	r1 := &ScoreResult{Position: 0}
	assert.NoError(t, r1.GetError())

	expected := errors.New("score failed")
	r2 := &ScoreResult{Position: 1, Error: expected}
	assert.Equal(t, expected, r2.GetError())
}

func TestScoreJob_ExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scorer := &mockScorer{}
	text := "bullish"
	job := &ScoreJob{Position: 3, Record: model.Record{Index: 3, Text: &text}, Scorer: scorer}

	res := job.Execute(ctx).(*ScoreResult)
	assert.ErrorIs(t, res.Error, context.Canceled)
	assert.Equal(t, 3, res.Position)
	assert.Zero(t, scorer.calls.Load())
}
