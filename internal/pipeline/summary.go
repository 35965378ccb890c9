package pipeline

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ppiankov/wordbank/internal/model"
)

// Summarize counts polarity and computes distribution statistics over the
// scores. Rows without any hit still count, with a score of 0.
func Summarize(scored []model.ScoredRecord) model.Summary {
	s := model.Summary{Total: len(scored)}
	if len(scored) == 0 {
		return s
	}

	scores := make([]float64, len(scored))
	for i, rec := range scored {
		v := rec.Result.Score
		scores[i] = v

		switch {
		case v > 0:
			s.Positive++
		case v < 0:
			s.Negative++
		default:
			s.Neutral++
		}
		if rec.Result.Present() {
			s.Present++
		}
	}

	if len(scores) > 1 {
		s.Mean, s.StdDev = stat.MeanStdDev(scores, nil)
	} else {
		s.Mean = scores[0]
	}
	s.Min = floats.Min(scores)
	s.Max = floats.Max(scores)

	return s
}
