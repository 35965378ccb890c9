package model

import "time"

// Summary describes the score distribution of a batch run
type Summary struct {
	RunID          string        `json:"run_id"`
	LexiconVersion string        `json:"lexicon_version"`
	Input          string        `json:"input,omitempty"`
	Output         string        `json:"output,omitempty"`
	TextColumn     string        `json:"text_column"`
	Total          int           `json:"total"`
	Positive       int           `json:"positive"` // score > 0
	Neutral        int           `json:"neutral"`  // score == 0
	Negative       int           `json:"negative"` // score < 0
	Present        int           `json:"present"`  // hits > 0
	Mean           float64       `json:"mean"`
	StdDev         float64       `json:"std_dev"` // sample standard deviation
	Min            float64       `json:"min"`
	Max            float64       `json:"max"`
	CacheHits      int64         `json:"cache_hits,omitempty"`
	StartedAt      time.Time     `json:"started_at"`
	Duration       time.Duration `json:"duration_ns"`
}

// Percent returns n as a percentage of Total
func (s Summary) Percent(n int) float64 {
	if s.Total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(s.Total)
}
