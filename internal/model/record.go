package model

import "github.com/ppiankov/wordbank/internal/score"

// Record is one input row: a nullable text field plus the fields passed through untouched
type Record struct {
	Index  int      // position in the input, 0-based
	Text   *string  // nil when the text field is absent
	Fields []string // original row values
}

// ScoredRecord pairs a record with its sentiment result
type ScoredRecord struct {
	Record
	Result score.Result
}
