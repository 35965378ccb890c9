package score

import (
	"math"
	"strconv"

	"github.com/ppiankov/wordbank/internal/lexicon"
)

// Result is the sentiment signal for one text
type Result struct {
	Score float64 `json:"score"` // tanh of the mean contribution, rounded to 2 decimals, in [-1, 1]
	Hits  int     `json:"hits"`  // number of lexicon occurrences
}

// Present reports whether any lexicon phrase matched
func (r Result) Present() bool {
	return r.Hits > 0
}

// Breakdown explains how a Result was reached
type Breakdown struct {
	Normalized    string         `json:"normalized"`
	Contributions []Contribution `json:"contributions"`
	Total         float64        `json:"total"`
	Average       float64        `json:"average"`
	Result        Result         `json:"result"`
}

// Option configures a Scorer
type Option func(*Scorer)

// WithWindow sets how many preceding tokens are inspected for modifiers and negations
func WithWindow(tokens int) Option {
	return func(s *Scorer) {
		if tokens > 0 {
			s.window = tokens
		}
	}
}

// Scorer scores text against a lexicon. It holds no mutable state and is safe
// for concurrent use.
type Scorer struct {
	version     string
	fingerprint string
	entries     []lexicon.Entry
	modifiers   []lexicon.Modifier
	negations   []string
	window      int
}

// NewScorer creates a scorer for lex; a nil lex selects the default financial lexicon
func NewScorer(lex *lexicon.Lexicon, opts ...Option) *Scorer {
	if lex == nil {
		lex = lexicon.Default()
	}

	s := &Scorer{
		version:     lex.Version(),
		fingerprint: lex.Fingerprint(),
		entries:     lex.Entries(),
		modifiers:   lex.Modifiers(),
		negations:   lex.Negations(),
		window:      DefaultWindow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LexiconFingerprint returns the content digest of the lexicon the scorer was built from
func (s *Scorer) LexiconFingerprint() string {
	return s.fingerprint
}

// LexiconVersion returns the version of the lexicon the scorer was built from
func (s *Scorer) LexiconVersion() string {
	return s.version
}

// Window returns the number of preceding tokens inspected per occurrence
func (s *Scorer) Window() int {
	return s.window
}

// Score returns the sentiment score and hit count for text
func (s *Scorer) Score(text string) Result {
	return s.Explain(text).Result
}

// ScoreField scores a nullable text field; nil scores as neutral
func (s *Scorer) ScoreField(text *string) Result {
	if text == nil {
		return Result{}
	}
	return s.Score(*text)
}

// ScoreNormalized scores text that has already been through Normalize
func (s *Scorer) ScoreNormalized(normalized string) Result {
	return s.explainNormalized(normalized).Result
}

// Explain scores text and returns every step of the computation
func (s *Scorer) Explain(text string) Breakdown {
	return s.explainNormalized(Normalize(text))
}

func (s *Scorer) explainNormalized(normalized string) Breakdown {
	b := Breakdown{Normalized: normalized}
	if normalized == "" {
		return b
	}

	// 1. Find occurrences
	occurrences := scan(s.entries, normalized)
	if len(occurrences) == 0 {
		return b
	}

	// 2. Adjust each occurrence by its left context
	b.Contributions = make([]Contribution, 0, len(occurrences))
	for _, occ := range occurrences {
		window := contextWindow(normalized, occ.Offset, s.window)
		c := analyze(occ, window, s.modifiers, s.negations)
		b.Contributions = append(b.Contributions, c)
		b.Total += c.Value
	}

	// 3. Average, squash and round
	b.Average = b.Total / float64(len(occurrences))
	b.Result = Result{
		Score: round2(math.Tanh(b.Average)),
		Hits:  len(occurrences),
	}

	return b
}

// round2 rounds to 2 decimals, half to even on the exact binary value
func round2(x float64) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	if err != nil || v == 0 {
		// Also folds -0 into 0
		return 0
	}
	return v
}
