package score

import (
	"strings"

	"github.com/ppiankov/wordbank/internal/lexicon"
)

// DefaultWindow is the number of tokens before an occurrence that are inspected
const DefaultWindow = 4

// Contribution is the context-adjusted value of one occurrence
type Contribution struct {
	Occurrence
	Window     string  `json:"window"`
	Modifier   string  `json:"modifier,omitempty"`
	Multiplier float64 `json:"multiplier"`
	Negation   string  `json:"negation,omitempty"`
	Value      float64 `json:"value"`
}

// Negated reports whether a negation phrase flipped the occurrence
func (c Contribution) Negated() bool {
	return c.Negation != ""
}

// contextWindow joins the last n whitespace tokens of text before offset.
// The window is purely positional and may span clause or sentence breaks.
func contextWindow(normalized string, offset, n int) string {
	tokens := strings.Fields(normalized[:offset])
	if len(tokens) > n {
		tokens = tokens[len(tokens)-n:]
	}
	return strings.Join(tokens, " ")
}

// analyze applies the intensity and negation rules to one occurrence.
// The first modifier in table order found in the window sets the multiplier.
// Negations are matched as plain substrings so fragments like "n't" hit inside
// contractions, unlike phrase matching which is word-bounded.
func analyze(occ Occurrence, window string, modifiers []lexicon.Modifier, negations []string) Contribution {
	c := Contribution{
		Occurrence: occ,
		Window:     window,
		Multiplier: 1.0,
	}

	for _, m := range modifiers {
		if strings.Contains(window, m.Phrase) {
			c.Modifier = m.Phrase
			c.Multiplier = m.Multiplier
			break
		}
	}

	for _, neg := range negations {
		if strings.Contains(window, neg) {
			c.Negation = neg
			break
		}
	}

	value := occ.Base
	if c.Negated() {
		value = -value
	}
	c.Value = value * c.Multiplier

	return c
}
