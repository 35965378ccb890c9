package lexicon

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Entry is one phrase of one category
type Entry struct {
	Phrase   string
	Category Category
	Base     float64

	matcher phraseMatcher
}

// FindAll returns the byte offsets of every word-bounded match of the phrase in text
func (e Entry) FindAll(text string) []int {
	return e.matcher.findAll(text)
}

// Modifier is an intensity phrase and the multiplier it applies
type Modifier struct {
	Phrase     string  `yaml:"phrase"`
	Multiplier float64 `yaml:"multiplier"`
}

// Spec is the unvalidated content of a lexicon
type Spec struct {
	Version    string
	Categories map[Category][]string
	Modifiers  []Modifier
	Negations  []string
}

// Lexicon is an immutable, validated word bank.
// Construct it with New, Parse, Load, LoadFile or Default; it is never mutated
// afterwards and is safe to share between goroutines.
type Lexicon struct {
	version     string
	fingerprint string
	entries     []Entry
	counts      map[Category]int
	modifiers   []Modifier
	negations   []string
}

// Stats summarises the size of a lexicon
type Stats struct {
	Version    string              `json:"version" yaml:"version"`
	Entries    int                 `json:"entries" yaml:"entries"`
	Categories map[string]int      `json:"categories" yaml:"categories"`
	Modifiers  int                 `json:"modifiers" yaml:"modifiers"`
	Negations  int                 `json:"negations" yaml:"negations"`
	Shared     map[string][]string `json:"shared,omitempty" yaml:"shared,omitempty"`     // phrase -> category keys
	Repeated   map[string][]string `json:"repeated,omitempty" yaml:"repeated,omitempty"` // phrase -> categories listing it more than once
}

// New validates spec and builds a lexicon with precompiled phrase matchers
func New(spec Spec) (*Lexicon, error) {
	lex := &Lexicon{
		version: strings.TrimSpace(spec.Version),
		counts:  make(map[Category]int),
	}
	if lex.version == "" {
		lex.version = "custom"
	}

	for _, cat := range categories {
		phrases, ok := spec.Categories[cat]
		if !ok || len(phrases) == 0 {
			return nil, newValidationError("categories."+cat.Key(), "category list is empty")
		}

		// Repeats inside one category are kept and each one counts
		for i, raw := range phrases {
			phrase := strings.ToLower(strings.TrimSpace(raw))
			if phrase == "" {
				return nil, newValidationError(fmt.Sprintf("categories.%s[%d]", cat.Key(), i), "phrase is empty")
			}
			lex.entries = append(lex.entries, Entry{
				Phrase:   phrase,
				Category: cat,
				Base:     cat.Base(),
				matcher:  compilePhrase(phrase),
			})
			lex.counts[cat]++
		}
	}

	if len(spec.Modifiers) == 0 {
		return nil, newValidationError("modifiers", "modifier table is empty")
	}
	seenModifiers := make(map[string]bool, len(spec.Modifiers))
	for i, m := range spec.Modifiers {
		field := fmt.Sprintf("modifiers[%d]", i)
		phrase := strings.ToLower(strings.TrimSpace(m.Phrase))
		if phrase == "" {
			return nil, newValidationError(field, "modifier phrase is empty")
		}
		if m.Multiplier <= 0 {
			return nil, newValidationError(field, "multiplier for %q must be positive, got %v", phrase, m.Multiplier)
		}
		if seenModifiers[phrase] {
			return nil, newValidationError(field, "duplicate modifier %q", phrase)
		}
		seenModifiers[phrase] = true
		lex.modifiers = append(lex.modifiers, Modifier{Phrase: phrase, Multiplier: m.Multiplier})
	}

	if len(spec.Negations) == 0 {
		return nil, newValidationError("negations", "negation set is empty")
	}
	seenNegations := make(map[string]bool, len(spec.Negations))
	for i, raw := range spec.Negations {
		phrase := strings.ToLower(strings.TrimSpace(raw))
		if phrase == "" {
			return nil, newValidationError(fmt.Sprintf("negations[%d]", i), "negation phrase is empty")
		}
		if seenNegations[phrase] {
			continue
		}
		seenNegations[phrase] = true
		lex.negations = append(lex.negations, phrase)
	}

	lex.fingerprint = lex.computeFingerprint()
	return lex, nil
}

// computeFingerprint hashes every entry, modifier and negation in order.
// The version label is left out: two lexicons with equal content score alike.
func (l *Lexicon) computeFingerprint() string {
	h := sha256.New()
	for _, e := range l.entries {
		fmt.Fprintf(h, "e\x00%s\x00%s\n", e.Category.Key(), e.Phrase)
	}
	for _, m := range l.modifiers {
		fmt.Fprintf(h, "m\x00%s\x00%s\n", m.Phrase, strconv.FormatFloat(m.Multiplier, 'g', -1, 64))
	}
	for _, n := range l.negations {
		fmt.Fprintf(h, "n\x00%s\n", n)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Version returns the lexicon version label
func (l *Lexicon) Version() string {
	return l.version
}

// Fingerprint returns a sha256 hex digest of the lexicon content
func (l *Lexicon) Fingerprint() string {
	return l.fingerprint
}

// Entries returns every entry in scan order: by category, then by declared phrase order
func (l *Lexicon) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Categories returns the phrases of each category in declared order
func (l *Lexicon) Categories() map[Category][]string {
	out := make(map[Category][]string, len(categories))
	for _, e := range l.entries {
		out[e.Category] = append(out[e.Category], e.Phrase)
	}
	return out
}

// Modifiers returns the modifier table in priority order
func (l *Lexicon) Modifiers() []Modifier {
	out := make([]Modifier, len(l.modifiers))
	copy(out, l.modifiers)
	return out
}

// Negations returns the negation phrases
func (l *Lexicon) Negations() []string {
	out := make([]string, len(l.negations))
	copy(out, l.negations)
	return out
}

// Spec returns the validated content of the lexicon
func (l *Lexicon) Spec() Spec {
	return Spec{
		Version:    l.version,
		Categories: l.Categories(),
		Modifiers:  l.Modifiers(),
		Negations:  l.Negations(),
	}
}

// Stats returns entry counts, the phrases listed in more than one category and
// the phrases listed more than once in the same category
func (l *Lexicon) Stats() Stats {
	stats := Stats{
		Version:    l.version,
		Entries:    len(l.entries),
		Categories: make(map[string]int, len(categories)),
		Modifiers:  len(l.modifiers),
		Negations:  len(l.negations),
	}
	for _, cat := range categories {
		stats.Categories[cat.Key()] = l.counts[cat]
	}

	type listing struct {
		cats  []string
		count map[string]int
	}
	byPhrase := make(map[string]*listing)
	for _, e := range l.entries {
		li, ok := byPhrase[e.Phrase]
		if !ok {
			li = &listing{count: make(map[string]int)}
			byPhrase[e.Phrase] = li
		}
		key := e.Category.Key()
		if li.count[key] == 0 {
			li.cats = append(li.cats, key)
		}
		li.count[key]++
	}
	for phrase, li := range byPhrase {
		if len(li.cats) > 1 {
			if stats.Shared == nil {
				stats.Shared = make(map[string][]string)
			}
			stats.Shared[phrase] = li.cats
		}
		for _, key := range li.cats {
			if li.count[key] < 2 {
				continue
			}
			if stats.Repeated == nil {
				stats.Repeated = make(map[string][]string)
			}
			stats.Repeated[phrase] = append(stats.Repeated[phrase], key)
		}
	}

	return stats
}
