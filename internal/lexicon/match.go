package lexicon

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// phraseMatcher finds a literal phrase bounded by word boundaries.
// A boundary sits wherever a word rune meets a non-word rune or the text edge,
// with letters, numbers and '_' counting as word runes.
type phraseMatcher struct {
	phrase    string
	leadWord  bool // first rune of phrase is a word rune
	trailWord bool // last rune of phrase is a word rune
}

func compilePhrase(phrase string) phraseMatcher {
	first, _ := utf8.DecodeRuneInString(phrase)
	last, _ := utf8.DecodeLastRuneInString(phrase)
	return phraseMatcher{
		phrase:    phrase,
		leadWord:  isWordRune(first),
		trailWord: isWordRune(last),
	}
}

// findAll returns the byte offsets of every non-overlapping bounded match, left to right
func (m phraseMatcher) findAll(text string) []int {
	var offsets []int
	start := 0
	for start <= len(text)-len(m.phrase) {
		i := strings.Index(text[start:], m.phrase)
		if i < 0 {
			break
		}
		pos := start + i
		end := pos + len(m.phrase)

		if m.bounded(text, pos, end) {
			offsets = append(offsets, pos)
			start = end
			continue
		}

		_, size := utf8.DecodeRuneInString(text[pos:])
		start = pos + size
	}
	return offsets
}

// bounded reports whether text[pos:end] has a word boundary on both sides
func (m phraseMatcher) bounded(text string, pos, end int) bool {
	before := false
	if pos > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:pos])
		before = isWordRune(r)
	}
	if before == m.leadWord {
		return false
	}

	after := false
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		after = isWordRune(r)
	}
	return after != m.trailWord
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
