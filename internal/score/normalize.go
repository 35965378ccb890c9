package score

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize lowercases text, collapses every whitespace run to a single space
// and trims both ends. Empty or whitespace-only text normalizes to "".
func Normalize(text string) string {
	fields := strings.FieldsFunc(text, isSpace)
	if len(fields) == 0 {
		return ""
	}
	// A Caser carries state, so each call gets its own
	lower := cases.Lower(language.Und)
	return lower.String(strings.Join(fields, " "))
}

// isSpace extends unicode.IsSpace with the ASCII information separators
// U+001C through U+001F, which also split words.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// NormalizeField normalizes a nullable text field; nil normalizes to ""
func NormalizeField(text *string) string {
	if text == nil {
		return ""
	}
	return Normalize(*text)
}
