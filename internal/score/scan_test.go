package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/wordbank/internal/lexicon"
)

func TestScan_SortedByOffset(t *testing.T) {
	lex := testLexicon(t)

	// bearish comes after bullish in scan order but first in the text
	got := scan(lex.Entries(), "bearish open, bullish close")
	require.Len(t, got, 2)
	assert.Equal(t, "bearish", got[0].Phrase)
	assert.Equal(t, 0, got[0].Offset)
	assert.Equal(t, "bullish", got[1].Phrase)
	assert.Equal(t, 14, got[1].Offset)
}

func TestScan_TiesKeepScanOrder(t *testing.T) {
	lex := testLexicon(t)

	got := scan(lex.Entries(), "miss")
	require.Len(t, got, 2)
	assert.Equal(t, lexicon.ModerateNegative, got[0].Category)
	assert.Equal(t, -1.0, got[0].Base)
	assert.Equal(t, lexicon.StrongNegative, got[1].Category)
	assert.Equal(t, -2.0, got[1].Base)
}

func TestScan_MultiWordPhrase(t *testing.T) {
	lex := testLexicon(t)

	got := scan(lex.Entries(), "shares hit a record high")
	require.Len(t, got, 1)
	assert.Equal(t, "record high", got[0].Phrase)
	assert.Equal(t, 13, got[0].Offset)

	assert.Empty(t, scan(lex.Entries(), "record-high close"))
}

func TestScan_NoMatches(t *testing.T) {
	lex := testLexicon(t)
	assert.Empty(t, scan(lex.Entries(), "quiet session"))
}

func TestContextWindow(t *testing.T) {
	text := "one two three four five six"

	tests := []struct {
		name   string
		offset int
		n      int
		want   string
	}{
		{"start of text", 0, 4, ""},
		{"fewer tokens than window", 8, 4, "one two"},
		{"clipped to last four", 24, 4, "two three four five"},
		{"window of one", 24, 1, "five"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, contextWindow(text, tt.offset, tt.n))
		})
	}
}
