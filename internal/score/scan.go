package score

import (
	"sort"

	"github.com/ppiankov/wordbank/internal/lexicon"
)

// Occurrence is one matched phrase at a byte offset of the normalized text
type Occurrence struct {
	Phrase   string           `json:"phrase"`
	Category lexicon.Category `json:"-"`
	Base     float64          `json:"base"`
	Offset   int              `json:"offset"`
}

// scan finds every occurrence of every entry in normalized text, ordered by offset.
// Entries are scanned independently, so overlapping phrases and phrases listed
// under several categories each yield their own occurrence.
func scan(entries []lexicon.Entry, normalized string) []Occurrence {
	var found []Occurrence
	for _, e := range entries {
		for _, offset := range e.FindAll(normalized) {
			found = append(found, Occurrence{
				Phrase:   e.Phrase,
				Category: e.Category,
				Base:     e.Base,
				Offset:   offset,
			})
		}
	}

	// Stable so that ties keep scan order and the sum is reproducible
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Offset < found[j].Offset
	})
	return found
}
