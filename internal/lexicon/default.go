package lexicon

import (
	_ "embed"
	"fmt"
	"sync"
)

//go:embed financial.yaml
var financialYAML []byte

var defaultLexicon = sync.OnceValue(func() *Lexicon {
	lex, err := Parse(financialYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded financial lexicon is invalid: %v", err))
	}
	return lex
})

// Default returns the embedded financial headline lexicon
func Default() *Lexicon {
	return defaultLexicon()
}

// DefaultYAML returns a copy of the embedded lexicon document
func DefaultYAML() []byte {
	out := make([]byte, len(financialYAML))
	copy(out, financialYAML)
	return out
}
