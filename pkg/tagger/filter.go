package tagger

import (
	"strings"

	"github.com/hkazuakey/lucene-gosen/pkg/tokenizer"
)

// POSFilter drops tokens whose part-of-speech matches one of the configured
// prefixes, e.g. "助詞" to drop every particle or "記号-句点" for full
// stops only.
type POSFilter struct {
	prefixes []string
}

// NewPOSFilter builds a filter dropping the given part-of-speech prefixes.
func NewPOSFilter(posPrefixes ...string) *POSFilter {
	return &POSFilter{prefixes: posPrefixes}
}

// Apply implements StreamFilter.
func (f *POSFilter) Apply(tokens []*tokenizer.Token) []*tokenizer.Token {
	out := tokens[:0]
	carryStart := false
	for _, tk := range tokens {
		if f.drops(tk.Morpheme.PartOfSpeech()) {
			carryStart = carryStart || tk.SentenceStart
			continue
		}
		if carryStart {
			tk.SentenceStart = true
			carryStart = false
		}
		out = append(out, tk)
	}
	return out
}

func (f *POSFilter) drops(pos string) bool {
	for _, p := range f.prefixes {
		if strings.HasPrefix(pos, p) {
			return true
		}
	}
	return false
}
