package tokenizer

import (
	"strings"

	"github.com/hkazuakey/lucene-gosen/pkg/dictionary"
)

// Token is a morpheme bound to a span of analyzed text.
type Token struct {
	Surface string
	Start   int // rune offset, inclusive
	End     int // rune offset, exclusive
	// Cost is the cumulative path cost up to and including this token
	// within the analyzed chunk. A consumer wanting a per-token cost
	// subtracts the previous token's Cost.
	Cost          int64
	SentenceStart bool
	Morpheme      *dictionary.Morpheme
}

// Feature renders the token in the columnar convention shared with other
// morphological analyzers: the surface, a tab, then
// pos,sub1,sub2,sub3,conjType,conjForm,baseForm,reading,pronunciation with
// missing fields printed as "*".
func (t *Token) Feature() string {
	m := t.Morpheme
	parts := m.PartOfSpeechParts()

	var sb strings.Builder
	sb.WriteString(t.Surface)
	sb.WriteByte('\t')
	sb.WriteString(strings.Join(parts[:], ","))
	sb.WriteByte(',')
	sb.WriteString(m.ConjugationalType())
	sb.WriteByte(',')
	sb.WriteString(m.ConjugationalForm())
	sb.WriteByte(',')
	sb.WriteString(orStar(m.BasicForm()))
	sb.WriteByte(',')
	sb.WriteString(firstOrStar(m.Readings()))
	sb.WriteByte(',')
	sb.WriteString(firstOrStar(m.Pronunciations()))
	return sb.String()
}

func orStar(s string) string {
	if s == "" {
		return "*"
	}
	return s
}

func firstOrStar(ss []string) string {
	if len(ss) == 0 {
		return "*"
	}
	return ss[0]
}
