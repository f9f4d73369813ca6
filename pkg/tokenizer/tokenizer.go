/*
Package tokenizer implements the lattice-based path search that segments a
Japanese character sequence into morphemes.

For every start position the dictionary trie enumerates candidate morphemes;
each candidate is an edge whose cost is its emission cost plus the
connection cost between its left context id and the right context id of the
best edge reaching its start. A dynamic program keeps, per boundary, the
cheapest cumulative cost and a back pointer, and the token sequence is read
off the back pointers. Costs are integers throughout, so results are exact
and reproducible.

Positions with no lexicon match get a synthesized out-of-vocabulary edge, so
the search always completes a path over arbitrary input.
*/
package tokenizer

import (
	"math"
	"unicode"

	"github.com/hkazuakey/lucene-gosen/pkg/dictionary"
)

// DefaultUnknownCost is the emission cost of a synthesized
// out-of-vocabulary edge.
const DefaultUnknownCost = 30000

// infCost marks an unreached boundary.
const infCost = math.MaxInt64

// Tokenizer segments rune buffers against one bound dictionary. It holds no
// per-call state and may be shared, but the Tagger drives exactly one
// Tokenizer per input stream.
type Tokenizer struct {
	dict                    *dictionary.Dictionary
	unknownPOS              string
	tokenizeUnknownKatakana bool
	unknownCost             int
}

// New binds a tokenizer to a dictionary. unknownPOS labels synthesized
// out-of-vocabulary morphemes. With tokenizeUnknownKatakana, an unmatched
// katakana run becomes a single token instead of per-character tokens.
func New(dict *dictionary.Dictionary, unknownPOS string, tokenizeUnknownKatakana bool) *Tokenizer {
	return &Tokenizer{
		dict:                    dict,
		unknownPOS:              unknownPOS,
		tokenizeUnknownKatakana: tokenizeUnknownKatakana,
		unknownCost:             DefaultUnknownCost,
	}
}

// SetUnknownCost overrides the out-of-vocabulary emission cost.
func (t *Tokenizer) SetUnknownCost(c int) { t.unknownCost = c }

// Dictionary returns the bound dictionary.
func (t *Tokenizer) Dictionary() *dictionary.Dictionary { return t.dict }

// Tokenize finds the minimum-cost segmentation of runes and returns the
// tokens in order. Offsets are rune positions relative to the buffer; each
// token's Cost is the cumulative path cost up to and including the token.
// Ties keep the first candidate found, so repeated runs are identical.
func (t *Tokenizer) Tokenize(runes []rune) []*Token {
	n := len(runes)
	if n == 0 {
		return nil
	}

	best := make([]int64, n+1)
	prev := make([]int, n+1)
	edgeToken := make([]int32, n+1)
	rightID := make([]int16, n+1)
	for i := 1; i <= n; i++ {
		best[i] = infCost
	}

	for p := 0; p < n; p++ {
		if best[p] == infCost {
			continue
		}
		matched := false
		t.dict.CommonPrefixSearch(runes, p, func(length int, start, count int32) bool {
			if length == 0 {
				return true
			}
			for k := int32(0); k < count; k++ {
				rec := t.dict.TokenAt(start + k)
				t.relax(best, prev, edgeToken, rightID, p, p+length,
					rec.LeftID, rec.RightID, int(rec.Cost), start+k)
			}
			matched = true
			return true
		})
		if !matched {
			t.relax(best, prev, edgeToken, rightID, p, p+t.unknownLength(runes, p),
				0, 0, t.unknownCost, -1)
		}
	}

	// walk back pointers from the end boundary
	count := 0
	for i := n; i > 0; i = prev[i] {
		count++
	}
	tokens := make([]*Token, count)
	for i := n; i > 0; i = prev[i] {
		start := prev[i]
		surface := string(runes[start:i])
		tok := &Token{
			Surface: surface,
			Start:   start,
			End:     i,
			Cost:    best[i],
		}
		if edgeToken[i] >= 0 {
			rec := t.dict.TokenAt(edgeToken[i])
			tok.Morpheme = t.dict.MorphemeAt(rec.POSOffset, surface)
		} else {
			tok.Morpheme = dictionary.NewMorpheme(t.unknownPOS, surface)
		}
		count--
		tokens[count] = tok
	}
	return tokens
}

// relax records the edge (p, q] when it improves the best cost at q.
func (t *Tokenizer) relax(best []int64, prev []int, edgeToken []int32, rightID []int16,
	p, q int, leftID, rID int16, emission int, tokenIndex int32) {
	predRight := int16(0)
	if p > 0 {
		predRight = rightID[p]
	}
	cost := best[p] + int64(t.dict.ConnectionCost(predRight, leftID)) + int64(emission)
	if cost < best[q] {
		best[q] = cost
		prev[q] = p
		edgeToken[q] = tokenIndex
		rightID[q] = rID
	}
}

// unknownLength decides how many runes the synthesized edge at p spans.
func (t *Tokenizer) unknownLength(runes []rune, p int) int {
	if !t.tokenizeUnknownKatakana || !isKatakana(runes[p]) {
		return 1
	}
	length := 1
	for p+length < len(runes) && isKatakana(runes[p+length]) {
		length++
	}
	return length
}

func isKatakana(r rune) bool {
	return unicode.In(r, unicode.Katakana) || r == 'ー'
}
