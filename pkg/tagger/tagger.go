/*
Package tagger drives the tokenizer over text: one-shot analysis of a
string, or incremental analysis of an io.Reader through a fixed-size rune
buffer that is refilled at safe break points.

Input is cut into sentences and every sentence is searched separately; the
first token of a sentence carries the sentence-start flag and its cumulative
cost restarts at that boundary. An unbroken run longer than the buffer is
cut at a line terminator even mid-sentence, trading a little accuracy for a
bounded buffer.

A Tagger holds per-stream state and is not safe for concurrent use; give
each concurrent input its own Tagger against the shared dictionary.
*/
package tagger

import (
	"fmt"

	"github.com/hkazuakey/lucene-gosen/pkg/tokenizer"
)

// StreamFilter post-processes the token list of one analyzed chunk before
// it is emitted.
type StreamFilter interface {
	Apply(tokens []*tokenizer.Token) []*tokenizer.Token
}

// Tagger turns text into an ordered token sequence.
type Tagger struct {
	tok     *tokenizer.Tokenizer
	filters []StreamFilter
	bufSize int
}

// New wraps a tokenizer with the default buffer size.
func New(tok *tokenizer.Tokenizer) *Tagger {
	return &Tagger{tok: tok, bufSize: defaultBufferSize}
}

// SetBufferSize overrides the rune buffer size used by streams. Values
// below one are ignored.
func (g *Tagger) SetBufferSize(n int) {
	if n > 0 {
		g.bufSize = n
	}
}

// AddFilter appends a stream filter to the pipeline.
func (g *Tagger) AddFilter(f StreamFilter) { g.filters = append(g.filters, f) }

// RemoveFilters clears the filter pipeline.
func (g *Tagger) RemoveFilters() { g.filters = nil }

// Analyze runs the full analysis of a bounded string and returns the tokens
// in order with rune offsets into text. A nil error with an empty slice
// means the input genuinely produced no tokens; analysis faults are
// reported as errors, never as a silently empty result.
func (g *Tagger) Analyze(text string) (tokens []*tokenizer.Token, err error) {
	defer func() {
		if r := recover(); r != nil {
			tokens = nil
			err = fmt.Errorf("analyze: %v", r)
		}
	}()

	runes := []rune(text)
	for _, span := range sentenceSpans(runes) {
		tokens = append(tokens, g.analyzeSentence(runes, span.start, span.end, 0)...)
	}
	return tokens, nil
}

// analyzeSentence tokenizes runes[start:end), marks the sentence head,
// shifts offsets into document coordinates and applies the filters.
func (g *Tagger) analyzeSentence(runes []rune, start, end, docOffset int) []*tokenizer.Token {
	toks := g.tok.Tokenize(runes[start:end])
	for i, tk := range toks {
		tk.SentenceStart = i == 0
		tk.Start += start + docOffset
		tk.End += start + docOffset
	}
	for _, f := range g.filters {
		toks = f.Apply(toks)
	}
	return toks
}
