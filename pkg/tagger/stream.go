package tagger

import (
	"bufio"
	"io"

	"github.com/charmbracelet/log"

	"github.com/hkazuakey/lucene-gosen/pkg/tokenizer"
)

// Stream analyzes a reader incrementally. Tokens come out in document order
// with offsets in document rune coordinates. The buffer bookkeeping
// distinguishes the true length from the usable length: when the buffer
// fills completely, analysis stops at the last line terminator and the
// leftover shifts to the front on the next refill, so a token never spans a
// refill.
type Stream struct {
	tagger *Tagger
	in     io.RuneReader

	buf    []rune
	length int // true rune count in buf
	usable int // prefix of buf safe to analyze
	offset int // document rune offset of buf[0]
	eof    bool

	sentences []span
	sentIdx   int
	pending   []*tokenizer.Token
	tokenIdx  int
}

// NewStream starts incremental analysis of r.
func (g *Tagger) NewStream(r io.Reader) *Stream {
	return &Stream{
		tagger: g,
		in:     bufio.NewReader(r),
		buf:    make([]rune, g.bufSize),
	}
}

// Next returns the next token, or io.EOF after the last one. Read errors
// and analysis faults are returned as-is; the stream is not usable
// afterwards.
func (s *Stream) Next() (*tokenizer.Token, error) {
	for s.tokenIdx >= len(s.pending) {
		if err := s.advance(); err != nil {
			return nil, err
		}
	}
	tok := s.pending[s.tokenIdx]
	s.tokenIdx++
	return tok, nil
}

// advance analyzes the next sentence, refilling the buffer when the current
// one is exhausted.
func (s *Stream) advance() error {
	for s.sentIdx >= len(s.sentences) {
		if s.eof && s.length == 0 {
			return io.EOF
		}
		if err := s.refill(); err != nil {
			return err
		}
	}
	sp := s.sentences[s.sentIdx]
	s.sentIdx++
	s.pending = s.tagger.analyzeSentence(s.buf[:s.usable], sp.start, sp.end, s.offset)
	s.tokenIdx = 0
	return nil
}

// refill slides the unanalyzed tail to the front and reads more runes. When
// the reader still has data after a full read, analysis is limited to the
// last safe cut point; without one the whole buffer is used and a token may
// be truncated at the boundary.
func (s *Stream) refill() error {
	s.offset += s.usable
	leftover := s.length - s.usable
	copy(s.buf, s.buf[s.usable:s.length])

	n := leftover
	for n < len(s.buf) {
		r, _, err := s.in.ReadRune()
		if err == io.EOF {
			s.eof = true
			break
		}
		if err != nil {
			return err
		}
		s.buf[n] = r
		n++
	}
	s.length = n

	if s.eof || s.length < len(s.buf) {
		s.usable = s.length
	} else {
		s.usable = s.findSafeEnd()
		if s.usable < 0 {
			s.usable = s.length
			log.Warnf("no safe break in %d runes, cutting mid-text", s.length)
		}
	}

	s.sentences = sentenceSpans(s.buf[:s.usable])
	s.sentIdx = 0
	if s.eof && s.usable == s.length {
		s.length = 0
	}
	return nil
}

// findSafeEnd returns the position just past the last line terminator, or
// -1 when the buffer has none.
func (s *Stream) findSafeEnd() int {
	for i := s.length - 1; i >= 0; i-- {
		if isLineTerminator(s.buf[i]) {
			return i + 1
		}
	}
	return -1
}
