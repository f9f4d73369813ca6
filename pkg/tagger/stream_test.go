package tagger

import (
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hkazuakey/lucene-gosen/pkg/tokenizer"
)

func drain(t *testing.T, s *Stream) []*tokenizer.Token {
	t.Helper()
	var tokens []*tokenizer.Token
	for {
		tok, err := s.Next()
		if err == io.EOF {
			return tokens
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		tokens = append(tokens, tok)
	}
}

func TestStreamMatchesAnalyze(t *testing.T) {
	tg := embeddedTagger(t)
	text := "大根を食べる。\nにんじんです。\n"

	want, err := tg.Analyze(text)
	if err != nil {
		t.Fatal(err)
	}
	got := drain(t, tg.NewStream(strings.NewReader(text)))

	if diff := cmp.Diff(surfaces(want), surfaces(got)); diff != "" {
		t.Fatalf("surfaces mismatch (-analyze +stream):\n%s", diff)
	}
	for i := range want {
		if want[i].Start != got[i].Start || want[i].End != got[i].End {
			t.Fatalf("token %d span [%d,%d), want [%d,%d)",
				i, got[i].Start, got[i].End, want[i].Start, want[i].End)
		}
	}
}

func TestStreamOffsetsContiguousAcrossRefills(t *testing.T) {
	tg := embeddedTagger(t)
	tg.SetBufferSize(10) // forces a refill inside every line

	text := "大根を食べる。\nにんじんです。\n私は野菜。\n"
	tokens := drain(t, tg.NewStream(strings.NewReader(text)))

	pos := 0
	var rebuilt strings.Builder
	for i, tok := range tokens {
		if tok.Start != pos {
			t.Fatalf("token %d %q starts at %d, want %d", i, tok.Surface, tok.Start, pos)
		}
		pos = tok.End
		rebuilt.WriteString(tok.Surface)
	}
	if pos != len([]rune(text)) {
		t.Fatalf("tokens end at %d, want %d", pos, len([]rune(text)))
	}
	if rebuilt.String() != text {
		t.Fatalf("rebuilt %q, want %q", rebuilt.String(), text)
	}

	want := []string{
		"大根", "を", "食べる", "。", "\n",
		"にんじん", "です", "。", "\n",
		"私", "は", "野菜", "。", "\n",
	}
	if diff := cmp.Diff(want, surfaces(tokens)); diff != "" {
		t.Fatalf("surfaces mismatch (-want +got):\n%s", diff)
	}
}

func TestStreamNoSafeBreak(t *testing.T) {
	// No line terminator anywhere, so a full buffer cuts mid-text. Coverage
	// still holds even though a morpheme may be split at the cut.
	tg := embeddedTagger(t)
	tg.SetBufferSize(4)

	text := "大根を食べる。"
	tokens := drain(t, tg.NewStream(strings.NewReader(text)))

	pos := 0
	var rebuilt strings.Builder
	for i, tok := range tokens {
		if tok.Start != pos {
			t.Fatalf("token %d %q starts at %d, want %d", i, tok.Surface, tok.Start, pos)
		}
		pos = tok.End
		rebuilt.WriteString(tok.Surface)
	}
	if rebuilt.String() != text {
		t.Fatalf("rebuilt %q, want %q", rebuilt.String(), text)
	}
}

func TestStreamEmpty(t *testing.T) {
	tg := embeddedTagger(t)
	tokens := drain(t, tg.NewStream(strings.NewReader("")))
	if len(tokens) != 0 {
		t.Fatalf("got %d tokens from empty reader", len(tokens))
	}
}

func TestStreamAppliesFilters(t *testing.T) {
	tg := embeddedTagger(t)
	tg.AddFilter(NewPOSFilter("記号", "未知語"))

	got := drain(t, tg.NewStream(strings.NewReader("大根を食べる。\n")))
	want := []string{"大根", "を", "食べる"}
	if diff := cmp.Diff(want, surfaces(got)); diff != "" {
		t.Fatalf("surfaces mismatch (-want +got):\n%s", diff)
	}
}
