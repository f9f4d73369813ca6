package dictionary_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hkazuakey/lucene-gosen/pkg/dictionary"
)

type match struct {
	Length int
	Start  int32
	Count  int32
}

func collectMatches(d *dictionary.Dictionary, text string, pos int) []match {
	var out []match
	d.CommonPrefixSearch([]rune(text), pos, func(length int, start, count int32) bool {
		out = append(out, match{length, start, count})
		return true
	})
	return out
}

func TestCommonPrefixSearchEmbedded(t *testing.T) {
	d, err := dictionary.Load("")
	if err != nil {
		t.Fatalf("Load embedded: %v", err)
	}

	t.Run("prefix chain", func(t *testing.T) {
		// 食べ and 食べる are both stored, shorter first
		ms := collectMatches(d, "食べるの", 0)
		if len(ms) != 2 || ms[0].Length != 2 || ms[1].Length != 3 {
			t.Fatalf("matches = %+v, want lengths 2 then 3", ms)
		}
	})

	t.Run("homograph range", func(t *testing.T) {
		ms := collectMatches(d, "がんばる", 0)
		if len(ms) != 1 {
			t.Fatalf("matches = %+v, want one", ms)
		}
		if ms[0].Length != 1 || ms[0].Count != 2 {
			t.Fatalf("が match = %+v, want length 1 count 2", ms[0])
		}
		// homographs share the surface but not the rest of the record
		a := d.TokenAt(ms[0].Start)
		b := d.TokenAt(ms[0].Start + 1)
		if a.Length != 1 || b.Length != 1 {
			t.Fatalf("homograph lengths %d, %d", a.Length, b.Length)
		}
		if a.POSOffset == b.POSOffset {
			t.Fatal("homographs share a morpheme record")
		}
	})

	t.Run("no match", func(t *testing.T) {
		if ms := collectMatches(d, "xyz", 0); len(ms) != 0 {
			t.Fatalf("matches = %+v, want none", ms)
		}
	})

	t.Run("mid buffer", func(t *testing.T) {
		ms := collectMatches(d, "xx大根", 2)
		if len(ms) != 1 || ms[0].Length != 2 {
			t.Fatalf("matches = %+v, want one of length 2", ms)
		}
	})

	t.Run("out of range position", func(t *testing.T) {
		if ms := collectMatches(d, "大根", 9); ms != nil {
			t.Fatalf("matches = %+v, want none", ms)
		}
	})

	t.Run("early stop", func(t *testing.T) {
		var seen []int
		d.CommonPrefixSearch([]rune("食べるの"), 0, func(length int, _, _ int32) bool {
			seen = append(seen, length)
			return false
		})
		if diff := cmp.Diff([]int{2}, seen); diff != "" {
			t.Fatalf("early stop mismatch (-want +got):\n%s", diff)
		}
	})
}
