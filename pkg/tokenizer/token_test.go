package tokenizer

import (
	"strings"
	"testing"

	"github.com/hkazuakey/lucene-gosen/pkg/dictionary"
)

func TestFeatureColumns(t *testing.T) {
	tok := embeddedTokenizer(t, false)

	tokens := tok.Tokenize([]rune("大根"))
	if len(tokens) != 1 {
		t.Fatalf("got %d tokens", len(tokens))
	}
	want := "大根\t名詞,一般,*,*,*,*,大根,ダイコン,ダイコン"
	if got := tokens[0].Feature(); got != want {
		t.Fatalf("Feature = %q, want %q", got, want)
	}
}

func TestFeatureConjugated(t *testing.T) {
	tok := embeddedTokenizer(t, false)

	// 食べ stores 食べる as its base form
	tokens := tok.Tokenize([]rune("食べです"))
	if len(tokens) != 2 {
		t.Fatalf("got %d tokens", len(tokens))
	}
	feat := tokens[0].Feature()
	if !strings.Contains(feat, ",一段,連用形,食べる,") {
		t.Fatalf("Feature = %q, want conjugation columns and base form", feat)
	}
}

func TestFeatureUnknown(t *testing.T) {
	tk := &Token{
		Surface:  "x",
		Morpheme: dictionary.NewMorpheme("未知語", "x"),
	}
	want := "x\t未知語,*,*,*,*,*,x,*,*"
	if got := tk.Feature(); got != want {
		t.Fatalf("Feature = %q, want %q", got, want)
	}
}
