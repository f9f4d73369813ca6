package sen_test

import (
	"testing"

	"github.com/hkazuakey/lucene-gosen/pkg/dictionary/builder"
	"github.com/hkazuakey/lucene-gosen/pkg/sen"
)

// writeDict compiles a tiny standalone dictionary into a temp directory.
func writeDict(t *testing.T) string {
	t.Helper()
	b := builder.New()
	b.SetMatrix([][]int16{
		{0, 100, 200},
		{100, 0, 100},
		{200, 100, 0},
	})
	b.Add(builder.Entry{
		Surface: "大根", LeftID: 1, RightID: 1, Cost: 2500,
		PartOfSpeech: "名詞-一般", Readings: []string{"ダイコン"},
	})
	b.Add(builder.Entry{
		Surface: "を", LeftID: 2, RightID: 2, Cost: 1200,
		PartOfSpeech: "助詞-格助詞-一般",
	})
	dir := t.TempDir()
	if err := b.WriteDir(dir); err != nil {
		t.Fatalf("WriteDir: %v", err)
	}
	return dir
}

func TestDictionaryCachedPerPair(t *testing.T) {
	f := sen.NewFactory()
	dir := writeDict(t)

	d1, err := f.Dictionary(dir, "")
	if err != nil {
		t.Fatalf("Dictionary: %v", err)
	}
	d2, err := f.Dictionary(dir, "")
	if err != nil {
		t.Fatal(err)
	}
	if d1 != d2 {
		t.Fatal("same pair loaded twice")
	}
}

func TestDictionarySameDirMeansNoMerge(t *testing.T) {
	f := sen.NewFactory()
	dir := writeDict(t)

	base, err := f.Dictionary(dir, "")
	if err != nil {
		t.Fatal(err)
	}
	same, err := f.Dictionary(dir, dir)
	if err != nil {
		t.Fatal(err)
	}
	if base != same {
		t.Fatal("user dir equal to dictionary dir must resolve to the base dictionary")
	}
}

func TestDictionaryEmbeddedDefault(t *testing.T) {
	f := sen.NewFactory()
	d, err := f.Dictionary("", "")
	if err != nil {
		t.Fatalf("embedded dictionary: %v", err)
	}
	if d.TokenCount() == 0 {
		t.Fatal("embedded dictionary has no tokens")
	}
}

func TestDictionaryLoadErrorSticks(t *testing.T) {
	f := sen.NewFactory()
	empty := t.TempDir()
	if _, err := f.Dictionary(empty, ""); err == nil {
		t.Fatal("expected error for directory without dictionary files")
	}
	// second call hits the cached entry and reports the same failure
	if _, err := f.Dictionary(empty, ""); err == nil {
		t.Fatal("expected error on repeat load")
	}
}

func TestGetStringTagger(t *testing.T) {
	tg, err := sen.GetStringTagger("", "", false)
	if err != nil {
		t.Fatalf("GetStringTagger: %v", err)
	}
	tokens, err := tg.Analyze("大根を食べる。")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(tokens) != 4 {
		t.Fatalf("got %d tokens, want 4", len(tokens))
	}
	if got := tokens[0].Morpheme.PartOfSpeech(); got != "名詞-一般" {
		t.Fatalf("first token POS = %q", got)
	}
}

func TestGetStringTaggerUserDictionary(t *testing.T) {
	f := sen.NewFactory()
	base, err := f.Dictionary("", "")
	if err != nil {
		t.Fatal(err)
	}

	ub := builder.NewUser(base)
	ub.Add(builder.Entry{
		Surface: "ほうれん草", LeftID: 1, RightID: 1, Cost: 2000,
		PartOfSpeech: "名詞-一般", Readings: []string{"ホウレンソウ"},
	})
	userDir := t.TempDir()
	if err := ub.WriteDir(userDir); err != nil {
		t.Fatal(err)
	}

	tg, err := f.GetStringTagger("", userDir, false)
	if err != nil {
		t.Fatal(err)
	}
	tokens, err := tg.Analyze("ほうれん草を食べる。")
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) == 0 || tokens[0].Surface != "ほうれん草" {
		t.Fatalf("user entry not matched, tokens = %v", tokens)
	}
	if got := tokens[0].Morpheme.BasicForm(); got != "ほうれん草" {
		t.Fatalf("BasicForm = %q", got)
	}
}
