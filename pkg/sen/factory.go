/*
Package sen is the public face of the morphological analyzer: it loads and
caches dictionaries and hands out ready-to-use taggers.

Dictionaries are expensive to load and immutable afterwards, so a Factory
loads each (dictionary, user dictionary) pair exactly once and shares the
result; concurrent first requests for the same pair wait for the single
load. Taggers are cheap, hold per-stream state and must not be shared
between goroutines.
*/
package sen

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/hkazuakey/lucene-gosen/pkg/dictionary"
	"github.com/hkazuakey/lucene-gosen/pkg/tagger"
	"github.com/hkazuakey/lucene-gosen/pkg/tokenizer"
)

// UnknownPOS labels out-of-vocabulary morphemes.
const UnknownPOS = "未知語"

// Factory caches loaded dictionaries keyed by their directory pair.
type Factory struct {
	mu    sync.Mutex
	dicts map[string]*dictEntry
}

type dictEntry struct {
	once sync.Once
	dict *dictionary.Dictionary
	err  error
}

// NewFactory returns an empty dictionary cache.
func NewFactory() *Factory {
	return &Factory{dicts: make(map[string]*dictEntry)}
}

// Dictionary returns the cached dictionary for the directory pair, loading
// and merging it on first use. An empty dictionaryDir selects the embedded
// default dictionary. A userDir equal to dictionaryDir (or empty) means no
// merge: the base dictionary is returned alone.
func (f *Factory) Dictionary(dictionaryDir, userDir string) (*dictionary.Dictionary, error) {
	if userDir == dictionaryDir {
		userDir = ""
	}

	f.mu.Lock()
	key := dictionaryDir + "\x00" + userDir
	e, ok := f.dicts[key]
	if !ok {
		e = &dictEntry{}
		f.dicts[key] = e
	}
	f.mu.Unlock()

	e.once.Do(func() {
		e.dict, e.err = load(dictionaryDir, userDir)
		if e.err != nil {
			log.Errorf("dictionary load failed for %q/%q: %v", dictionaryDir, userDir, e.err)
		}
	})
	return e.dict, e.err
}

func load(dictionaryDir, userDir string) (*dictionary.Dictionary, error) {
	base, err := dictionary.Load(dictionaryDir)
	if err != nil {
		return nil, err
	}
	if userDir == "" {
		return base, nil
	}
	user, err := dictionary.Load(userDir)
	if err != nil {
		return nil, err
	}
	return dictionary.Merge(base, user), nil
}

// GetStringTagger builds a tagger bound to the (possibly merged)
// dictionary of the directory pair.
func (f *Factory) GetStringTagger(dictionaryDir, userDir string, tokenizeUnknownKatakana bool) (*tagger.Tagger, error) {
	dict, err := f.Dictionary(dictionaryDir, userDir)
	if err != nil {
		return nil, err
	}
	return tagger.New(tokenizer.New(dict, UnknownPOS, tokenizeUnknownKatakana)), nil
}

var defaultFactory = NewFactory()

// GetStringTagger uses a process-wide default factory. Composing systems
// that want explicit ownership of the cache should create their own
// Factory instead.
func GetStringTagger(dictionaryDir, userDir string, tokenizeUnknownKatakana bool) (*tagger.Tagger, error) {
	return defaultFactory.GetStringTagger(dictionaryDir, userDir, tokenizeUnknownKatakana)
}
