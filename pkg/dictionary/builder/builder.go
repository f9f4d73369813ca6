/*
Package builder compiles an in-memory lexicon into the binary .sen file set
read by the dictionary package. It covers programmatic dictionary
construction, user dictionaries in particular; the full-text lexicon
compiler of the original tool chain is a separate concern.

A standalone dictionary carries its own connection matrix and string tables.
A user dictionary built with NewUser instead expresses every index in the
namespace of the base dictionary it will be concatenated with: token record
offsets into partOfSpeech.sen are shifted by the base section size, trie
values by the base token count, and the string tables stay empty so the
merged tables equal the base tables.
*/
package builder

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/hkazuakey/lucene-gosen/pkg/dictionary"
)

// Entry is one lexicon line to compile.
type Entry struct {
	Surface        string
	LeftID         int16
	RightID        int16
	Cost           int16
	PartOfSpeech   string
	ConjType       string
	ConjForm       string
	BaseForm       string // empty means identical to the surface
	Readings       []string
	Pronunciations []string
}

// Builder accumulates entries and compiles them.
type Builder struct {
	entries *patricia.Trie
	matrix  [][]int16

	tokenOffset int32
	posOffset   int32

	posTable      []string
	conjTypeTable []string
	conjFormTable []string
	emitTables    bool
}

// New returns a builder for a standalone dictionary. Call SetMatrix before
// Build; a dictionary without a connection matrix is only usable as a user
// dictionary.
func New() *Builder {
	return &Builder{entries: patricia.NewTrie(), emitTables: true}
}

// NewUser returns a builder whose output is meant to be concatenated after
// base by dictionary.Merge. String references resolve against the base
// tables and all offsets are pre-shifted into the merged namespace.
func NewUser(base *dictionary.Dictionary) *Builder {
	return &Builder{
		entries:       patricia.NewTrie(),
		tokenOffset:   int32(base.TokenCount()),
		posOffset:     int32(base.POSDataSize()),
		posTable:      base.POSNames(),
		conjTypeTable: base.ConjTypeNames(),
		conjFormTable: base.ConjFormNames(),
	}
}

// SetMatrix sets the connection-cost matrix, row = left context id.
func (b *Builder) SetMatrix(m [][]int16) { b.matrix = m }

// Add queues an entry. Homographs are kept in insertion order.
func (b *Builder) Add(e Entry) {
	if e.ConjType == "" {
		e.ConjType = "*"
	}
	if e.ConjForm == "" {
		e.ConjForm = "*"
	}
	key := patricia.Prefix(e.Surface)
	if item := b.entries.Get(key); item != nil {
		b.entries.Set(key, append(item.([]Entry), e))
		return
	}
	b.entries.Insert(key, []Entry{e})
}

// Build compiles the queued entries into the named section buffers.
func (b *Builder) Build() (map[string][]byte, error) {
	var surfaces []string
	b.entries.Visit(func(prefix patricia.Prefix, _ patricia.Item) error {
		surfaces = append(surfaces, string(prefix))
		return nil
	})
	sort.Strings(surfaces)

	if b.emitTables {
		b.deriveTables(surfaces)
	}

	var posBuf, tokBuf []byte
	keys := make([][]rune, 0, len(surfaces))
	vals := make([]int32, 0, len(surfaces))
	tokenIndex := b.tokenOffset
	for _, surf := range surfaces {
		start := tokenIndex
		runes := []rune(surf)
		for _, e := range b.entries.Get(patricia.Prefix(surf)).([]Entry) {
			rec, err := b.encodePOS(e)
			if err != nil {
				return nil, fmt.Errorf("entry %q: %w", surf, err)
			}
			posOff := b.posOffset + int32(len(posBuf))
			posBuf = append(posBuf, rec...)

			tok := make([]byte, 16)
			binary.BigEndian.PutUint16(tok[0:2], uint16(len(runes)))
			binary.BigEndian.PutUint16(tok[2:4], uint16(e.LeftID))
			binary.BigEndian.PutUint16(tok[4:6], uint16(e.RightID))
			binary.BigEndian.PutUint16(tok[6:8], uint16(e.Cost))
			binary.BigEndian.PutUint32(tok[8:12], uint32(posOff))
			tokBuf = append(tokBuf, tok...)
			tokenIndex++
		}
		count := tokenIndex - start
		if count > 0xff {
			return nil, fmt.Errorf("entry %q: %d homographs exceed range limit", surf, count)
		}
		keys = append(keys, runes)
		vals = append(vals, start<<8|count)
	}

	trieBuf := buildDoubleArray(keys, vals)

	costBuf := encodeMatrix(b.matrix)
	idxBuf := encodeTables(b.posTable, b.conjTypeTable, b.conjFormTable, b.emitTables)

	header := make([]byte, 16)
	binary.BigEndian.PutUint32(header[0:4], uint32(len(costBuf)))
	binary.BigEndian.PutUint32(header[4:8], uint32(len(posBuf)))
	binary.BigEndian.PutUint32(header[8:12], uint32(len(tokBuf)))
	binary.BigEndian.PutUint32(header[12:16], uint32(len(trieBuf)))

	log.Debugf("built dictionary: %d surfaces, %d tokens, %d trie bytes",
		len(surfaces), int(tokenIndex-b.tokenOffset), len(trieBuf))

	return map[string][]byte{
		dictionary.HeaderFile:         header,
		dictionary.ConnectionCostFile: costBuf,
		dictionary.POSFile:            posBuf,
		dictionary.TokenFile:          tokBuf,
		dictionary.TrieFile:           trieBuf,
		dictionary.POSIndexFile:       idxBuf,
	}, nil
}

// WriteDir compiles and writes the file set into dir.
func (b *Builder) WriteDir(dir string) error {
	files, err := b.Build()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dictionary dir: %w", err)
	}
	for name, buf := range files {
		if err := os.WriteFile(filepath.Join(dir, name), buf, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}

func (b *Builder) deriveTables(surfaces []string) {
	pos := map[string]bool{}
	ctype := map[string]bool{}
	cform := map[string]bool{}
	for _, surf := range surfaces {
		for _, e := range b.entries.Get(patricia.Prefix(surf)).([]Entry) {
			pos[e.PartOfSpeech] = true
			ctype[e.ConjType] = true
			cform[e.ConjForm] = true
		}
	}
	b.posTable = sortedKeys(pos)
	b.conjTypeTable = sortedKeys(ctype)
	b.conjFormTable = sortedKeys(cform)
}

func (b *Builder) encodePOS(e Entry) ([]byte, error) {
	pi := indexOf(b.posTable, e.PartOfSpeech)
	ti := indexOf(b.conjTypeTable, e.ConjType)
	fi := indexOf(b.conjFormTable, e.ConjForm)
	if pi < 0 || ti < 0 || fi < 0 {
		return nil, fmt.Errorf("string table misses %q/%q/%q", e.PartOfSpeech, e.ConjType, e.ConjForm)
	}
	var buf []byte
	buf = appendU16(buf, pi)
	buf = appendU16(buf, ti)
	buf = appendU16(buf, fi)
	buf = appendStr(buf, e.BaseForm)
	if len(e.Readings) > 0xff || len(e.Pronunciations) > 0xff {
		return nil, fmt.Errorf("too many readings or pronunciations")
	}
	buf = append(buf, byte(len(e.Readings)))
	for _, s := range e.Readings {
		buf = appendStr(buf, s)
	}
	buf = append(buf, byte(len(e.Pronunciations)))
	for _, s := range e.Pronunciations {
		buf = appendStr(buf, s)
	}
	return buf, nil
}

func encodeMatrix(m [][]int16) []byte {
	if len(m) == 0 {
		return nil
	}
	buf := make([]byte, 0, 4+len(m)*len(m[0])*2)
	buf = appendU16(buf, len(m))
	buf = appendU16(buf, len(m[0]))
	for _, row := range m {
		for _, v := range row {
			buf = appendU16(buf, int(uint16(v)))
		}
	}
	return buf
}

func encodeTables(pos, ctype, cform []string, emit bool) []byte {
	if !emit {
		pos, ctype, cform = nil, nil, nil
	}
	var buf []byte
	for _, table := range [][]string{pos, ctype, cform} {
		buf = appendU16(buf, len(table))
		for _, s := range table {
			buf = appendStr(buf, s)
		}
	}
	return buf
}

func appendU16(buf []byte, v int) []byte {
	return append(buf, byte(v>>8), byte(v))
}

func appendStr(buf []byte, s string) []byte {
	buf = appendU16(buf, len(s))
	return append(buf, s...)
}

func indexOf(table []string, s string) int {
	for i, v := range table {
		if v == s {
			return i
		}
	}
	return -1
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
