package dictionary

import (
	"encoding/binary"
	"strings"
)

// Morpheme carries the grammatical attributes of one lexicon entry. The
// attributes live as integer indices and length-prefixed strings inside
// partOfSpeech.sen and are decoded the first time a caller asks for any of
// them. A Morpheme is bound to the surface it was matched with so an empty
// stored base form can fall back to the surface.
type Morpheme struct {
	dict      *Dictionary
	posOffset int32
	surface   string

	loaded         bool
	partOfSpeech   string
	conjType       string
	conjForm       string
	basicForm      string
	readings       []string
	pronunciations []string
}

// MorphemeAt binds the morpheme record at the given partOfSpeech.sen offset
// to a surface form.
func (d *Dictionary) MorphemeAt(posOffset int32, surface string) *Morpheme {
	return &Morpheme{dict: d, posOffset: posOffset, surface: surface}
}

// NewMorpheme builds a synthetic morpheme not backed by dictionary data,
// used for out-of-vocabulary tokens.
func NewMorpheme(partOfSpeech, surface string) *Morpheme {
	return &Morpheme{
		loaded:       true,
		partOfSpeech: partOfSpeech,
		conjType:     "*",
		conjForm:     "*",
		surface:      surface,
	}
}

// PartOfSpeech returns the hyphen-joined part-of-speech name, for example
// 名詞-一般.
func (m *Morpheme) PartOfSpeech() string {
	m.load()
	return m.partOfSpeech
}

// PartOfSpeechParts splits the part-of-speech name into the major category
// and up to three subcategories, padding missing levels with "*".
func (m *Morpheme) PartOfSpeechParts() [4]string {
	parts := [4]string{"*", "*", "*", "*"}
	for i, p := range strings.SplitN(m.PartOfSpeech(), "-", 4) {
		parts[i] = p
	}
	return parts
}

// ConjugationalType returns the conjugation type name, "*" when absent.
func (m *Morpheme) ConjugationalType() string {
	m.load()
	return m.conjType
}

// ConjugationalForm returns the conjugation form name, "*" when absent.
func (m *Morpheme) ConjugationalForm() string {
	m.load()
	return m.conjForm
}

// BasicForm returns the dictionary form. Entries whose base form equals the
// surface store it empty; the bound surface is returned instead.
func (m *Morpheme) BasicForm() string {
	m.load()
	if m.basicForm == "" {
		return m.surface
	}
	return m.basicForm
}

// Readings returns the readings of the entry, usually katakana.
func (m *Morpheme) Readings() []string {
	m.load()
	return m.readings
}

// Pronunciations returns the pronunciations of the entry.
func (m *Morpheme) Pronunciations() []string {
	m.load()
	return m.pronunciations
}

// load decodes the record once. The buffers were validated at dictionary
// load time only down to section granularity, so the decode itself stays
// defensive about offsets.
func (m *Morpheme) load() {
	if m.loaded {
		return
	}
	m.loaded = true
	m.conjType, m.conjForm = "*", "*"

	r := posReader{buf: m.dict.pos, off: int(m.posOffset)}
	m.partOfSpeech = m.dict.POSName(r.u16())
	m.conjType = m.dict.ConjTypeName(r.u16())
	m.conjForm = m.dict.ConjFormName(r.u16())
	m.basicForm = r.str()
	m.readings = r.strs()
	m.pronunciations = r.strs()
	if r.bad {
		m.partOfSpeech = "*"
	}
}

type posReader struct {
	buf []byte
	off int
	bad bool
}

func (r *posReader) u16() int {
	if r.bad || r.off+2 > len(r.buf) {
		r.bad = true
		return -1
	}
	v := int(binary.BigEndian.Uint16(r.buf[r.off : r.off+2]))
	r.off += 2
	return v
}

func (r *posReader) u8() int {
	if r.bad || r.off+1 > len(r.buf) {
		r.bad = true
		return 0
	}
	v := int(r.buf[r.off])
	r.off++
	return v
}

func (r *posReader) str() string {
	l := r.u16()
	if r.bad || l < 0 || r.off+l > len(r.buf) {
		r.bad = true
		return ""
	}
	s := string(r.buf[r.off : r.off+l])
	r.off += l
	return s
}

func (r *posReader) strs() []string {
	n := r.u8()
	if n == 0 {
		return nil
	}
	out := make([]string, 0, n)
	for i := 0; i < n && !r.bad; i++ {
		out = append(out, r.str())
	}
	return out
}
