/*
Package dictionary implements the compiled lexicon used by the morphological
analyzer: the connection-cost matrix, the token records, the part-of-speech
data and the double-array trie over surface forms, all kept as the raw
big-endian buffers read from a dictionary directory.

A Dictionary is immutable after Load and safe for concurrent readers. The
binary layout matches the .sen file set:

	header.sen          four int32 section byte lengths (costs, pos, tokens, trie)
	connectionCost.sen  int16 leftSize, int16 rightSize, leftSize*rightSize int16 cells
	token.sen           fixed 16-byte records
	partOfSpeech.sen    variable records referenced by token.sen offsets
	trie.sen            int32 cells, interleaved double-array base/check pairs
	posIndex.sen        three length-prefixed string tables
*/
package dictionary

import "encoding/binary"

// tokenRecordSize is the fixed byte size of one token.sen record:
// uint16 rune length, int16 left id, int16 right id, int16 cost,
// int32 part-of-speech offset, 4 reserved bytes.
const tokenRecordSize = 16

// Dictionary holds the loaded binary sections and decoded string tables.
type Dictionary struct {
	costs  []byte
	pos    []byte
	tokens []byte
	trie   []byte

	posIndex      []string
	conjTypeIndex []string
	conjFormIndex []string

	leftSize  int
	rightSize int

	// trieSplit is the byte length of the first sub-trie. For a plain
	// dictionary it equals len(trie); a merged dictionary keeps the base
	// trie in [0:trieSplit] and the user trie after it.
	trieSplit int
}

// TokenRecord is one decoded token.sen entry.
type TokenRecord struct {
	Length    int   // surface form length in runes
	LeftID    int16 // left context id, row of the connection matrix
	RightID   int16 // right context id, column of the connection matrix
	Cost      int16 // emission cost
	POSOffset int32 // byte offset of the morpheme record in partOfSpeech.sen
}

// TokenCount returns the number of token records, across both dictionaries
// when merged.
func (d *Dictionary) TokenCount() int {
	return len(d.tokens) / tokenRecordSize
}

// TokenAt decodes the token record with the given index.
func (d *Dictionary) TokenAt(i int32) TokenRecord {
	off := int(i) * tokenRecordSize
	b := d.tokens[off : off+tokenRecordSize]
	return TokenRecord{
		Length:    int(binary.BigEndian.Uint16(b[0:2])),
		LeftID:    int16(binary.BigEndian.Uint16(b[2:4])),
		RightID:   int16(binary.BigEndian.Uint16(b[4:6])),
		Cost:      int16(binary.BigEndian.Uint16(b[6:8])),
		POSOffset: int32(binary.BigEndian.Uint32(b[8:12])),
	}
}

// ConnectionCost returns the transition cost from a morpheme with the given
// right context id to one with the given left context id. Lookup is
// directional. Ids outside the matrix cost nothing; the unknown-word path
// uses context id 0 which every compiled matrix carries.
func (d *Dictionary) ConnectionCost(rightOfLeft, leftOfRight int16) int16 {
	l, r := int(rightOfLeft), int(leftOfRight)
	if l < 0 || l >= d.leftSize || r < 0 || r >= d.rightSize {
		return 0
	}
	off := 4 + (l*d.rightSize+r)*2
	return int16(binary.BigEndian.Uint16(d.costs[off : off+2]))
}

// MatrixSize returns the connection matrix dimensions (left, right).
func (d *Dictionary) MatrixSize() (int, int) {
	return d.leftSize, d.rightSize
}

// POSName resolves an index into the part-of-speech name table.
func (d *Dictionary) POSName(i int) string { return tableAt(d.posIndex, i) }

// ConjTypeName resolves an index into the conjugation-type name table.
func (d *Dictionary) ConjTypeName(i int) string { return tableAt(d.conjTypeIndex, i) }

// ConjFormName resolves an index into the conjugation-form name table.
func (d *Dictionary) ConjFormName(i int) string { return tableAt(d.conjFormIndex, i) }

// POSNames returns a copy of the part-of-speech name table.
func (d *Dictionary) POSNames() []string { return append([]string(nil), d.posIndex...) }

// ConjTypeNames returns a copy of the conjugation-type name table.
func (d *Dictionary) ConjTypeNames() []string { return append([]string(nil), d.conjTypeIndex...) }

// ConjFormNames returns a copy of the conjugation-form name table.
func (d *Dictionary) ConjFormNames() []string { return append([]string(nil), d.conjFormIndex...) }

// POSDataSize returns the byte length of the part-of-speech section. A user
// dictionary compiled for concatenation offsets its morpheme references by
// this amount.
func (d *Dictionary) POSDataSize() int { return len(d.pos) }

func tableAt(table []string, i int) string {
	if i < 0 || i >= len(table) {
		return "*"
	}
	return table[i]
}
