package dictionary

import "encoding/binary"

// The trie section is a darts-style double array serialized as int32 cells:
// unit i stores base at cell 2i and check at cell 2i+1. The transition code
// for rune r is r+1; code 0 marks a stored key. A stored value v is kept as
// -(v+1) in the base of the terminal slot and packs a contiguous token
// range: start index in the upper bits, homograph count in the low byte.

func unpackRange(v int32) (start, count int32) {
	return v >> 8, v & 0xff
}

// CommonPrefixSearch reports every lexicon surface form that is a prefix of
// runes[pos:]. fn receives the matched rune length and the token record
// range sharing that surface; returning false stops the search. Matches are
// produced shortest-first, base dictionary before user dictionary, which
// fixes the tie-break order of the path search. No match is not an error.
func (d *Dictionary) CommonPrefixSearch(runes []rune, pos int, fn func(length int, start, count int32) bool) {
	if pos < 0 || pos >= len(runes) {
		return
	}
	key := runes[pos:]
	if !prefixSearch(d.trie[:d.trieSplit], key, fn) {
		return
	}
	if d.trieSplit < len(d.trie) {
		prefixSearch(d.trie[d.trieSplit:], key, fn)
	}
}

// prefixSearch walks one double-array section. Returns false when fn asked
// to stop.
func prefixSearch(trie []byte, key []rune, fn func(length int, start, count int32) bool) bool {
	units := len(trie) / 8
	if units == 0 {
		return true
	}
	cell := func(n int) int32 {
		return int32(binary.BigEndian.Uint32(trie[n*4 : n*4+4]))
	}
	base := func(u int) int32 { return cell(2 * u) }
	check := func(u int) int32 { return cell(2*u + 1) }

	b := base(0)
	for i, r := range key {
		// a key ends at the current node when the terminal slot points back
		p := int(b)
		if p >= 0 && p < units && check(p) == b {
			if n := base(p); n < 0 {
				start, count := unpackRange(-n - 1)
				if !fn(i, start, count) {
					return false
				}
			}
		}
		p = int(b) + int(r) + 1
		if p <= 0 || p >= units || check(p) != b {
			return true
		}
		b = base(p)
	}
	p := int(b)
	if p >= 0 && p < units && check(p) == b {
		if n := base(p); n < 0 {
			start, count := unpackRange(-n - 1)
			if !fn(len(key), start, count) {
				return false
			}
		}
	}
	return true
}
