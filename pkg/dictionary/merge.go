package dictionary

import "github.com/charmbracelet/log"

// Merge combines a base dictionary with a user dictionary. Each binary
// section is the base bytes followed by the user bytes; each string table is
// the stable two-way merge of the sorted source tables, duplicates kept.
//
// The merge is structural, not a re-link: the user dictionary must already
// express its token indices, part-of-speech offsets and string-table
// references in the concatenated namespace (builder.NewUser produces such
// dictionaries). Trie lookups on the merged result search the base
// sub-trie first, then the user sub-trie.
func Merge(base, user *Dictionary) *Dictionary {
	d := &Dictionary{
		costs:  concat(base.costs, user.costs),
		pos:    concat(base.pos, user.pos),
		tokens: concat(base.tokens, user.tokens),
		trie:   concat(base.trie, user.trie),

		posIndex:      mergeTables(base.posIndex, user.posIndex),
		conjTypeIndex: mergeTables(base.conjTypeIndex, user.conjTypeIndex),
		conjFormIndex: mergeTables(base.conjFormIndex, user.conjFormIndex),

		leftSize:  base.leftSize,
		rightSize: base.rightSize,
		trieSplit: len(base.trie),
	}
	log.Debugf("merged dictionary: %d base + %d user tokens",
		base.TokenCount(), user.TokenCount())
	return d
}

func concat(a, b []byte) []byte {
	out := make([]byte, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// mergeTables merges two sorted string tables, keeping duplicates and
// taking the first table's entry on ties.
func mergeTables(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		if j == len(b) || (i != len(a) && a[i] <= b[j]) {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	return out
}
