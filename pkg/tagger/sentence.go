package tagger

// defaultBufferSize is the rune capacity of a stream's read buffer.
const defaultBufferSize = 4096

type span struct {
	start, end int
}

// sentenceSpans partitions runes into sentence spans. Every rune belongs to
// exactly one span, so concatenating the analyzed surfaces reconstructs the
// input. A sentence ends after a terminator (。．！？!? or a line
// terminator) plus any closing quotes or brackets that follow it.
func sentenceSpans(runes []rune) []span {
	var spans []span
	start := 0
	for i := 0; i < len(runes); {
		if isSentenceTerminator(runes[i]) || isLineTerminator(runes[i]) {
			j := i + 1
			for j < len(runes) && isClosing(runes[j]) {
				j++
			}
			spans = append(spans, span{start, j})
			start, i = j, j
			continue
		}
		i++
	}
	if start < len(runes) {
		spans = append(spans, span{start, len(runes)})
	}
	return spans
}

func isSentenceTerminator(r rune) bool {
	switch r {
	case '。', '．', '！', '？', '!', '?':
		return true
	}
	return false
}

// isLineTerminator matches the characters a buffer refill may safely cut at.
func isLineTerminator(r rune) bool {
	switch r {
	case '\r', '\n', 0x0085, 0x2028, 0x2029:
		return true
	}
	return false
}

func isClosing(r rune) bool {
	switch r {
	case '」', '』', '）', '】', ')', ']', '”', '’':
		return true
	}
	return false
}
