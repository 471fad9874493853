package search

import (
	"strings"
	"unicode/utf8"

	"itpf-legal-api/internal/domain/corpus"
)

// englishConnector is the only split point for English queries.
const englishConnector = " and "

// arabicConnectors are applied in order; earlier connectors split
// first and later ones refine the fragments they produced.
var arabicConnectors = []string{
	" و ",
	" أو ",
	" أيضا ",
	" بالإضافة إلى ",
	" علاوة على ذلك ",
}

// splitKeepLen is the minimum rune length a fragment needs to survive
// a connector split; shorter pieces are merged away as noise.
const splitKeepLen = 3

// fragmentMinLen is the minimum rune length of a final sub-query.
const fragmentMinLen = 2

// maxSubQueries caps how many sub-queries one request fans out into.
const maxSubQueries = 3

// validUpperBound is the sanity ceiling on the fragment count before
// truncation; a pathological split falls back to the original query.
const validUpperBound = 4

// SplitQuery partitions a compound query into independent sub-queries.
// English splits on the literal " and "; Arabic applies the connector
// list in order. Fragments shorter than the noise thresholds are
// dropped, the result is capped at three sub-queries, and any split
// that produces nothing usable falls back to the original query.
func SplitQuery(query string, lang corpus.Language) []string {
	q := strings.TrimSpace(query)
	if q == "" {
		return []string{q}
	}

	var fragments []string
	if lang == corpus.LanguageArabic {
		fragments = splitOnConnectors(q, arabicConnectors)
	} else {
		fragments = splitOnConnectors(q, []string{englishConnector})
	}

	kept := fragments[:0]
	for _, f := range fragments {
		if utf8.RuneCountInString(f) > fragmentMinLen {
			kept = append(kept, f)
		}
	}
	fragments = kept

	if len(fragments) > maxSubQueries {
		fragments = fragments[:maxSubQueries]
	}
	if len(fragments) < 1 || len(fragments) > validUpperBound {
		return []string{q}
	}
	return fragments
}

// splitOnConnectors applies each connector in order to every fragment
// produced so far. Pieces too short to stand alone are discarded; a
// fragment whose pieces are all too short stays whole.
func splitOnConnectors(q string, connectors []string) []string {
	fragments := []string{q}
	for _, conn := range connectors {
		next := make([]string, 0, len(fragments))
		for _, frag := range fragments {
			if !strings.Contains(frag, conn) {
				next = append(next, frag)
				continue
			}
			pieces := strings.Split(frag, conn)
			split := false
			for _, p := range pieces {
				p = strings.TrimSpace(p)
				if utf8.RuneCountInString(p) > splitKeepLen {
					next = append(next, p)
					split = true
				}
			}
			if !split {
				next = append(next, frag)
			}
		}
		fragments = next
	}
	return fragments
}
