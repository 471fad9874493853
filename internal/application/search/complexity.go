package search

import (
	"strings"
	"unicode/utf8"

	"itpf-legal-api/internal/domain/corpus"
)

// complexityMarkers flag analytical questions that benefit from the
// reasoner model over the plain chat model.
var complexityMarkers = map[corpus.Language][]string{
	corpus.LanguageArabic: {
		"لماذا", "اشرح", "قارن", "الفرق", "حلل", "ما العلاقة", "كيف يختلف", "الملحق",
	},
	corpus.LanguageEnglish: {
		"why", "explain", "compare", "difference", "analyze", "analyse",
		"relationship", "how does", "appendix",
	},
}

// reasonerLengthThreshold is the rune count past which a query is
// treated as complex regardless of wording.
const reasonerLengthThreshold = 200

// DetectMode decides which upstream model family answers a query.
// Simple lookups go to the chat model; analytical or long questions go
// to the reasoner.
func DetectMode(query string, lang corpus.Language) Mode {
	if utf8.RuneCountInString(query) > reasonerLengthThreshold {
		return ModeReasoner
	}
	lowered := strings.ToLower(query)
	for _, marker := range complexityMarkers[lang] {
		if strings.Contains(lowered, marker) {
			return ModeReasoner
		}
	}
	return ModeChat
}
