package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"itpf-legal-api/internal/domain/corpus"
)

func TestDetectMode_SimpleLookupUsesChat(t *testing.T) {
	assert.Equal(t, ModeChat, DetectMode("what are the registration fees", corpus.LanguageEnglish))
	assert.Equal(t, ModeChat, DetectMode("ما هي رسوم التسجيل", corpus.LanguageArabic))
}

func TestDetectMode_AnalyticalMarkersUseReasoner(t *testing.T) {
	assert.Equal(t, ModeReasoner, DetectMode("explain the appeal process", corpus.LanguageEnglish))
	assert.Equal(t, ModeReasoner, DetectMode("compare doping penalties", corpus.LanguageEnglish))
	assert.Equal(t, ModeReasoner, DetectMode("لماذا تفرض العقوبات", corpus.LanguageArabic))
	assert.Equal(t, ModeReasoner, DetectMode("اشرح قواعد التسجيل", corpus.LanguageArabic))
}

func TestDetectMode_LongQueriesUseReasoner(t *testing.T) {
	long := strings.Repeat("registration rules ", 15)
	assert.Equal(t, ModeReasoner, DetectMode(long, corpus.LanguageEnglish))
}
