package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itpf-legal-api/internal/domain/corpus"
)

func TestSplitQuery_EnglishAnd(t *testing.T) {
	got := SplitQuery("rules for horses and rules for riders", corpus.LanguageEnglish)
	require.Len(t, got, 2)
	assert.Equal(t, "rules for horses", got[0])
	assert.Equal(t, "rules for riders", got[1])
}

func TestSplitQuery_EnglishNoConnector(t *testing.T) {
	got := SplitQuery("what are the doping penalties", corpus.LanguageEnglish)
	require.Len(t, got, 1)
	assert.Equal(t, "what are the doping penalties", got[0])
}

func TestSplitQuery_EnglishEmbeddedAndWithoutSpaces(t *testing.T) {
	// "and" inside a word must not split.
	got := SplitQuery("standard handling procedures", corpus.LanguageEnglish)
	require.Len(t, got, 1)
}

func TestSplitQuery_ArabicConnector(t *testing.T) {
	got := SplitQuery("شروط تسجيل الخيول و عقوبات المنشطات", corpus.LanguageArabic)
	require.Len(t, got, 2)
	assert.Equal(t, "شروط تسجيل الخيول", got[0])
	assert.Equal(t, "عقوبات المنشطات", got[1])
}

func TestSplitQuery_ArabicMultipleConnectors(t *testing.T) {
	got := SplitQuery("شروط التسجيل و عقوبات المنشطات أو قواعد الاستئناف", corpus.LanguageArabic)
	require.Len(t, got, 3)
}

func TestSplitQuery_CapAtThree(t *testing.T) {
	got := SplitQuery("alpha rules and beta rules and gamma rules and delta rules", corpus.LanguageEnglish)
	assert.Len(t, got, 3)
	assert.Equal(t, "alpha rules", got[0])
}

func TestSplitQuery_ShortFragmentsDropped(t *testing.T) {
	// The two-rune fragment disappears; the rest survives.
	got := SplitQuery("registration requirements and ok and appeal deadlines", corpus.LanguageEnglish)
	require.Len(t, got, 2)
	assert.Equal(t, "registration requirements", got[0])
	assert.Equal(t, "appeal deadlines", got[1])
}

func TestSplitQuery_AllFragmentsTooShortFallsBack(t *testing.T) {
	q := "a and b"
	got := SplitQuery(q, corpus.LanguageEnglish)
	require.Len(t, got, 1)
	assert.Equal(t, q, got[0])
}

func TestSplitQuery_TrimsWhitespace(t *testing.T) {
	got := SplitQuery("  horse passports and rider licences  ", corpus.LanguageEnglish)
	require.Len(t, got, 2)
	assert.Equal(t, "horse passports", got[0])
	assert.Equal(t, "rider licences", got[1])
}

func TestSplitQuery_ArabicWithoutConnector(t *testing.T) {
	q := "ما هي عقوبات المنشطات"
	got := SplitQuery(q, corpus.LanguageArabic)
	require.Len(t, got, 1)
	assert.Equal(t, q, got[0])
}
