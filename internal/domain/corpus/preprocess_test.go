package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeArabic_UnifiesLetterVariants(t *testing.T) {
	assert.Equal(t, "احمد", NormalizeArabic("أحمد"))
	assert.Equal(t, "اسلام", NormalizeArabic("إسلام"))
	assert.Equal(t, "امال", NormalizeArabic("آمال"))
	assert.Equal(t, "مدرسه", NormalizeArabic("مدرسة"))
	assert.Equal(t, "مستشفي", NormalizeArabic("مستشفى"))
}

func TestNormalizeArabic_NeverShortens(t *testing.T) {
	in := "المادة رقم 15 من أحكام الاتحاد"
	out := NormalizeArabic(in)
	assert.Equal(t, len([]rune(in)), len([]rune(out)))
}

func TestSpaceArabicLatin_InsertsBoundarySpaces(t *testing.T) {
	assert.Equal(t, "المادة 15", SpaceArabicLatin("المادة15"))
	assert.Equal(t, "15 مادة", SpaceArabicLatin("15مادة"))
}

func TestCleanText_EnglishOnlyTrims(t *testing.T) {
	assert.Equal(t, "Article 15", CleanText("  Article 15  ", LanguageEnglish))
}

func TestPreprocessForPrompt_ArabicClonesAndCleans(t *testing.T) {
	c := &Corpus{
		Language: LanguageArabic,
		Articles: []Article{
			{ArticleNumber: "1", Title: "أحكام", Content: "المادة15 تنص على الأحكام"},
		},
	}

	out := PreprocessForPrompt(c)
	require.NotSame(t, c, out)
	assert.Equal(t, "احكام", out.Articles[0].Title)
	assert.Contains(t, out.Articles[0].Content, "الماده 15")

	// Source corpus untouched.
	assert.Equal(t, "أحكام", c.Articles[0].Title)
	assert.Equal(t, "المادة15 تنص على الأحكام", c.Articles[0].Content)
}

func TestPreprocessForPrompt_EnglishPassThrough(t *testing.T) {
	c := &Corpus{
		Language: LanguageEnglish,
		Articles: []Article{{ArticleNumber: "1", Content: "unchanged"}},
	}
	assert.Same(t, c, PreprocessForPrompt(c))
}
