package corpus

import (
	"regexp"
	"strings"
)

// Arabic letter unification table used before prompt embedding. The
// source texts mix hamza forms and final-form letters inconsistently;
// unifying them improves upstream matching without dropping any text.
var arabicReplacer = strings.NewReplacer(
	"أ", "ا",
	"إ", "ا",
	"آ", "ا",
	"ة", "ه",
	"ى", "ي",
)

var (
	arabicThenLatin = regexp.MustCompile(`([\p{Arabic}])([A-Za-z0-9])`)
	latinThenArabic = regexp.MustCompile(`([A-Za-z0-9])([\p{Arabic}])`)
)

// NormalizeArabic unifies Arabic letter variants. The input is never
// shortened, only substituted rune for rune.
func NormalizeArabic(s string) string {
	return arabicReplacer.Replace(s)
}

// SpaceArabicLatin inserts a space at Arabic/Latin script boundaries
// so article numbers glued to Arabic text stay tokenizable.
func SpaceArabicLatin(s string) string {
	out := arabicThenLatin.ReplaceAllString(s, "$1 $2")
	out = latinThenArabic.ReplaceAllString(out, "$1 $2")
	return out
}

// CleanText applies the language-specific, loss-free normalization
// used both by the request pipeline and the offline corpus tooling.
func CleanText(s string, lang Language) string {
	if lang != LanguageArabic {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(SpaceArabicLatin(NormalizeArabic(s)))
}

// PreprocessForPrompt returns a derived copy of the corpus with
// normalized article text. The loaded corpus itself is never touched:
// every transformation lands on the clone.
func PreprocessForPrompt(c *Corpus) *Corpus {
	if c.Language != LanguageArabic {
		return c
	}
	out := c.Clone()
	for i := range out.Articles {
		out.Articles[i].Title = CleanText(out.Articles[i].Title, c.Language)
		out.Articles[i].Content = CleanText(out.Articles[i].Content, c.Language)
	}
	return out
}
