// Package corpus models the bilingual legal document corpus.
package corpus

import "encoding/json"

// Language tags a corpus or a request.
type Language string

// Supported languages.
const (
	LanguageArabic  Language = "ar"
	LanguageEnglish Language = "en"
)

// Valid reports whether l is a supported language tag.
func (l Language) Valid() bool {
	return l == LanguageArabic || l == LanguageEnglish
}

// PenaltyRow is one entry of an article's structured penalty table.
type PenaltyRow struct {
	Offense string `json:"offense"`
	Penalty string `json:"penalty"`
}

// Article is a single legal article. Loaded articles are treated as
// immutable; preprocessing always works on copies.
type Article struct {
	ArticleNumber string       `json:"article_number"`
	Title         string       `json:"title"`
	Content       string       `json:"content"`
	Section       string       `json:"section,omitempty"`
	PenaltyTable  []PenaltyRow `json:"penalty_table,omitempty"`
}

// Appendix is a supplementary document attached to the rules. Content
// is kept as raw JSON so structured tables survive round trips intact.
type Appendix struct {
	AppendixNumber string          `json:"appendix_number"`
	Title          string          `json:"title"`
	Content        json.RawMessage `json:"content,omitempty"`
}

// Metadata describes the source document.
type Metadata struct {
	Title    string `json:"title,omitempty"`
	Version  string `json:"version,omitempty"`
	Language string `json:"language,omitempty"`
	Source   string `json:"source,omitempty"`
}

// Chapter groups articles in the English source files.
type Chapter struct {
	ChapterNumber string    `json:"chapter_number,omitempty"`
	Title         string    `json:"title,omitempty"`
	Articles      []Article `json:"articles"`
}

// Corpus is the full set of legal articles and appendices for one
// language.
type Corpus struct {
	Language   Language   `json:"language"`
	Metadata   Metadata   `json:"metadata"`
	Articles   []Article  `json:"articles"`
	Appendices []Appendix `json:"appendices,omitempty"`
}

// Clone returns a deep copy of the corpus article list and a shallow
// copy of everything else. Appendix content is shared because it is
// never rewritten.
func (c *Corpus) Clone() *Corpus {
	out := &Corpus{
		Language:   c.Language,
		Metadata:   c.Metadata,
		Articles:   make([]Article, len(c.Articles)),
		Appendices: c.Appendices,
	}
	copy(out.Articles, c.Articles)
	return out
}

// partFile is the on-disk shape of one split corpus part.
type partFile struct {
	Metadata   Metadata   `json:"metadata"`
	Articles   []Article  `json:"articles"`
	Chapters   []Chapter  `json:"chapters"`
	Appendices []Appendix `json:"appendices"`
}
