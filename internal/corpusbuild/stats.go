package corpusbuild

import (
	"unicode/utf8"
)

// Stats summarizes a corpus document.
type Stats struct {
	Articles      int    `json:"articles"`
	Appendices    int    `json:"appendices"`
	ContentRunes  int    `json:"content_runes"`
	EmptyArticles int    `json:"empty_articles"`
	Title         string `json:"title,omitempty"`
	Version       string `json:"version,omitempty"`
}

// Summarize computes document statistics.
func Summarize(doc *Document) Stats {
	s := Stats{
		Articles:   len(doc.FlatArticles()),
		Appendices: len(doc.Appendices),
		Title:      doc.Metadata.Title,
		Version:    doc.Metadata.Version,
	}
	for _, art := range doc.FlatArticles() {
		s.ContentRunes += utf8.RuneCountInString(art.Content)
		if art.Content == "" {
			s.EmptyArticles++
		}
	}
	return s
}
