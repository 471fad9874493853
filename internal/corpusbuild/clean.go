package corpusbuild

import (
	"itpf-legal-api/internal/domain/corpus"
)

// Clean normalizes every article's text in place and flattens any
// chaptered layout into the plain article list. Arabic gets letter
// unification and script-boundary spacing; both languages get
// whitespace trimming. No text is removed.
func Clean(doc *Document, lang corpus.Language) *Document {
	articles := doc.FlatArticles()
	cleaned := make([]corpus.Article, len(articles))
	for i, art := range articles {
		art.Title = corpus.CleanText(art.Title, lang)
		art.Content = corpus.CleanText(art.Content, lang)
		art.Section = corpus.CleanText(art.Section, lang)
		for j := range art.PenaltyTable {
			art.PenaltyTable[j].Offense = corpus.CleanText(art.PenaltyTable[j].Offense, lang)
			art.PenaltyTable[j].Penalty = corpus.CleanText(art.PenaltyTable[j].Penalty, lang)
		}
		cleaned[i] = art
	}

	return &Document{
		Metadata:   doc.Metadata,
		Articles:   cleaned,
		Appendices: doc.Appendices,
	}
}
