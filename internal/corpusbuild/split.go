package corpusbuild

import (
	"fmt"

	"itpf-legal-api/internal/domain/corpus"
)

// Split chunks a whole corpus document into count part documents of
// ceil(n/count) articles each, in article order. Metadata rides along
// on every part; appendices go to part 1 only, matching what the
// loader expects.
func Split(doc *Document, count int) ([]*Document, error) {
	articles := doc.FlatArticles()
	if len(articles) == 0 {
		return nil, fmt.Errorf("document has no articles to split")
	}
	if count <= 0 {
		count = 3
	}

	partitions := corpus.PartitionArticles(articles, count)
	parts := make([]*Document, 0, len(partitions))
	for _, p := range partitions {
		part := &Document{
			Metadata: doc.Metadata,
			Articles: p.Articles,
		}
		if p.Index == 0 {
			part.Appendices = doc.Appendices
		}
		parts = append(parts, part)
	}
	return parts, nil
}

// PartFileName returns the canonical part file name for a language,
// with part numbering starting at 1.
func PartFileName(lang corpus.Language, index int) string {
	stem := "english_data_part"
	if lang == corpus.LanguageArabic {
		stem = "arabic_data_part"
	}
	return fmt.Sprintf("%s%d.json", stem, index+1)
}
