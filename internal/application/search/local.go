package search

import (
	"sort"
	"strings"

	"itpf-legal-api/internal/domain/corpus"
)

// Local search scoring weights. Title hits weigh double a content hit
// before the final scale-up.
const (
	titleMatchWeight   = 10
	contentMatchWeight = 5
	localScoreScale    = 10
	localScoreCap      = 95
)

// LocalSearch runs the LLM-free substring match over the corpus. It
// counts case-insensitive occurrences of the query in titles and
// contents, scores them, and returns the top maxResults hits.
func LocalSearch(corp *corpus.Corpus, query string, maxResults int) []LocalResult {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	if corp.Language == corpus.LanguageArabic {
		q = corpus.NormalizeArabic(q)
	}
	if maxResults <= 0 {
		maxResults = MaxResults
	}

	var hits []LocalResult
	for _, art := range corp.Articles {
		title := strings.ToLower(art.Title)
		content := strings.ToLower(art.Content)
		if corp.Language == corpus.LanguageArabic {
			title = corpus.NormalizeArabic(title)
			content = corpus.NormalizeArabic(content)
		}

		titleHits := strings.Count(title, q)
		contentHits := strings.Count(content, q)
		if titleHits == 0 && contentHits == 0 {
			continue
		}

		score := float64((titleHits*titleMatchWeight + contentHits*contentMatchWeight) * localScoreScale)
		if score > localScoreCap {
			score = localScoreCap
		}

		hits = append(hits, LocalResult{
			Title:   art.Title,
			Content: snippet(art.Content, 300),
			Score:   score,
			Source: LocalResultSource{
				Article:  art.ArticleNumber,
				Section:  art.Section,
				Document: corp.Metadata.Title,
			},
			Language: corp.Language,
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if len(hits) > maxResults {
		hits = hits[:maxResults]
	}
	return hits
}

// snippet truncates content on a rune boundary.
func snippet(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
