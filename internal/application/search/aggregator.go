package search

import (
	"fmt"
	"sort"

	"itpf-legal-api/internal/domain/corpus"
)

// Aggregate merges the outcomes of all sub-query calls into one
// response: flatten in outcome order, deduplicate by article number,
// rank by score and keep the top results. When every outcome failed
// the response carries an empty list and a localized failure message
// instead of an error.
func Aggregate(outcomes []Outcome, lang corpus.Language) *AggregatedResponse {
	successful := 0
	for _, o := range outcomes {
		if o.OK() {
			successful++
		}
	}

	resp := &AggregatedResponse{
		Results:           []SearchResult{},
		SuccessfulQueries: successful,
		PartitionedSearch: true,
		Language:          lang,
	}
	if successful == 0 {
		resp.Message = FailureMessage(lang)
		return resp
	}

	merged := dedupe(flatten(outcomes))

	// Stable sort keeps arrival order among equal scores, so earlier
	// sub-queries win ties.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})

	if len(merged) > MaxResults {
		merged = merged[:MaxResults]
	}
	resp.Results = merged
	resp.Message = ResultMessage(lang, len(merged))
	return resp
}

// flatten collects results from successful outcomes in outcome order.
func flatten(outcomes []Outcome) []SearchResult {
	var out []SearchResult
	for _, o := range outcomes {
		if !o.OK() {
			continue
		}
		out = append(out, o.Results...)
	}
	return out
}

// dedupe keeps the first occurrence of each article number. Entries
// without an article number get a positional placeholder key so they
// never collide with each other.
func dedupe(results []SearchResult) []SearchResult {
	seen := make(map[string]struct{}, len(results))
	out := make([]SearchResult, 0, len(results))
	for i, r := range results {
		key := r.ArticleNumber
		if key == "" {
			key = fmt.Sprintf("result_%d", i)
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}
