// Package search implements the query-partitioning and
// result-aggregation pipeline in front of the upstream LLM.
package search

import (
	"itpf-legal-api/internal/domain/corpus"
)

// Mode selects the upstream model family for a query.
type Mode string

// Query modes. Reasoner handles analytical and appendix-heavy
// questions with a larger token budget.
const (
	ModeChat     Mode = "chat"
	ModeReasoner Mode = "reasoner"
)

// MaxQueryLength bounds a user query.
const MaxQueryLength = 1000

// MaxResults is the number of entries an aggregated response keeps.
const MaxResults = 3

// SearchResult is one ranked hit returned by the upstream model.
// Identity is the article number; scores are model-supplied and only
// meaningful relative to each other.
type SearchResult struct {
	ArticleNumber string  `json:"article_number"`
	Title         string  `json:"title"`
	RelevantText  string  `json:"relevant_text"`
	Explanation   string  `json:"explanation"`
	Score         float64 `json:"score"`
}

// resultsPayload is the JSON shape the instruction prompt demands.
type resultsPayload struct {
	Results []SearchResult `json:"results"`
}

// Outcome is the success or failure of one upstream call, attributable
// to one sub-query or one corpus partition.
type Outcome struct {
	SubQuery  string
	Partition int // -1 unless the partition variant produced it
	Results   []SearchResult
	Err       error
}

// OK reports whether the outcome succeeded.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// AggregatedResponse is the merged, deduplicated, ranked and truncated
// result of all outcomes.
type AggregatedResponse struct {
	Results           []SearchResult  `json:"results"`
	SuccessfulQueries int             `json:"successful_queries"`
	PartitionedSearch bool            `json:"partitioned_search"`
	Language          corpus.Language `json:"language"`
	Message           string          `json:"message,omitempty"`
}

// LocalResultSource points a local hit back at its article.
type LocalResultSource struct {
	Article  string `json:"article"`
	Section  string `json:"section"`
	Document string `json:"document"`
}

// LocalResult is one hit of the LLM-free substring search.
type LocalResult struct {
	Title    string            `json:"title"`
	Content  string            `json:"content"`
	Score    float64           `json:"score"`
	Source   LocalResultSource `json:"source"`
	Language corpus.Language   `json:"language"`
}

// CorpusStats summarizes a loaded corpus.
type CorpusStats struct {
	Language   corpus.Language `json:"language"`
	Articles   int             `json:"articles"`
	Appendices int             `json:"appendices"`
	Title      string          `json:"title,omitempty"`
	Version    string          `json:"version,omitempty"`
}

// StreamEvent is one frame of the streaming search relay.
type StreamEvent struct {
	Type     string `json:"type"` // subqueries, outcome, results, error
	SubQuery string `json:"sub_query,omitempty"`
	Data     any    `json:"data,omitempty"`
}
