package dto

// SearchRequest is the body of the LLM-backed search endpoints.
type SearchRequest struct {
	Query    string `json:"query" binding:"required"`
	Language string `json:"language" binding:"required"`
}

// LocalSearchRequest is the body of the LLM-free local search.
type LocalSearchRequest struct {
	Query      string `json:"query" binding:"required"`
	Language   string `json:"language" binding:"required"`
	MaxResults int    `json:"max_results"`
}
