package search

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"itpf-legal-api/internal/domain/corpus"
	apperrors "itpf-legal-api/pkg/errors"
	"itpf-legal-api/pkg/logger"
	"itpf-legal-api/pkg/metrics"
)

// Search variants, used as metric labels.
const (
	variantQuerySplit  = "query_split"
	variantPartitioned = "partitioned"
	variantStream      = "stream"
)

// CorpusProvider hands out the corpus for a language. The cache layer
// implements this; tests substitute an in-memory provider.
type CorpusProvider interface {
	Get(ctx context.Context, lang corpus.Language) (*corpus.Corpus, error)
}

// Service is the search application service. It validates requests,
// loads and preprocesses the corpus, partitions the query, dispatches
// the fan-out and aggregates the outcomes.
type Service struct {
	corpora    CorpusProvider
	dispatcher *Dispatcher
}

// NewService creates the search service.
func NewService(corpora CorpusProvider, dispatcher *Dispatcher) *Service {
	return &Service{
		corpora:    corpora,
		dispatcher: dispatcher,
	}
}

// Search runs the query-splitting variant: the query is partitioned
// into sub-queries and each one is dispatched against the full corpus
// in parallel.
func (s *Service) Search(ctx context.Context, query string, lang corpus.Language) (*AggregatedResponse, error) {
	ctx, span := tracer.Start(ctx, "search.Search",
		trace.WithAttributes(attribute.String("search.language", string(lang))))
	defer span.End()

	start := time.Now()
	corp, mode, err := s.prepare(ctx, query, lang)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(string(lang), variantQuerySplit, "error").Inc()
		span.RecordError(err)
		return nil, err
	}

	subQueries := SplitQuery(query, lang)
	metrics.SearchSubQueries.WithLabelValues(string(lang)).Observe(float64(len(subQueries)))
	logger.Info(ctx, "dispatching search",
		"language", lang, "mode", mode, "sub_queries", len(subQueries))

	outcomes := s.dispatcher.Dispatch(ctx, subQueries, corp, mode)
	resp := Aggregate(outcomes, lang)

	metrics.SearchRequestsTotal.WithLabelValues(string(lang), variantQuerySplit, "success").Inc()
	metrics.SearchDuration.WithLabelValues(string(lang), variantQuerySplit).Observe(time.Since(start).Seconds())
	span.SetAttributes(
		attribute.Int("search.successful_queries", resp.SuccessfulQueries),
		attribute.Int("search.results", len(resp.Results)),
	)
	return resp, nil
}

// SearchPartitioned runs the corpus-partitioning variant: the full
// query is dispatched sequentially against each corpus chunk.
func (s *Service) SearchPartitioned(ctx context.Context, query string, lang corpus.Language) (*AggregatedResponse, error) {
	ctx, span := tracer.Start(ctx, "search.SearchPartitioned",
		trace.WithAttributes(attribute.String("search.language", string(lang))))
	defer span.End()

	start := time.Now()
	corp, mode, err := s.prepare(ctx, query, lang)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(string(lang), variantPartitioned, "error").Inc()
		span.RecordError(err)
		return nil, err
	}

	outcomes := s.dispatcher.DispatchPartitioned(ctx, query, corp, mode)
	resp := Aggregate(outcomes, lang)

	metrics.SearchRequestsTotal.WithLabelValues(string(lang), variantPartitioned, "success").Inc()
	metrics.SearchDuration.WithLabelValues(string(lang), variantPartitioned).Observe(time.Since(start).Seconds())
	return resp, nil
}

// SearchStream runs the query-splitting variant over the streaming
// upstream path and emits progress events on the returned channel.
// The channel closes after the final results event.
func (s *Service) SearchStream(ctx context.Context, query string, lang corpus.Language) (<-chan StreamEvent, error) {
	corp, mode, err := s.prepare(ctx, query, lang)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(string(lang), variantStream, "error").Inc()
		return nil, err
	}

	subQueries := SplitQuery(query, lang)
	events := make(chan StreamEvent, len(subQueries)+2)

	go func() {
		defer close(events)
		start := time.Now()

		events <- StreamEvent{Type: "subqueries", Data: subQueries}

		outcomes := s.dispatcher.DispatchStream(ctx, subQueries, corp, mode, func(o Outcome) {
			ev := StreamEvent{Type: "outcome", SubQuery: o.SubQuery}
			if o.OK() {
				ev.Data = o.Results
			} else {
				ev.Type = "error"
				ev.Data = apperrors.AsAppError(o.Err).Message
			}
			events <- ev
		})

		resp := Aggregate(outcomes, lang)
		events <- StreamEvent{Type: "results", Data: resp}

		metrics.SearchRequestsTotal.WithLabelValues(string(lang), variantStream, "success").Inc()
		metrics.SearchDuration.WithLabelValues(string(lang), variantStream).Observe(time.Since(start).Seconds())
	}()

	return events, nil
}

// SearchLocal runs the LLM-free substring search.
func (s *Service) SearchLocal(ctx context.Context, query string, lang corpus.Language, maxResults int) ([]LocalResult, error) {
	if err := Validate(query, lang); err != nil {
		return nil, err
	}
	corp, err := s.corpora.Get(ctx, lang)
	if err != nil {
		return nil, err
	}
	results := LocalSearch(corp, query, maxResults)
	if results == nil {
		results = []LocalResult{}
	}
	return results, nil
}

// CorpusStats reports the size of a loaded corpus.
func (s *Service) CorpusStats(ctx context.Context, lang corpus.Language) (*CorpusStats, error) {
	if !lang.Valid() {
		return nil, apperrors.ErrInvalidLanguage
	}
	corp, err := s.corpora.Get(ctx, lang)
	if err != nil {
		return nil, err
	}
	return &CorpusStats{
		Language:   lang,
		Articles:   len(corp.Articles),
		Appendices: len(corp.Appendices),
		Title:      corp.Metadata.Title,
		Version:    corp.Metadata.Version,
	}, nil
}

// prepare validates the request, loads the corpus, applies the
// Arabic prompt preprocessing and picks the model mode.
func (s *Service) prepare(ctx context.Context, query string, lang corpus.Language) (*corpus.Corpus, Mode, error) {
	if err := Validate(query, lang); err != nil {
		return nil, "", err
	}

	corp, err := s.corpora.Get(ctx, lang)
	if err != nil {
		return nil, "", err
	}
	corp = corpus.PreprocessForPrompt(corp)

	return corp, DetectMode(query, lang), nil
}

// Validate checks a search request. The query must be non-blank, at
// most MaxQueryLength runes, and carry a supported language tag.
func Validate(query string, lang corpus.Language) error {
	if !lang.Valid() {
		return apperrors.ErrInvalidLanguage
	}
	if strings.TrimSpace(query) == "" {
		return apperrors.ErrEmptyQuery
	}
	if utf8.RuneCountInString(query) > MaxQueryLength {
		return apperrors.ErrQueryTooLong
	}
	return nil
}
