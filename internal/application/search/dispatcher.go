package search

import (
	"context"
	"encoding/json"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"itpf-legal-api/internal/domain/corpus"
	"itpf-legal-api/internal/infrastructure/llm/deepseek"
	apperrors "itpf-legal-api/pkg/errors"
	"itpf-legal-api/pkg/logger"
)

var tracer = otel.Tracer("search")

// Completer is the upstream surface the dispatcher needs.
type Completer interface {
	Complete(ctx context.Context, req deepseek.Request) (string, error)
	CompleteStream(ctx context.Context, req deepseek.Request) (string, error)
}

// DispatcherConfig carries the model routing settings.
type DispatcherConfig struct {
	ChatModel         string
	ReasonerModel     string
	MaxTokens         int
	ReasonerMaxTokens int
	PartitionCount    int
}

// Dispatcher fans sub-queries out to the upstream model and collects
// every outcome. Failures never short-circuit the batch; a failed
// sub-query becomes a failed outcome alongside its siblings.
type Dispatcher struct {
	llm Completer
	cfg DispatcherConfig
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(llm Completer, cfg DispatcherConfig) *Dispatcher {
	if cfg.PartitionCount <= 0 {
		cfg.PartitionCount = 4
	}
	return &Dispatcher{llm: llm, cfg: cfg}
}

// Dispatch runs every sub-query against the full corpus in parallel
// and returns one outcome per sub-query, in input order.
func (d *Dispatcher) Dispatch(ctx context.Context, subQueries []string, corp *corpus.Corpus, mode Mode) []Outcome {
	return d.fanOut(ctx, subQueries, corp, mode, false, nil)
}

// DispatchStream behaves like Dispatch but uses the streaming upstream
// path and reports each outcome as it completes.
func (d *Dispatcher) DispatchStream(ctx context.Context, subQueries []string, corp *corpus.Corpus, mode Mode, onOutcome func(Outcome)) []Outcome {
	return d.fanOut(ctx, subQueries, corp, mode, true, onOutcome)
}

func (d *Dispatcher) fanOut(ctx context.Context, subQueries []string, corp *corpus.Corpus, mode Mode, stream bool, onOutcome func(Outcome)) []Outcome {
	ctx, span := tracer.Start(ctx, "search.Dispatch",
		trace.WithAttributes(
			attribute.Int("search.sub_queries", len(subQueries)),
			attribute.String("search.mode", string(mode)),
		))
	defer span.End()

	outcomes := make([]Outcome, len(subQueries))

	var wg sync.WaitGroup
	var mu sync.Mutex
	for i, sq := range subQueries {
		wg.Add(1)
		go func(i int, sq string) {
			defer wg.Done()
			out := d.callOne(ctx, sq, -1, corp, mode, stream)
			outcomes[i] = out
			if onOutcome != nil {
				mu.Lock()
				onOutcome(out)
				mu.Unlock()
			}
		}(i, sq)
	}
	wg.Wait()

	return outcomes
}

// DispatchPartitioned runs the original query against each corpus
// partition sequentially. The query is never split in this variant;
// the corpus is.
func (d *Dispatcher) DispatchPartitioned(ctx context.Context, query string, corp *corpus.Corpus, mode Mode) []Outcome {
	ctx, span := tracer.Start(ctx, "search.DispatchPartitioned",
		trace.WithAttributes(attribute.Int("search.partitions", d.cfg.PartitionCount)))
	defer span.End()

	partitions := corpus.PartitionArticles(corp.Articles, d.cfg.PartitionCount)
	outcomes := make([]Outcome, 0, len(partitions))
	for _, part := range partitions {
		view := corpus.PartitionCorpus(corp, part)
		outcomes = append(outcomes, d.callOne(ctx, query, part.Index, view, mode, false))
	}
	return outcomes
}

// callOne builds the prompt for one sub-query over one corpus slice
// and performs the upstream call.
func (d *Dispatcher) callOne(ctx context.Context, subQuery string, partition int, corp *corpus.Corpus, mode Mode, stream bool) Outcome {
	out := Outcome{SubQuery: subQuery, Partition: partition}

	user, err := BuildUserPrompt(subQuery, corp)
	if err != nil {
		out.Err = apperrors.Wrap(err, apperrors.CodeInternalError, "failed to build prompt")
		return out
	}

	model := d.cfg.ChatModel
	maxTokens := d.cfg.MaxTokens
	if mode == ModeReasoner {
		model = d.cfg.ReasonerModel
		maxTokens = d.cfg.ReasonerMaxTokens
	}

	req := deepseek.Request{
		Model:        model,
		System:       SystemPrompt(corp.Language),
		User:         user,
		MaxTokens:    maxTokens,
		Language:     corp.Language,
		JSONResponse: true,
	}

	var content string
	if stream {
		content, err = d.llm.CompleteStream(ctx, req)
	} else {
		content, err = d.llm.Complete(ctx, req)
	}
	if err != nil {
		logger.Warn(ctx, "sub-query call failed",
			"sub_query", subQuery, "partition", partition, "error", err.Error())
		out.Err = err
		return out
	}

	results, err := parseResults(content)
	if err != nil {
		out.Err = err
		return out
	}
	out.Results = results
	return out
}

// parseResults extracts the results payload from the model output.
// Models occasionally wrap the JSON in prose; the extractor cuts the
// first JSON value out before decoding.
func parseResults(content string) ([]SearchResult, error) {
	raw := deepseek.ExtractJSONValue(content)
	if raw == "" {
		return nil, apperrors.New(apperrors.CodeMalformedResponse, "model output carries no JSON")
	}

	var payload resultsPayload
	if err := json.Unmarshal([]byte(raw), &payload); err == nil && payload.Results != nil {
		return payload.Results, nil
	}

	// Some responses return the bare array.
	var list []SearchResult
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		return list, nil
	}
	return nil, apperrors.New(apperrors.CodeMalformedResponse, "model output does not match the results shape")
}
