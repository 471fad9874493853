package deepseek

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"itpf-legal-api/internal/domain/corpus"
	apperrors "itpf-legal-api/pkg/errors"
	"itpf-legal-api/pkg/logger"
	"itpf-legal-api/pkg/metrics"
)

var tracer = otel.Tracer("deepseek")

const completionsPath = "/v1/chat/completions"

// Config holds client settings.
type Config struct {
	// BaseURL is the API root, e.g. https://api.deepseek.com.
	BaseURL string
	// Timeout bounds one non-streaming call. Streaming calls carry no
	// explicit timeout and rely on the connection closing.
	Timeout time.Duration
	// Temperature applies to every request.
	Temperature float64
}

// Request is one chat-completion call.
type Request struct {
	Model        string
	System       string
	User         string
	MaxTokens    int
	Language     corpus.Language
	JSONResponse bool
}

// Client calls the upstream chat-completion API. Credentials come from
// the pool per attempt; the client itself is stateless and safe for
// concurrent use.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	timeout     time.Duration
	temperature float64
	pool        *KeyPool
}

// NewClient creates an upstream client.
func NewClient(cfg Config, pool *KeyPool) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.deepseek.com"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		httpClient:  &http.Client{},
		baseURL:     cfg.BaseURL,
		timeout:     cfg.Timeout,
		temperature: cfg.Temperature,
		pool:        pool,
	}
}

// Complete performs one non-streaming call with bounded retry: on 429
// or 5xx the next credential is selected and the identical payload is
// reissued, up to one attempt per pool entry. Network errors and
// timeouts are not retried; they surface immediately.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	ctx, span := tracer.Start(ctx, "deepseek.Complete",
		trace.WithAttributes(
			attribute.String("llm.model", req.Model),
			attribute.String("llm.language", string(req.Language)),
		))
	defer span.End()

	attempts := c.pool.MaxAttempts()
	if attempts == 0 {
		span.RecordError(apperrors.ErrNoCredentials)
		return "", apperrors.ErrNoCredentials
	}

	start := time.Now()
	for attempt := 0; attempt < attempts; attempt++ {
		key, err := c.pool.Select(req.Language, attempt)
		if err != nil {
			span.RecordError(err)
			return "", err
		}

		content, retryable, err := c.doCall(ctx, req, key, false)
		if err == nil {
			metrics.LLMCallTotal.WithLabelValues(req.Model, "success").Inc()
			metrics.LLMCallDuration.WithLabelValues(req.Model).Observe(time.Since(start).Seconds())
			span.SetAttributes(attribute.Int("llm.attempts", attempt+1))
			return content, nil
		}

		if retryable && attempt < attempts-1 {
			metrics.LLMRetriesTotal.WithLabelValues(req.Model).Inc()
			logger.Warn(ctx, "retrying upstream call with next key",
				"attempt", attempt, "error", err.Error())
			continue
		}

		metrics.LLMCallTotal.WithLabelValues(req.Model, "error").Inc()
		span.RecordError(err)
		return "", err
	}

	// Unreachable: the loop always returns.
	return "", apperrors.ErrUpstreamFailed
}

// CompleteStream performs one streaming call, accumulating the SSE
// content fragments in arrival order until the terminal marker. The
// streaming path never retries; a failed stream is a failed call.
func (c *Client) CompleteStream(ctx context.Context, req Request) (string, error) {
	ctx, span := tracer.Start(ctx, "deepseek.CompleteStream",
		trace.WithAttributes(attribute.String("llm.model", req.Model)))
	defer span.End()

	key, err := c.pool.Select(req.Language, 0)
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	start := time.Now()
	content, _, err := c.doCall(ctx, req, key, true)
	if err != nil {
		metrics.LLMCallTotal.WithLabelValues(req.Model, "error").Inc()
		span.RecordError(err)
		return "", err
	}
	metrics.LLMCallTotal.WithLabelValues(req.Model, "success").Inc()
	metrics.LLMCallDuration.WithLabelValues(req.Model).Observe(time.Since(start).Seconds())
	return content, nil
}

// doCall issues one HTTP request with the given key. The second return
// value reports whether the failure is retryable under the key
// rotation policy (429 and 5xx only).
func (c *Client) doCall(ctx context.Context, req Request, key string, stream bool) (string, bool, error) {
	if !stream {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body := chatRequest{
		Model: req.Model,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: c.temperature,
		Stream:      stream,
	}
	if req.JSONResponse && !stream {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", false, apperrors.Wrap(err, apperrors.CodeInternalError, "failed to encode upstream payload")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+completionsPath, bytes.NewReader(payload))
	if err != nil {
		return "", false, apperrors.Wrap(err, apperrors.CodeInternalError, "failed to build upstream request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+key)
	if stream {
		httpReq.Header.Set("Accept", "text/event-stream")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", false, apperrors.Wrap(err, apperrors.CodeUpstreamTimeout, "upstream call timed out")
		}
		return "", false, apperrors.Wrap(err, apperrors.CodeUpstreamFailed, "upstream call failed")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		drainBody(resp.Body)
		return "", true, apperrors.New(apperrors.CodeUpstreamThrottled, "upstream API throttled")
	case resp.StatusCode >= 500:
		drainBody(resp.Body)
		return "", true, apperrors.New(apperrors.CodeUpstreamFailed,
			fmt.Sprintf("upstream returned status %d", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		drainBody(resp.Body)
		return "", false, apperrors.New(apperrors.CodeUpstreamFailed,
			fmt.Sprintf("upstream returned status %d", resp.StatusCode))
	}

	if stream {
		content, err := accumulateSSE(resp.Body)
		if err != nil {
			return "", false, apperrors.Wrap(err, apperrors.CodeMalformedResponse, "stream accumulation failed")
		}
		return content, false, nil
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", false, apperrors.Wrap(err, apperrors.CodeMalformedResponse, "failed to decode upstream response")
	}
	if parsed.Error != nil {
		return "", false, apperrors.New(apperrors.CodeUpstreamFailed, parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", false, apperrors.New(apperrors.CodeMalformedResponse, "upstream response carries no choices")
	}
	return parsed.Choices[0].Message.Content, false, nil
}

// drainBody reads the body so the connection can be reused.
func drainBody(r io.Reader) {
	_, _ = io.Copy(io.Discard, io.LimitReader(r, 4096))
}
