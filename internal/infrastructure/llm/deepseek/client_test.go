package deepseek

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itpf-legal-api/internal/domain/corpus"
	apperrors "itpf-legal-api/pkg/errors"
)

func okBody(content string) []byte {
	raw, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}, "finish_reason": "stop"},
		},
	})
	return raw
}

// upstream records the Authorization header of every call and answers
// from a scripted status sequence.
type upstream struct {
	mu       sync.Mutex
	keys     []string
	statuses []int
	body     []byte
}

func (u *upstream) handler(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	u.keys = append(u.keys, r.Header.Get("Authorization"))
	call := len(u.keys) - 1
	u.mu.Unlock()

	status := http.StatusOK
	if call < len(u.statuses) {
		status = u.statuses[call]
	}
	if status != http.StatusOK {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(u.body)
}

func newTestClient(t *testing.T, u *upstream, keys ...string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(u.handler))
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, Timeout: 5 * time.Second}, NewKeyPool(keys))
}

func req() Request {
	return Request{
		Model:     "deepseek-chat",
		System:    "system",
		User:      "user",
		MaxTokens: 100,
		Language:  corpus.LanguageEnglish,
	}
}

func TestComplete_Success(t *testing.T) {
	u := &upstream{body: okBody("answer")}
	c := newTestClient(t, u, "k0")

	got, err := c.Complete(context.Background(), req())
	require.NoError(t, err)
	assert.Equal(t, "answer", got)
	require.Len(t, u.keys, 1)
	assert.Equal(t, "Bearer k0", u.keys[0])
}

func TestComplete_RotatesKeyOn429(t *testing.T) {
	u := &upstream{statuses: []int{http.StatusTooManyRequests}, body: okBody("answer")}
	c := newTestClient(t, u, "k0", "k1")

	got, err := c.Complete(context.Background(), req())
	require.NoError(t, err)
	assert.Equal(t, "answer", got)
	require.Len(t, u.keys, 2)
	assert.Equal(t, "Bearer k0", u.keys[0])
	assert.Equal(t, "Bearer k1", u.keys[1])
}

func TestComplete_RotatesKeyOn5xx(t *testing.T) {
	u := &upstream{statuses: []int{http.StatusBadGateway}, body: okBody("answer")}
	c := newTestClient(t, u, "k0", "k1")

	got, err := c.Complete(context.Background(), req())
	require.NoError(t, err)
	assert.Equal(t, "answer", got)
	assert.Len(t, u.keys, 2)
}

func TestComplete_ExhaustsPoolThenFails(t *testing.T) {
	u := &upstream{statuses: []int{
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
	}}
	c := newTestClient(t, u, "k0", "k1", "k2")

	_, err := c.Complete(context.Background(), req())
	require.Error(t, err)
	// One attempt per key, never more.
	assert.Len(t, u.keys, 3)

	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeUpstreamThrottled, appErr.Code)
}

func TestComplete_ClientErrorNotRetried(t *testing.T) {
	u := &upstream{statuses: []int{http.StatusBadRequest}, body: okBody("answer")}
	c := newTestClient(t, u, "k0", "k1")

	_, err := c.Complete(context.Background(), req())
	require.Error(t, err)
	assert.Len(t, u.keys, 1)
}

func TestComplete_ArabicUsesBiasedKey(t *testing.T) {
	u := &upstream{body: okBody("answer")}
	c := newTestClient(t, u, "k0", "k1")

	r := req()
	r.Language = corpus.LanguageArabic
	_, err := c.Complete(context.Background(), r)
	require.NoError(t, err)
	require.Len(t, u.keys, 1)
	assert.Equal(t, "Bearer k1", u.keys[0])
}

func TestComplete_NoKeys(t *testing.T) {
	u := &upstream{body: okBody("answer")}
	c := newTestClient(t, u)

	_, err := c.Complete(context.Background(), req())
	assert.ErrorIs(t, err, apperrors.ErrNoCredentials)
	assert.Empty(t, u.keys)
}

func TestComplete_MalformedResponse(t *testing.T) {
	u := &upstream{body: []byte(`{"choices": []}`)}
	c := newTestClient(t, u, "k0")

	_, err := c.Complete(context.Background(), req())
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeMalformedResponse, appErr.Code)
}

func TestCompleteStream_AccumulatesFrames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte(
			"data: {\"choices\":[{\"delta\":{\"content\":\"hel\"}}]}\n" +
				"data: {\"choices\":[{\"delta\":{\"content\":\"lo\"},\"finish_reason\":\"stop\"}]}\n" +
				"data: [DONE]\n"))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Config{BaseURL: srv.URL}, NewKeyPool([]string{"k0"}))
	got, err := c.CompleteStream(context.Background(), req())
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestCompleteStream_TruncatedStreamFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte("data: {\"choices\":[{\"delta\":{\"content\":\"partial\"}}]}\n"))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Config{BaseURL: srv.URL}, NewKeyPool([]string{"k0"}))
	_, err := c.CompleteStream(context.Background(), req())
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeMalformedResponse, appErr.Code)
}
