package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itpf-legal-api/internal/application/search"
	"itpf-legal-api/internal/domain/corpus"
	"itpf-legal-api/internal/infrastructure/llm/deepseek"
	apperrors "itpf-legal-api/pkg/errors"
)

type stubProvider struct {
	corp *corpus.Corpus
	err  error
}

func (s *stubProvider) Get(context.Context, corpus.Language) (*corpus.Corpus, error) {
	return s.corp, s.err
}

type stubLLM struct {
	reply string
	err   error
}

func (s *stubLLM) Complete(context.Context, deepseek.Request) (string, error) {
	return s.reply, s.err
}

func (s *stubLLM) CompleteStream(context.Context, deepseek.Request) (string, error) {
	return s.reply, s.err
}

func newTestRouter(t *testing.T, llm search.Completer, provider search.CorpusProvider) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dispatcher := search.NewDispatcher(llm, search.DispatcherConfig{
		ChatModel:      "deepseek-chat",
		ReasonerModel:  "deepseek-reasoner",
		MaxTokens:      100,
		PartitionCount: 2,
	})
	svc := search.NewService(provider, dispatcher)
	h := NewSearchHandler(svc, false)

	r := gin.New()
	r.POST("/v1/search/query", h.Query)
	r.POST("/v1/search/partitioned", h.Partitioned)
	r.POST("/v1/search/local", h.Local)
	return r
}

func stubCorpus() *corpus.Corpus {
	return &corpus.Corpus{
		Language: corpus.LanguageEnglish,
		Articles: []corpus.Article{
			{ArticleNumber: "1", Title: "Doping", Content: "Prohibited substances."},
			{ArticleNumber: "2", Title: "Appeals", Content: "Filing deadlines."},
		},
	}
}

func doPost(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

const stubReply = `{"results": [{"article_number": "1", "title": "Doping", "score": 80}]}`

func TestSearchQuery_Success(t *testing.T) {
	r := newTestRouter(t, &stubLLM{reply: stubReply}, &stubProvider{corp: stubCorpus()})

	w := doPost(r, "/v1/search/query", `{"query": "doping penalties", "language": "en"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Code int                        `json:"code"`
		Data *search.AggregatedResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Data)
	assert.Len(t, envelope.Data.Results, 1)
	assert.True(t, envelope.Data.PartitionedSearch)
}

func TestSearchQuery_TotalUpstreamFailureStill200(t *testing.T) {
	r := newTestRouter(t, &stubLLM{err: apperrors.ErrUpstreamFailed}, &stubProvider{corp: stubCorpus()})

	w := doPost(r, "/v1/search/query", `{"query": "doping penalties", "language": "en"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data *search.AggregatedResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Data)
	assert.Empty(t, envelope.Data.Results)
	assert.NotEmpty(t, envelope.Data.Message)
}

func TestSearchQuery_EmptyQueryLocalizedMessage(t *testing.T) {
	r := newTestRouter(t, &stubLLM{reply: stubReply}, &stubProvider{corp: stubCorpus()})

	w := doPost(r, "/v1/search/query", `{"query": "   ", "language": "ar"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "يرجى إدخال استفسار للبحث")
}

func TestSearchQuery_InvalidLanguage(t *testing.T) {
	r := newTestRouter(t, &stubLLM{reply: stubReply}, &stubProvider{corp: stubCorpus()})

	w := doPost(r, "/v1/search/query", `{"query": "doping", "language": "fr"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchQuery_MalformedBody(t *testing.T) {
	r := newTestRouter(t, &stubLLM{reply: stubReply}, &stubProvider{corp: stubCorpus()})

	w := doPost(r, "/v1/search/query", `{"query":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchQuery_CorpusUnavailableIs503(t *testing.T) {
	r := newTestRouter(t, &stubLLM{reply: stubReply}, &stubProvider{err: apperrors.ErrCorpusUnavailable})

	w := doPost(r, "/v1/search/query", `{"query": "doping", "language": "en"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSearchPartitioned_Success(t *testing.T) {
	r := newTestRouter(t, &stubLLM{reply: stubReply}, &stubProvider{corp: stubCorpus()})

	w := doPost(r, "/v1/search/partitioned", `{"query": "doping penalties", "language": "en"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSearchLocal_Success(t *testing.T) {
	r := newTestRouter(t, &stubLLM{reply: stubReply}, &stubProvider{corp: stubCorpus()})

	w := doPost(r, "/v1/search/local", `{"query": "doping", "language": "en", "max_results": 5}`)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data []search.LocalResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "Doping", envelope.Data[0].Title)
}
