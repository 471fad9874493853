// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"

	"itpf-legal-api/internal/application/search"
	"itpf-legal-api/internal/domain/corpus"
	"itpf-legal-api/internal/interfaces/http/dto"
	apperrors "itpf-legal-api/pkg/errors"
	"itpf-legal-api/pkg/logger"
)

// SearchHandler serves the search endpoints.
type SearchHandler struct {
	svc     *search.Service
	devMode bool
}

// NewSearchHandler creates the search handler.
func NewSearchHandler(svc *search.Service, devMode bool) *SearchHandler {
	return &SearchHandler{svc: svc, devMode: devMode}
}

// Query runs the query-splitting search variant.
func (h *SearchHandler) Query(c *gin.Context) {
	req, lang, ok := h.bindSearch(c)
	if !ok {
		return
	}

	resp, err := h.svc.Search(c.Request.Context(), req.Query, lang)
	if err != nil {
		h.respondError(c, err, lang)
		return
	}
	dto.Success(c, resp)
}

// Partitioned runs the corpus-partitioning search variant.
func (h *SearchHandler) Partitioned(c *gin.Context) {
	req, lang, ok := h.bindSearch(c)
	if !ok {
		return
	}

	resp, err := h.svc.SearchPartitioned(c.Request.Context(), req.Query, lang)
	if err != nil {
		h.respondError(c, err, lang)
		return
	}
	dto.Success(c, resp)
}

// Stream runs the query-splitting variant over SSE, relaying one frame
// per pipeline event and a terminal sentinel.
func (h *SearchHandler) Stream(c *gin.Context) {
	req, lang, ok := h.bindSearch(c)
	if !ok {
		return
	}

	events, err := h.svc.SearchStream(c.Request.Context(), req.Query, lang)
	if err != nil {
		h.respondError(c, err, lang)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		ev, open := <-events
		if !open {
			c.SSEvent("message", "[DONE]")
			return false
		}
		payload, err := json.Marshal(ev)
		if err != nil {
			logger.Error(c.Request.Context(), "failed to encode stream event", err)
			return true
		}
		c.SSEvent("message", string(payload))
		return true
	})
}

// Local runs the LLM-free substring search.
func (h *SearchHandler) Local(c *gin.Context) {
	var req dto.LocalSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body")
		return
	}
	lang := corpus.Language(req.Language)

	results, err := h.svc.SearchLocal(c.Request.Context(), req.Query, lang, req.MaxResults)
	if err != nil {
		h.respondError(c, err, lang)
		return
	}
	dto.Success(c, results)
}

// bindSearch decodes the shared request body and stamps the language
// into the logging context.
func (h *SearchHandler) bindSearch(c *gin.Context) (dto.SearchRequest, corpus.Language, bool) {
	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body")
		return req, "", false
	}

	lang := corpus.Language(req.Language)
	ctx := logger.WithContext(c.Request.Context(), logger.LanguageKey, req.Language)
	c.Request = c.Request.WithContext(ctx)
	return req, lang, true
}

// respondError localizes validation failures and maps everything else
// through the application error's own HTTP status.
func (h *SearchHandler) respondError(c *gin.Context, err error, lang corpus.Language) {
	appErr := apperrors.AsAppError(err)
	switch appErr.Code {
	case apperrors.CodeEmptyQuery, apperrors.CodeQueryTooLong, apperrors.CodeInvalidLanguage:
		dto.Error(c, appErr.HTTPStatus, search.ValidationMessage(appErr, lang))
		return
	}
	dto.AppError(c, appErr, h.devMode)
}
