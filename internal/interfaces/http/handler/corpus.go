package handler

import (
	"github.com/gin-gonic/gin"

	"itpf-legal-api/internal/application/search"
	"itpf-legal-api/internal/domain/corpus"
	"itpf-legal-api/internal/interfaces/http/dto"
)

// CorpusHandler serves corpus introspection endpoints.
type CorpusHandler struct {
	svc     *search.Service
	devMode bool
}

// NewCorpusHandler creates the corpus handler.
func NewCorpusHandler(svc *search.Service, devMode bool) *CorpusHandler {
	return &CorpusHandler{svc: svc, devMode: devMode}
}

// Stats reports article and appendix counts for one language.
func (h *CorpusHandler) Stats(c *gin.Context) {
	lang := corpus.Language(c.Param("language"))

	stats, err := h.svc.CorpusStats(c.Request.Context(), lang)
	if err != nil {
		dto.AppError(c, err, h.devMode)
		return
	}
	dto.Success(c, stats)
}
