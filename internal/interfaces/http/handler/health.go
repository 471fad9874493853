package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"itpf-legal-api/internal/application/search"
	"itpf-legal-api/internal/domain/corpus"
	"itpf-legal-api/internal/infrastructure/persistence/redis"
)

// HealthHandler serves the liveness and readiness endpoints.
type HealthHandler struct {
	redis   *redis.Client
	corpora search.CorpusProvider
	version string
}

// NewHealthHandler creates the health handler. The Redis client may be
// nil when caching is disabled; readiness then skips it.
func NewHealthHandler(redisClient *redis.Client, corpora search.CorpusProvider, version string) *HealthHandler {
	return &HealthHandler{
		redis:   redisClient,
		corpora: corpora,
		version: version,
	}
}

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

type readinessCheck struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
}

type readinessResponse struct {
	Status string                     `json:"status"`
	Checks map[string]*readinessCheck `json:"checks,omitempty"`
}

// Health reports basic liveness.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: h.version,
	})
}

// Ready reports whether the service can take traffic. The corpus must
// load; Redis only degrades readiness, it never blocks it.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]*readinessCheck{
		"corpus": {Status: "unknown"},
		"redis":  {Status: "disabled"},
	}

	ready := true

	start := time.Now()
	_, err := h.corpora.Get(ctx, corpus.LanguageArabic)
	checks["corpus"].LatencyMs = time.Since(start).Milliseconds()
	if err != nil {
		checks["corpus"].Status = "error"
		checks["corpus"].Error = err.Error()
		ready = false
	} else {
		checks["corpus"].Status = "ok"
	}

	if h.redis != nil {
		checks["redis"] = &readinessCheck{Status: "unknown"}
		start := time.Now()
		err := h.redis.HealthCheck(ctx)
		checks["redis"].LatencyMs = time.Since(start).Milliseconds()
		if err != nil {
			checks["redis"].Status = "degraded"
			checks["redis"].Error = err.Error()
		} else {
			checks["redis"].Status = "ok"
		}
	}

	resp := readinessResponse{
		Status: "ok",
		Checks: checks,
	}
	if !ready {
		resp.Status = "not_ready"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Live reports process liveness.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
	})
}
