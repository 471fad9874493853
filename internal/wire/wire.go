// Package wire assembles the application dependency graph.
package wire

import (
	"context"

	"github.com/gin-gonic/gin"

	"itpf-legal-api/internal/application/search"
	"itpf-legal-api/internal/config"
	"itpf-legal-api/internal/domain/corpus"
	"itpf-legal-api/internal/infrastructure/llm/deepseek"
	"itpf-legal-api/internal/infrastructure/persistence/redis"
	"itpf-legal-api/internal/interfaces/http/handler"
	"itpf-legal-api/internal/interfaces/http/middleware"
	"itpf-legal-api/internal/interfaces/http/router"
	apperrors "itpf-legal-api/pkg/errors"
	"itpf-legal-api/pkg/logger"
)

// App is the assembled application.
type App struct {
	router *router.Router
	redis  *redis.Client
}

// Engine returns the HTTP engine.
func (a *App) Engine() *gin.Engine {
	return a.router.Engine()
}

// InitializeApp builds the full dependency graph and returns the app
// with a cleanup function for resources holding connections.
func InitializeApp(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		client, err := redis.NewClient(&cfg.Cache.Redis)
		if err != nil {
			// A dead cache downgrades to disk loads instead of
			// blocking startup.
			logger.Warn(ctx, "redis unavailable, corpus caching disabled",
				"error", err.Error())
		} else {
			redisClient = client
		}
	}

	loader := corpus.NewLoader(cfg.Corpus.Dir, cfg.Corpus.Parts)
	corpusCache := redis.NewCorpusCache(redisClient, loader, cfg.Corpus.CacheTTL)

	pool := deepseek.NewKeyPool(cfg.LLM.APIKeys)
	if pool.Size() == 0 {
		return nil, nil, apperrors.ErrNoCredentials
	}

	llmClient := deepseek.NewClient(deepseek.Config{
		BaseURL:     cfg.LLM.BaseURL,
		Timeout:     cfg.LLM.Timeout,
		Temperature: cfg.LLM.Temperature,
	}, pool)

	dispatcher := search.NewDispatcher(llmClient, search.DispatcherConfig{
		ChatModel:         cfg.LLM.ChatModel,
		ReasonerModel:     cfg.LLM.ReasonerModel,
		MaxTokens:         cfg.LLM.MaxTokens,
		ReasonerMaxTokens: cfg.LLM.ReasonerMaxTokens,
		PartitionCount:    cfg.LLM.PartitionCount,
	})

	svc := search.NewService(corpusCache, dispatcher)

	var limiter middleware.RateLimiter
	if redisClient != nil {
		limiter = redis.NewRateLimiter(redisClient)
	}

	handlers := router.Handlers{
		Search:  handler.NewSearchHandler(svc, cfg.App.DevMode),
		Corpus:  handler.NewCorpusHandler(svc, cfg.App.DevMode),
		Health:  handler.NewHealthHandler(redisClient, corpusCache, cfg.App.Version),
		Limiter: limiter,
	}

	app := &App{
		router: router.New(cfg, handlers),
		redis:  redisClient,
	}

	cleanup := func() {
		if app.redis != nil {
			_ = app.redis.Close()
		}
	}
	return app, cleanup, nil
}
