package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"itpf-legal-api/internal/domain/corpus"
	"itpf-legal-api/pkg/logger"
	"itpf-legal-api/pkg/metrics"
)

var cacheTracer = otel.Tracer("redis.corpus_cache")

// CorpusCache is a read-through cache in front of the disk loader,
// keyed by language. The cached corpus is immutable once written; the
// disk loader stays the source of truth and the cache degrades to
// direct loads when Redis is unavailable.
type CorpusCache struct {
	client *Client
	loader *corpus.Loader
	ttl    time.Duration
	group  singleflight.Group
}

// NewCorpusCache creates a corpus cache. A nil client disables caching
// entirely; every Get then falls through to the loader.
func NewCorpusCache(client *Client, loader *corpus.Loader, ttl time.Duration) *CorpusCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CorpusCache{
		client: client,
		loader: loader,
		ttl:    ttl,
	}
}

func corpusKey(lang corpus.Language) string {
	return fmt.Sprintf("corpus:%s", lang)
}

// Get returns the corpus for a language, serving from Redis when
// possible. Concurrent misses for the same language are merged through
// singleflight so the disk is read once.
func (c *CorpusCache) Get(ctx context.Context, lang corpus.Language) (*corpus.Corpus, error) {
	ctx, span := cacheTracer.Start(ctx, "corpus_cache.Get",
		trace.WithAttributes(attribute.String("corpus.language", string(lang))))
	defer span.End()

	if c.client == nil {
		span.SetAttributes(attribute.Bool("cache.disabled", true))
		return c.loader.Load(ctx, lang)
	}

	key := corpusKey(lang)

	if raw, err := c.client.rdb.Get(ctx, key).Bytes(); err == nil {
		var out corpus.Corpus
		if err := json.Unmarshal(raw, &out); err == nil {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			metrics.CorpusLoadTotal.WithLabelValues(string(lang), "cache").Inc()
			return &out, nil
		}
		// Corrupt entry: drop it and reload from disk.
		_ = c.client.rdb.Del(ctx, key).Err()
	} else if !IsNil(err) {
		logger.Warn(ctx, "corpus cache read failed, loading from disk",
			"error", err.Error())
		return c.loader.Load(ctx, lang)
	}

	span.SetAttributes(attribute.Bool("cache.hit", false))

	result, err, shared := c.group.Do(key, func() (interface{}, error) {
		// Another request may have filled the cache meanwhile.
		if raw, err := c.client.rdb.Get(ctx, key).Bytes(); err == nil {
			var out corpus.Corpus
			if err := json.Unmarshal(raw, &out); err == nil {
				return &out, nil
			}
		}

		loaded, err := c.loader.Load(ctx, lang)
		if err != nil {
			return nil, err
		}

		raw, err := json.Marshal(loaded)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal corpus: %w", err)
		}
		if err := c.client.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			// A failed cache write never fails the request.
			logger.Warn(ctx, "corpus cache write failed", "error", err.Error())
		}
		return loaded, nil
	})

	span.SetAttributes(attribute.Bool("cache.shared", shared))

	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return result.(*corpus.Corpus), nil
}

// Invalidate drops the cached corpus for a language, used by the
// offline tooling after rebuilding the data files.
func (c *CorpusCache) Invalidate(ctx context.Context, lang corpus.Language) error {
	if c.client == nil {
		return nil
	}
	return c.client.rdb.Del(ctx, corpusKey(lang)).Err()
}
