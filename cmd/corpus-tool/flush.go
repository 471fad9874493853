package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"itpf-legal-api/internal/config"
	"itpf-legal-api/internal/domain/corpus"
	"itpf-legal-api/internal/infrastructure/persistence/redis"
)

var flushCmd = &cobra.Command{
	Use:   "flush-cache",
	Short: "Drop the cached corpora from Redis",
	Long: `Drops the cached Arabic and English corpora so the API server
reloads the data files on the next request. Run this after split or
rebuild changed the files under the corpus directory.`,
	RunE: runFlush,
}

func init() {
	rootCmd.AddCommand(flushCmd)
}

func runFlush(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.Cache.Enabled {
		cmd.Println("cache disabled, nothing to flush")
		return nil
	}

	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer client.Close()

	loader := corpus.NewLoader(cfg.Corpus.Dir, cfg.Corpus.Parts)
	cache := redis.NewCorpusCache(client, loader, cfg.Corpus.CacheTTL)

	ctx := context.Background()
	for _, lang := range []corpus.Language{corpus.LanguageArabic, corpus.LanguageEnglish} {
		if err := cache.Invalidate(ctx, lang); err != nil {
			return fmt.Errorf("flush %s corpus: %w", lang, err)
		}
		cmd.Printf("flushed %s corpus\n", lang)
	}
	return nil
}
