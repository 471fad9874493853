package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	apperrors "itpf-legal-api/pkg/errors"
	"itpf-legal-api/pkg/logger"
	"itpf-legal-api/pkg/metrics"
)

// File name stems of the split part files and the legacy whole-corpus
// fallbacks, matching what the data pipeline produces.
const (
	arabicPartStem  = "arabic_data_part"
	englishPartStem = "english_data_part"

	arabicFallbackFile  = "arabic_legal_rules_complete_authentic.json"
	englishFallbackFile = "english_legal_rules_complete_authentic.json"
)

// Loader loads a corpus from static JSON files on disk.
type Loader struct {
	dir   string
	parts int
}

// NewLoader creates a corpus loader rooted at dir.
func NewLoader(dir string, parts int) *Loader {
	if parts <= 0 {
		parts = 3
	}
	return &Loader{dir: dir, parts: parts}
}

// Load reads and merges the split part files for the given language.
// Metadata and appendices come from part 1; articles accumulate across
// all parts in file order. If no part file yields articles, the legacy
// whole-corpus file is tried before giving up.
func (l *Loader) Load(ctx context.Context, lang Language) (*Corpus, error) {
	if !lang.Valid() {
		return nil, apperrors.ErrInvalidLanguage
	}

	stem := arabicPartStem
	fallback := arabicFallbackFile
	if lang == LanguageEnglish {
		stem = englishPartStem
		fallback = englishFallbackFile
	}

	out := &Corpus{Language: lang}
	for i := 1; i <= l.parts; i++ {
		path := filepath.Join(l.dir, fmt.Sprintf("%s%d.json", stem, i))
		part, err := readPartFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			logger.Warn(ctx, "skipping unreadable corpus part",
				"path", path, "error", err.Error())
			continue
		}
		if i == 1 {
			out.Metadata = part.Metadata
			out.Appendices = part.Appendices
		}
		out.Articles = append(out.Articles, flattenArticles(part)...)
	}

	if len(out.Articles) == 0 {
		path := filepath.Join(l.dir, fallback)
		part, err := readPartFile(path)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeCorpusUnavailable,
				"legal document corpus unavailable")
		}
		out.Metadata = part.Metadata
		out.Appendices = part.Appendices
		out.Articles = flattenArticles(part)
	}

	if len(out.Articles) == 0 {
		return nil, apperrors.New(apperrors.CodeCorpusUnavailable,
			"legal document corpus unavailable").WithDetail(
			fmt.Sprintf("no articles found for language %q under %s", lang, l.dir))
	}

	metrics.CorpusLoadTotal.WithLabelValues(string(lang), "disk").Inc()
	metrics.CorpusArticles.WithLabelValues(string(lang)).Set(float64(len(out.Articles)))

	logger.Debug(ctx, "corpus loaded",
		"language", string(lang),
		"articles", len(out.Articles),
		"appendices", len(out.Appendices),
	)
	return out, nil
}

func readPartFile(path string) (*partFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var part partFile
	if err := json.Unmarshal(raw, &part); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return &part, nil
}

// flattenArticles returns the part's articles, pulling them out of
// chapters when the file uses the chaptered English layout.
func flattenArticles(part *partFile) []Article {
	if len(part.Articles) > 0 {
		return part.Articles
	}
	var out []Article
	for _, ch := range part.Chapters {
		out = append(out, ch.Articles...)
	}
	return out
}
