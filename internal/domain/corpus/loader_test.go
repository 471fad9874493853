package corpus

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "itpf-legal-api/pkg/errors"
)

func writeJSON(t *testing.T, dir, name string, v any) {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), raw, 0o644))
}

func TestLoaderLoad_MergesParts(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, dir, "arabic_data_part1.json", map[string]any{
		"metadata":   map[string]any{"title": "القواعد", "version": "1.0"},
		"articles":   []map[string]any{{"article_number": "1", "title": "a1"}},
		"appendices": []map[string]any{{"appendix_number": "A"}},
	})
	writeJSON(t, dir, "arabic_data_part2.json", map[string]any{
		"articles": []map[string]any{{"article_number": "2", "title": "a2"}},
	})
	writeJSON(t, dir, "arabic_data_part3.json", map[string]any{
		"articles": []map[string]any{{"article_number": "3", "title": "a3"}},
	})

	loader := NewLoader(dir, 3)
	c, err := loader.Load(context.Background(), LanguageArabic)
	require.NoError(t, err)

	assert.Equal(t, "القواعد", c.Metadata.Title)
	require.Len(t, c.Articles, 3)
	assert.Equal(t, "1", c.Articles[0].ArticleNumber)
	assert.Equal(t, "3", c.Articles[2].ArticleNumber)
	assert.Len(t, c.Appendices, 1)
}

func TestLoaderLoad_ChapteredEnglishLayout(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, dir, "english_data_part1.json", map[string]any{
		"metadata": map[string]any{"title": "Rules"},
		"chapters": []map[string]any{
			{"chapter_number": "1", "articles": []map[string]any{
				{"article_number": "1"}, {"article_number": "2"},
			}},
			{"chapter_number": "2", "articles": []map[string]any{
				{"article_number": "3"},
			}},
		},
	})

	loader := NewLoader(dir, 3)
	c, err := loader.Load(context.Background(), LanguageEnglish)
	require.NoError(t, err)
	require.Len(t, c.Articles, 3)
	assert.Equal(t, "3", c.Articles[2].ArticleNumber)
}

func TestLoaderLoad_MissingPartsSkipped(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, dir, "arabic_data_part2.json", map[string]any{
		"articles": []map[string]any{{"article_number": "2"}},
	})

	loader := NewLoader(dir, 3)
	c, err := loader.Load(context.Background(), LanguageArabic)
	require.NoError(t, err)
	assert.Len(t, c.Articles, 1)
}

func TestLoaderLoad_FallsBackToWholeFile(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, dir, "english_legal_rules_complete_authentic.json", map[string]any{
		"metadata": map[string]any{"title": "Rules"},
		"articles": []map[string]any{{"article_number": "1"}},
	})

	loader := NewLoader(dir, 3)
	c, err := loader.Load(context.Background(), LanguageEnglish)
	require.NoError(t, err)
	assert.Len(t, c.Articles, 1)
	assert.Equal(t, "Rules", c.Metadata.Title)
}

func TestLoaderLoad_NothingFound(t *testing.T) {
	loader := NewLoader(t.TempDir(), 3)
	_, err := loader.Load(context.Background(), LanguageArabic)
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeCorpusUnavailable, appErr.Code)
}

func TestLoaderLoad_InvalidLanguage(t *testing.T) {
	loader := NewLoader(t.TempDir(), 3)
	_, err := loader.Load(context.Background(), Language("xx"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidLanguage)
}
