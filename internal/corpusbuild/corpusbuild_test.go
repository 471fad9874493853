package corpusbuild

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itpf-legal-api/internal/domain/corpus"
)

func sampleDoc(n int) *Document {
	doc := &Document{
		Metadata:   corpus.Metadata{Title: "Rules", Version: "1.0"},
		Appendices: []corpus.Appendix{{AppendixNumber: "A", Title: "Fees"}},
	}
	for i := 0; i < n; i++ {
		doc.Articles = append(doc.Articles, corpus.Article{
			ArticleNumber: string(rune('1' + i)),
			Title:         "t",
			Content:       "c",
		})
	}
	return doc
}

func TestClean_NormalizesArabicWithoutRemovingText(t *testing.T) {
	doc := &Document{
		Articles: []corpus.Article{{
			ArticleNumber: "1",
			Title:         "  أحكام عامة  ",
			Content:       "المادة15 تنص على القواعد",
			PenaltyTable:  []corpus.PenaltyRow{{Offense: "مخالفة", Penalty: "إيقاف"}},
		}},
	}

	out := Clean(doc, corpus.LanguageArabic)
	assert.Equal(t, "احكام عامه", out.Articles[0].Title)
	assert.Contains(t, out.Articles[0].Content, "الماده 15")
	assert.Equal(t, "ايقاف", out.Articles[0].PenaltyTable[0].Penalty)
}

func TestClean_FlattensChapters(t *testing.T) {
	doc := &Document{
		Chapters: []corpus.Chapter{
			{Articles: []corpus.Article{{ArticleNumber: "1"}, {ArticleNumber: "2"}}},
			{Articles: []corpus.Article{{ArticleNumber: "3"}}},
		},
	}

	out := Clean(doc, corpus.LanguageEnglish)
	assert.Len(t, out.Articles, 3)
	assert.Empty(t, out.Chapters)
}

func TestSplit_EqualChunksWithAppendicesOnPart1(t *testing.T) {
	parts, err := Split(sampleDoc(7), 3)
	require.NoError(t, err)
	require.Len(t, parts, 3)

	assert.Len(t, parts[0].Articles, 3)
	assert.Len(t, parts[1].Articles, 3)
	assert.Len(t, parts[2].Articles, 1)

	assert.Len(t, parts[0].Appendices, 1)
	assert.Empty(t, parts[1].Appendices)
	assert.Empty(t, parts[2].Appendices)

	for _, p := range parts {
		assert.Equal(t, "Rules", p.Metadata.Title)
	}
}

func TestSplit_EmptyDocumentFails(t *testing.T) {
	_, err := Split(&Document{}, 3)
	assert.Error(t, err)
}

func TestRebuild_RoundTripsSplit(t *testing.T) {
	orig := sampleDoc(7)
	parts, err := Split(orig, 3)
	require.NoError(t, err)

	rebuilt, err := Rebuild(parts)
	require.NoError(t, err)

	assert.Equal(t, orig.Metadata, rebuilt.Metadata)
	assert.Equal(t, orig.Articles, rebuilt.Articles)
	assert.Equal(t, orig.Appendices, rebuilt.Appendices)
}

func TestRebuild_NoParts(t *testing.T) {
	_, err := Rebuild(nil)
	assert.Error(t, err)
}

func TestRebuild_RejectsDuplicateArticleNumbers(t *testing.T) {
	parts := []*Document{
		{Articles: []corpus.Article{{ArticleNumber: "1"}, {ArticleNumber: "2"}}},
		{Articles: []corpus.Article{{ArticleNumber: "2"}}},
	}

	_, err := Rebuild(parts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "article 2")
}

func TestReadWriteDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "corpus.json")

	orig := sampleDoc(2)
	require.NoError(t, WriteDocument(path, orig))

	got, err := ReadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, orig.Articles, got.Articles)
	assert.Equal(t, orig.Metadata, got.Metadata)
}

func TestPartFileName(t *testing.T) {
	assert.Equal(t, "arabic_data_part1.json", PartFileName(corpus.LanguageArabic, 0))
	assert.Equal(t, "english_data_part3.json", PartFileName(corpus.LanguageEnglish, 2))
}

func TestSummarize(t *testing.T) {
	doc := sampleDoc(3)
	doc.Articles[2].Content = ""

	s := Summarize(doc)
	assert.Equal(t, 3, s.Articles)
	assert.Equal(t, 1, s.Appendices)
	assert.Equal(t, 1, s.EmptyArticles)
	assert.Equal(t, 2, s.ContentRunes)
	assert.Equal(t, "Rules", s.Title)
}
