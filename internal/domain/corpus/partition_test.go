package corpus

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeArticles(n int) []Article {
	out := make([]Article, n)
	for i := range out {
		out[i] = Article{ArticleNumber: fmt.Sprintf("%d", i+1)}
	}
	return out
}

func TestPartitionArticles_CeilSizedChunks(t *testing.T) {
	parts := PartitionArticles(makeArticles(10), 4)
	require.Len(t, parts, 4)

	// ceil(10/4) = 3, so 3+3+3+1.
	assert.Len(t, parts[0].Articles, 3)
	assert.Len(t, parts[1].Articles, 3)
	assert.Len(t, parts[2].Articles, 3)
	assert.Len(t, parts[3].Articles, 1)
}

func TestPartitionArticles_PreservesOrderAndCoverage(t *testing.T) {
	articles := makeArticles(7)
	parts := PartitionArticles(articles, 3)

	var got []string
	for _, p := range parts {
		for _, a := range p.Articles {
			got = append(got, a.ArticleNumber)
		}
	}
	require.Len(t, got, 7)
	for i, num := range got {
		assert.Equal(t, fmt.Sprintf("%d", i+1), num)
	}
}

func TestPartitionArticles_CountOne(t *testing.T) {
	parts := PartitionArticles(makeArticles(5), 1)
	require.Len(t, parts, 1)
	assert.Len(t, parts[0].Articles, 5)
	assert.Equal(t, 0, parts[0].Start)
	assert.Equal(t, 5, parts[0].End)
}

func TestPartitionArticles_MorePartitionsThanArticles(t *testing.T) {
	parts := PartitionArticles(makeArticles(2), 5)
	require.Len(t, parts, 2)
	assert.Len(t, parts[0].Articles, 1)
	assert.Len(t, parts[1].Articles, 1)
}

func TestPartitionArticles_Empty(t *testing.T) {
	assert.Nil(t, PartitionArticles(nil, 3))
}

func TestPartitionCorpus_KeepsMetadataAndAppendices(t *testing.T) {
	c := &Corpus{
		Language:   LanguageEnglish,
		Metadata:   Metadata{Title: "Rules"},
		Articles:   makeArticles(4),
		Appendices: []Appendix{{AppendixNumber: "A"}},
	}
	parts := PartitionArticles(c.Articles, 2)
	view := PartitionCorpus(c, parts[1])

	assert.Equal(t, c.Metadata, view.Metadata)
	assert.Equal(t, c.Appendices, view.Appendices)
	assert.Equal(t, LanguageEnglish, view.Language)
	assert.Len(t, view.Articles, 2)
	assert.Equal(t, "3", view.Articles[0].ArticleNumber)
}
