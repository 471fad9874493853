package corpus

// Partition is a contiguous slice of the corpus article list, tagged
// with its offset range. Articles are shared with the source corpus
// and must not be mutated.
type Partition struct {
	Index    int
	Start    int
	End      int // exclusive
	Articles []Article
}

// PartitionArticles chunks the article list into count partitions of
// size ceil(len/count). The final partition may be shorter. Order is
// preserved and every article appears exactly once.
func PartitionArticles(articles []Article, count int) []Partition {
	n := len(articles)
	if n == 0 {
		return nil
	}
	if count <= 1 || count >= n {
		if count >= n && count > 1 {
			// More partitions than articles: one article each.
			out := make([]Partition, 0, n)
			for i := range articles {
				out = append(out, Partition{
					Index:    i,
					Start:    i,
					End:      i + 1,
					Articles: articles[i : i+1],
				})
			}
			return out
		}
		return []Partition{{Index: 0, Start: 0, End: n, Articles: articles}}
	}

	size := (n + count - 1) / count
	out := make([]Partition, 0, count)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		out = append(out, Partition{
			Index:    len(out),
			Start:    start,
			End:      end,
			Articles: articles[start:end],
		})
	}
	return out
}

// PartitionCorpus derives a corpus view holding only the partition's
// articles; metadata and appendices ride along so the upstream prompt
// keeps full document context.
func PartitionCorpus(c *Corpus, p Partition) *Corpus {
	return &Corpus{
		Language:   c.Language,
		Metadata:   c.Metadata,
		Articles:   p.Articles,
		Appendices: c.Appendices,
	}
}
