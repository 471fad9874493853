package corpusbuild

import (
	"fmt"
)

// Rebuild merges part documents back into one whole document. Parts
// must be given in order; metadata comes from the first part and
// appendices from whichever part carries them.
func Rebuild(parts []*Document) (*Document, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("no parts to rebuild from")
	}

	out := &Document{Metadata: parts[0].Metadata}
	seen := make(map[string]struct{})
	for i, p := range parts {
		for _, a := range p.FlatArticles() {
			if a.ArticleNumber != "" {
				if _, dup := seen[a.ArticleNumber]; dup {
					return nil, fmt.Errorf("article %s appears in more than one part (part %d)", a.ArticleNumber, i+1)
				}
				seen[a.ArticleNumber] = struct{}{}
			}
			out.Articles = append(out.Articles, a)
		}
		if len(p.Appendices) > 0 && len(out.Appendices) == 0 {
			out.Appendices = p.Appendices
		}
	}

	if len(out.Articles) == 0 {
		return nil, fmt.Errorf("rebuilt document has no articles")
	}
	return out, nil
}
