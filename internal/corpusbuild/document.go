// Package corpusbuild implements the offline corpus tooling: cleaning
// the source JSON, splitting it into part files and rebuilding the
// whole document from parts.
package corpusbuild

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"itpf-legal-api/internal/domain/corpus"
)

// Document is the on-disk shape of a corpus file, whole or part. It
// mirrors what the loader reads, with chapters tolerated on input and
// never written on output.
type Document struct {
	Metadata   corpus.Metadata   `json:"metadata"`
	Articles   []corpus.Article  `json:"articles"`
	Chapters   []corpus.Chapter  `json:"chapters,omitempty"`
	Appendices []corpus.Appendix `json:"appendices,omitempty"`
}

// FlatArticles returns the document's articles, pulling them out of
// chapters when the file uses the chaptered layout.
func (d *Document) FlatArticles() []corpus.Article {
	if len(d.Articles) > 0 {
		return d.Articles
	}
	var out []corpus.Article
	for _, ch := range d.Chapters {
		out = append(out, ch.Articles...)
	}
	return out
}

// ReadDocument loads a corpus JSON file.
func ReadDocument(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return &doc, nil
}

// WriteDocument writes a corpus JSON file, creating parent directories
// as needed.
func WriteDocument(path string, doc *Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
