package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"itpf-legal-api/internal/corpusbuild"
	"itpf-legal-api/internal/domain/corpus"
)

var (
	splitLanguage string
	splitParts    int
	splitOutDir   string
)

var splitCmd = &cobra.Command{
	Use:   "split [file]",
	Short: "Split a whole corpus file into part files",
	Long: `Splits a whole corpus file into equally sized part files in article
order. The part files are what the API server loads at runtime.`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func init() {
	splitCmd.Flags().StringVarP(&splitLanguage, "language", "l", "ar", "corpus language (ar or en)")
	splitCmd.Flags().IntVarP(&splitParts, "parts", "p", 3, "number of part files")
	splitCmd.Flags().StringVarP(&splitOutDir, "out", "o", "data", "output directory")
	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) error {
	lang := corpus.Language(splitLanguage)
	if !lang.Valid() {
		return fmt.Errorf("unsupported language: %s", splitLanguage)
	}

	doc, err := corpusbuild.ReadDocument(args[0])
	if err != nil {
		return fmt.Errorf("read corpus: %w", err)
	}

	parts, err := corpusbuild.Split(doc, splitParts)
	if err != nil {
		return err
	}

	for i, part := range parts {
		path := filepath.Join(splitOutDir, corpusbuild.PartFileName(lang, i))
		if err := corpusbuild.WriteDocument(path, part); err != nil {
			return fmt.Errorf("write part %d: %w", i+1, err)
		}
		cmd.Printf("wrote %s (%d articles)\n", path, len(part.Articles))
	}
	return nil
}
