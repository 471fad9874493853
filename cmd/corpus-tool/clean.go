package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"itpf-legal-api/internal/corpusbuild"
	"itpf-legal-api/internal/domain/corpus"
)

var (
	cleanLanguage string
	cleanOutput   string
)

var cleanCmd = &cobra.Command{
	Use:   "clean [file]",
	Short: "Normalize article text in a corpus file",
	Long: `Normalizes article text without removing any of it: Arabic letter
variants are unified, Arabic/Latin script boundaries get spacing and
whitespace is trimmed. Chaptered layouts are flattened.`,
	Args: cobra.ExactArgs(1),
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().StringVarP(&cleanLanguage, "language", "l", "ar", "corpus language (ar or en)")
	cleanCmd.Flags().StringVarP(&cleanOutput, "output", "o", "", "output file (defaults to overwriting the input)")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	lang := corpus.Language(cleanLanguage)
	if !lang.Valid() {
		return fmt.Errorf("unsupported language: %s", cleanLanguage)
	}

	doc, err := corpusbuild.ReadDocument(args[0])
	if err != nil {
		return fmt.Errorf("read corpus: %w", err)
	}

	cleaned := corpusbuild.Clean(doc, lang)

	out := cleanOutput
	if out == "" {
		out = args[0]
	}
	if err := corpusbuild.WriteDocument(out, cleaned); err != nil {
		return fmt.Errorf("write corpus: %w", err)
	}

	cmd.Printf("cleaned %d articles -> %s\n", len(cleaned.Articles), out)
	return nil
}
