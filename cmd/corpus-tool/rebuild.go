package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"itpf-legal-api/internal/corpusbuild"
	"itpf-legal-api/internal/domain/corpus"
)

var (
	rebuildLanguage string
	rebuildDir      string
	rebuildOutput   string
)

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild a whole corpus file from its part files",
	RunE:  runRebuild,
}

func init() {
	rebuildCmd.Flags().StringVarP(&rebuildLanguage, "language", "l", "ar", "corpus language (ar or en)")
	rebuildCmd.Flags().StringVarP(&rebuildDir, "dir", "d", "data", "directory holding the part files")
	rebuildCmd.Flags().StringVarP(&rebuildOutput, "output", "o", "", "output file (required)")
	_ = rebuildCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(rebuildCmd)
}

func runRebuild(cmd *cobra.Command, _ []string) error {
	lang := corpus.Language(rebuildLanguage)
	if !lang.Valid() {
		return fmt.Errorf("unsupported language: %s", rebuildLanguage)
	}

	var parts []*corpusbuild.Document
	for i := 0; ; i++ {
		path := filepath.Join(rebuildDir, corpusbuild.PartFileName(lang, i))
		doc, err := corpusbuild.ReadDocument(path)
		if err != nil {
			if os.IsNotExist(err) {
				break
			}
			return fmt.Errorf("read part %d: %w", i+1, err)
		}
		parts = append(parts, doc)
	}

	whole, err := corpusbuild.Rebuild(parts)
	if err != nil {
		return err
	}

	if err := corpusbuild.WriteDocument(rebuildOutput, whole); err != nil {
		return fmt.Errorf("write corpus: %w", err)
	}

	cmd.Printf("rebuilt %s from %d parts (%d articles)\n",
		rebuildOutput, len(parts), len(whole.Articles))
	return nil
}
