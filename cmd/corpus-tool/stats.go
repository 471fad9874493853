package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"itpf-legal-api/internal/corpusbuild"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats [file]",
	Short: "Print statistics for a corpus file",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	doc, err := corpusbuild.ReadDocument(args[0])
	if err != nil {
		return fmt.Errorf("read corpus: %w", err)
	}

	s := corpusbuild.Summarize(doc)
	if statsJSON {
		raw, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(raw))
		return nil
	}

	cmd.Printf("title:          %s\n", s.Title)
	cmd.Printf("version:        %s\n", s.Version)
	cmd.Printf("articles:       %d\n", s.Articles)
	cmd.Printf("appendices:     %d\n", s.Appendices)
	cmd.Printf("content runes:  %d\n", s.ContentRunes)
	cmd.Printf("empty articles: %d\n", s.EmptyArticles)
	return nil
}
