// Package main is the offline corpus tooling entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information, injected at build time.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "corpus-tool",
	Short: "Offline tooling for the legal document corpus",
	Long: `corpus-tool cleans, splits and rebuilds the bilingual legal
document JSON files served by the search API.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
