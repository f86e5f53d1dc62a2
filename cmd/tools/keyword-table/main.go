// cmd/tools/keyword-table/main.go

// Package main is a small CLI for inspecting, validating and exporting the
// keyword table that drives rule-based extraction.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"requirement-extractor/internal/extraction/keywords"
)

var tablePath string

var rootCmd = &cobra.Command{
	Use:   "keyword-table",
	Short: "Manage the rule-based extraction keyword table",
	Long: `keyword-table works with the table of archetypes, signals and augmentation
rules used when no remote model is available. Without --path the built-in
table is used.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&tablePath, "path", "", "keyword table file (.yaml, .yml, .json or .toml)")
}

// loadTable returns the table at --path, or the built-in one.
func loadTable() (*keywords.Table, error) {
	return keywords.Load(tablePath)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
