package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"requirement-extractor/internal/common/logger"
	"requirement-extractor/internal/extraction/classifier"
	"requirement-extractor/internal/extraction/orchestrator"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <description>",
	Short: "Run rule-based extraction on a description",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadTable()
		if err != nil {
			return err
		}
		text := strings.Join(args, " ")

		archetype, score := classifier.Classify(table, text)
		result, err := orchestrator.New(orchestrator.Config{}, table, logger.NewNoOpLogger()).
			Extract(cmd.Context(), text)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"archetype": archetype.Name,
			"score":     score,
			"result":    result,
		})
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
