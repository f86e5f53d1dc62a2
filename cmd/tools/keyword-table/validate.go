package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"requirement-extractor/pkg/registry"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a keyword table file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if tablePath == "" {
			return errors.New("--path is required")
		}
		doc, err := registry.Load(tablePath)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: valid (version %s, %d archetypes, %d augmentations)\n",
			tablePath, doc.Version, len(doc.Archetypes), len(doc.Augmentations))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
