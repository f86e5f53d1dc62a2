package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"requirement-extractor/pkg/registry"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the table to a file",
	Long: `export writes the current table (the built-in one unless --path is given)
to --out. The encoding follows the file extension: .json writes JSON,
.toml writes TOML, anything else YAML.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadTable()
		if err != nil {
			return err
		}
		if err := registry.Save(exportOut, table.Document()); err != nil {
			return fmt.Errorf("export to %s: %w", exportOut, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "destination file")
	exportCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(exportCmd)
}
