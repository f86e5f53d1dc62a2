package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List archetypes in priority order",
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadTable()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "version %s\n", table.Version())
		for i, a := range table.Archetypes() {
			fmt.Fprintf(out, "%2d. %-28s %d keywords  [%s]\n", i+1, a.Name, len(a.Keywords), strings.Join(a.Keywords, ", "))
		}
		fmt.Fprintf(out, "fallback: %s\n", table.Fallback().Name)
		fmt.Fprintf(out, "signals: %d entity, %d role, %d feature\n",
			len(table.EntitySignals()), len(table.RoleSignals()), len(table.FeatureSignals()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
