package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var versionsCmd = &cobra.Command{
	Use:     "versions <lineage>",
	Short:   "List all versions of a lineage",
	GroupID: "lineages",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lineage := args[0]

		versions, err := vaultClient.ListVersions(context.Background(), lineage)
		if err != nil {
			return fmt.Errorf("listing versions for %s: %w", lineage, err)
		}

		if jsonOutput {
			printJSON(versions)
			return nil
		}
		printVersionListTable(lineage, versions)
		return nil
	},
}
