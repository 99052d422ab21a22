package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/groblegark/quotevault/internal/ui"
)

var previewCmd = &cobra.Command{
	Use:     "preview <version-id>",
	Short:   "Preview what restoring a version would change",
	GroupID: "restore",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		result, err := vaultClient.PreviewRestore(context.Background(), id)
		if err != nil {
			return fmt.Errorf("previewing restore of %s: %w", id, err)
		}

		if jsonOutput {
			printJSON(result)
			return nil
		}

		fmt.Printf("Restore %s over active %s\n",
			ui.RenderAccent(result.TargetIdentifier),
			ui.RenderAccent(result.ActiveIdentifier))
		if !result.HasHistoricSnapshot {
			fmt.Println(ui.RenderMuted("target has no frozen snapshot; only the current strategy can carry packages"))
			return nil
		}
		fmt.Println()
		printDiff(result.Diff)
		return nil
	},
}
