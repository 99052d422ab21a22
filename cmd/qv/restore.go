package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/groblegark/quotevault/internal/model"
	"github.com/groblegark/quotevault/internal/ui"
)

var restoreCmd = &cobra.Command{
	Use:     "restore <version-id>",
	Short:   "Restore a historical version into the active slot",
	GroupID: "restore",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		strategyArg, _ := cmd.Flags().GetString("strategy")

		strategy := model.RestoreStrategy(strategyArg)
		if !strategy.IsValid() {
			return fmt.Errorf("invalid strategy %q (must be %s or %s)",
				strategyArg, model.StrategyHistorical, model.StrategyCurrent)
		}

		result, err := vaultClient.ExecuteRestore(context.Background(), id, strategy, actor)
		if err != nil {
			return fmt.Errorf("restoring %s: %w", id, err)
		}

		if jsonOutput {
			printJSON(result)
			return nil
		}

		fmt.Printf("restored %s as %s (%s strategy)\n",
			ui.RenderAccent(result.PreviousVersion.Lineage),
			ui.RenderAccent(result.NewVersion.Identifier),
			result.Strategy)
		fmt.Printf("previous active %s is now frozen\n", result.PreviousVersion.Identifier)
		return nil
	},
}

func init() {
	restoreCmd.Flags().String("strategy", string(model.StrategyHistorical),
		"package strategy: historical (recreate from snapshot) or current (carry forward)")
}
