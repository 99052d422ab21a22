package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:     "show <version-id>",
	Short:   "Show details of a configuration version",
	GroupID: "lineages",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		version, err := vaultClient.GetVersion(context.Background(), id)
		if err != nil {
			return fmt.Errorf("getting version %s: %w", id, err)
		}

		if jsonOutput {
			printJSON(version)
			return nil
		}

		printVersionTable(version)

		if len(version.FrozenPackages) > 0 {
			fmt.Println()
			fmt.Println("Frozen Snapshot:")
			for _, e := range version.FrozenPackages {
				fmt.Printf("  %s (%.2f)", e.Name, e.Price)
				if len(e.Services) > 0 {
					fmt.Printf(" [%s]", strings.Join(e.Services, ", "))
				}
				fmt.Println()
			}
		}

		if version.Active {
			pkgs, err := vaultClient.ListPackages(context.Background(), id, false)
			if err != nil {
				return fmt.Errorf("listing packages: %w", err)
			}
			if len(pkgs) > 0 {
				fmt.Println()
				fmt.Println("Live Packages:")
				for _, p := range pkgs {
					fmt.Printf("  %s  %s (%.2f)\n", p.ID, p.Name, p.Price)
				}
			}
		}
		return nil
	},
}
