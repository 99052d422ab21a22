package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/groblegark/quotevault/internal/client"
)

var lineagesCmd = &cobra.Command{
	Use:     "lineages",
	Short:   "List all lineages",
	GroupID: "lineages",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lineages, err := vaultClient.ListLineages(context.Background())
		if err != nil {
			return fmt.Errorf("listing lineages: %w", err)
		}

		if jsonOutput {
			printJSON(lineages)
			return nil
		}
		for _, l := range lineages {
			fmt.Println(l)
		}
		fmt.Printf("\n%d lineages\n", len(lineages))
		return nil
	},
}

var initCmd = &cobra.Command{
	Use:     "init <lineage>",
	Short:   "Create the first active version of a new lineage",
	GroupID: "lineages",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lineage := args[0]
		templateArg, _ := cmd.Flags().GetString("template")

		var template json.RawMessage
		if templateArg != "" {
			data, err := readTemplate(templateArg)
			if err != nil {
				return err
			}
			template = data
		}

		version, err := vaultClient.CreateLineage(context.Background(), &client.CreateLineageRequest{
			Lineage:  lineage,
			Template: template,
			Actor:    actor,
		})
		if err != nil {
			return fmt.Errorf("creating lineage %s: %w", lineage, err)
		}

		if jsonOutput {
			printJSON(version)
			return nil
		}
		fmt.Printf("created %s (%s)\n", version.Identifier, version.ID)
		return nil
	},
}

// readTemplate accepts inline JSON or @path to read from a file.
func readTemplate(arg string) (json.RawMessage, error) {
	var data []byte
	if len(arg) > 1 && arg[0] == '@' {
		b, err := os.ReadFile(arg[1:])
		if err != nil {
			return nil, fmt.Errorf("reading template file: %w", err)
		}
		data = b
	} else {
		data = []byte(arg)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("template is not valid JSON")
	}
	return data, nil
}

func init() {
	initCmd.Flags().String("template", "", "template JSON (inline or @file)")
}
