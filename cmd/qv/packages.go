package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/groblegark/quotevault/internal/client"
)

var packagesCmd = &cobra.Command{
	Use:     "packages <version-id>",
	Short:   "List packages of a version",
	GroupID: "packages",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		activeOnly, _ := cmd.Flags().GetBool("active")

		pkgs, err := vaultClient.ListPackages(context.Background(), id, activeOnly)
		if err != nil {
			return fmt.Errorf("listing packages for %s: %w", id, err)
		}

		if jsonOutput {
			printJSON(pkgs)
			return nil
		}
		printPackageListTable(pkgs)
		return nil
	},
}

var packageCmd = &cobra.Command{
	Use:     "package",
	Short:   "Manage packages on the active version",
	GroupID: "packages",
}

var packageAddCmd = &cobra.Command{
	Use:   "add <version-id> <name>",
	Short: "Add a package to a version",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		versionID, name := args[0], args[1]
		description, _ := cmd.Flags().GetString("description")
		price, _ := cmd.Flags().GetFloat64("price")
		services, _ := cmd.Flags().GetStringSlice("services")
		fieldsArg, _ := cmd.Flags().GetString("fields")

		req := &client.CreatePackageRequest{
			Name:        name,
			Description: description,
			Price:       price,
			Services:    services,
		}
		if fieldsArg != "" {
			if !json.Valid([]byte(fieldsArg)) {
				return fmt.Errorf("fields is not valid JSON")
			}
			req.Fields = json.RawMessage(fieldsArg)
		}

		pkg, err := vaultClient.CreatePackage(context.Background(), versionID, req)
		if err != nil {
			return fmt.Errorf("creating package: %w", err)
		}

		if jsonOutput {
			printJSON(pkg)
			return nil
		}
		fmt.Printf("created %s (%s)\n", pkg.Name, pkg.ID)
		return nil
	},
}

var packageShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show details of a package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pkg, err := vaultClient.GetPackage(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("getting package %s: %w", args[0], err)
		}

		if jsonOutput {
			printJSON(pkg)
			return nil
		}
		printPackageTable(pkg)
		return nil
	},
}

var packageUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of a package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		req := &client.UpdatePackageRequest{}

		if cmd.Flags().Changed("name") {
			v, _ := cmd.Flags().GetString("name")
			req.Name = &v
		}
		if cmd.Flags().Changed("description") {
			v, _ := cmd.Flags().GetString("description")
			req.Description = &v
		}
		if cmd.Flags().Changed("price") {
			v, _ := cmd.Flags().GetFloat64("price")
			req.Price = &v
		}
		if cmd.Flags().Changed("services") {
			v, _ := cmd.Flags().GetStringSlice("services")
			req.Services = v
		}
		if cmd.Flags().Changed("fields") {
			v, _ := cmd.Flags().GetString("fields")
			if !json.Valid([]byte(v)) {
				return fmt.Errorf("fields is not valid JSON")
			}
			req.Fields = json.RawMessage(v)
		}
		if cmd.Flags().Changed("active") {
			v, _ := cmd.Flags().GetBool("active")
			req.Active = &v
		}

		pkg, err := vaultClient.UpdatePackage(context.Background(), id, req)
		if err != nil {
			return fmt.Errorf("updating package %s: %w", id, err)
		}

		if jsonOutput {
			printJSON(pkg)
			return nil
		}
		fmt.Printf("updated %s (%s)\n", pkg.Name, pkg.ID)
		if len(pkg.Services) > 0 {
			fmt.Printf("services: %s\n", strings.Join(pkg.Services, ", "))
		}
		return nil
	},
}

var packageRemoveCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		if err := vaultClient.DeletePackage(context.Background(), id); err != nil {
			return fmt.Errorf("deleting package %s: %w", id, err)
		}
		fmt.Printf("deleted %s\n", id)
		return nil
	},
}

func init() {
	packagesCmd.Flags().Bool("active", false, "only active packages")

	packageAddCmd.Flags().String("description", "", "package description")
	packageAddCmd.Flags().Float64("price", 0, "package price")
	packageAddCmd.Flags().StringSlice("services", nil, "ordered service list")
	packageAddCmd.Flags().String("fields", "", "extra fields as JSON")

	packageUpdateCmd.Flags().String("name", "", "new name")
	packageUpdateCmd.Flags().String("description", "", "new description")
	packageUpdateCmd.Flags().Float64("price", 0, "new price")
	packageUpdateCmd.Flags().StringSlice("services", nil, "new ordered service list")
	packageUpdateCmd.Flags().String("fields", "", "new extra fields as JSON")
	packageUpdateCmd.Flags().Bool("active", true, "active flag")

	packageCmd.AddCommand(packageAddCmd)
	packageCmd.AddCommand(packageShowCmd)
	packageCmd.AddCommand(packageUpdateCmd)
	packageCmd.AddCommand(packageRemoveCmd)
}
