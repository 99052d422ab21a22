package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/groblegark/quotevault/internal/model"
	"github.com/groblegark/quotevault/internal/ui"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printVersionTable(v *model.ConfigVersion) {
	fmt.Printf("ID:          %s\n", v.ID)
	fmt.Printf("Identifier:  %s\n", ui.RenderAccent(v.Identifier))
	fmt.Printf("Lineage:     %s\n", v.Lineage)
	fmt.Printf("Sequence:    %d\n", v.Sequence)
	fmt.Printf("Active:      %t\n", v.Active)
	if v.Frozen() {
		fmt.Printf("Frozen At:   %s\n", v.FrozenAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("Snapshot:    %d packages\n", len(v.FrozenPackages))
	}
	if v.CreatedBy != "" {
		fmt.Printf("Created By:  %s\n", v.CreatedBy)
	}
	if !v.CreatedAt.IsZero() {
		fmt.Printf("Created At:  %s\n", v.CreatedAt.Format("2006-01-02 15:04:05"))
	}
}

func printVersionListTable(lineage string, versions []*model.ConfigVersion) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "IDENTIFIER\tID\tACTIVE\tFROZEN\tCREATED")
	for _, v := range versions {
		frozen := "-"
		if v.Frozen() {
			frozen = v.FrozenAt.Format("2006-01-02")
		}
		active := ""
		if v.Active {
			active = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			v.Identifier,
			v.ID,
			active,
			frozen,
			v.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	w.Flush()
	fmt.Printf("\n%d versions in %s\n", len(versions), lineage)
}

func printPackageTable(p *model.PackageRecord) {
	fmt.Printf("ID:          %s\n", p.ID)
	fmt.Printf("Name:        %s\n", ui.RenderAccent(p.Name))
	fmt.Printf("Version:     %s\n", p.VersionID)
	fmt.Printf("Price:       %.2f\n", p.Price)
	fmt.Printf("Active:      %t\n", p.Active)
	if p.Description != "" {
		fmt.Printf("Description: %s\n", p.Description)
	}
	if len(p.Services) > 0 {
		fmt.Printf("Services:    %s\n", strings.Join(p.Services, ", "))
	}
}

func printPackageListTable(pkgs []*model.PackageRecord) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tSERVICES\tACTIVE")
	for _, p := range pkgs {
		services := strings.Join(p.Services, ",")
		if len(services) > 40 {
			services = services[:37] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%t\n", p.ID, p.Name, p.Price, services, p.Active)
	}
	w.Flush()
	fmt.Printf("\n%d packages\n", len(pkgs))
}

func printDiff(diff *model.DiffResult) {
	if diff == nil {
		fmt.Println(ui.RenderMuted("no snapshot to compare against"))
		return
	}
	if diff.Identical {
		fmt.Println("Current packages and historical snapshot are identical.")
		return
	}

	for _, name := range diff.Added {
		fmt.Printf("  + %s %s\n", name, ui.RenderMuted("(only in current)"))
	}
	for _, name := range diff.Removed {
		fmt.Printf("  - %s %s\n", name, ui.RenderMuted("(only in snapshot)"))
	}
	for _, fd := range diff.FieldDiffs {
		fmt.Printf("  ~ %s.%s: %v %s %v\n",
			ui.RenderAccent(fd.Entity), fd.Field,
			fd.Current, ui.RenderMuted("->"), fd.Historical)
	}
	fmt.Printf("\n%d modified, %d unchanged, %d added, %d removed\n",
		diff.ModifiedCount, diff.UnchangedCount, len(diff.Added), len(diff.Removed))
}
