package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/groblegark/quotevault/internal/store"
)

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version      string    `json:"version"`
	Type         string    `json:"type"`
	Timestamp    time.Time `json:"timestamp"`
	LineageCount int       `json:"lineage_count"`
	VersionCount int       `json:"version_count"`
	PackageCount int       `json:"package_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// ExportJSONL writes the full version history from the store as JSONL to w.
// Lineages are walked in sorted order; each version record carries its frozen
// snapshot, and live package rows follow the version that owns them.
func ExportJSONL(ctx context.Context, s store.Store, w io.Writer) error {
	lineages, err := s.ListLineages(ctx)
	if err != nil {
		return fmt.Errorf("list lineages: %w", err)
	}

	type versionLine struct {
		version  *record
		packages []*record
	}
	var lines []versionLine
	packageCount := 0
	versionCount := 0

	for _, lineage := range lineages {
		versions, err := s.ListVersions(ctx, lineage)
		if err != nil {
			return fmt.Errorf("list versions for %s: %w", lineage, err)
		}
		for _, v := range versions {
			vl := versionLine{version: &record{Type: "version", Data: v}}
			versionCount++

			pkgs, err := s.ListPackages(ctx, v.ID, false)
			if err != nil {
				return fmt.Errorf("list packages for %s: %w", v.ID, err)
			}
			for _, p := range pkgs {
				vl.packages = append(vl.packages, &record{Type: "package", Data: p})
				packageCount++
			}
			lines = append(lines, vl)
		}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:      "1",
		Type:         "header",
		Timestamp:    time.Now().UTC(),
		LineageCount: len(lineages),
		VersionCount: versionCount,
		PackageCount: packageCount,
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, vl := range lines {
		if err := enc.Encode(vl.version); err != nil {
			return fmt.Errorf("encode version: %w", err)
		}
		for _, p := range vl.packages {
			if err := enc.Encode(p); err != nil {
				return fmt.Errorf("encode package: %w", err)
			}
		}
	}

	return nil
}
