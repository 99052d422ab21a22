// Package snapshot captures the package state of a configuration version
// and computes structural diffs between two captured states.
package snapshot

import (
	"context"
	"fmt"

	"github.com/groblegark/quotevault/internal/model"
)

// PackageReader is the subset of the store the capturer needs. Both the
// live store and a transaction store satisfy it.
type PackageReader interface {
	ListPackages(ctx context.Context, versionID string, activeOnly bool) ([]*model.PackageRecord, error)
	GetFrozenPackages(ctx context.Context, versionID string) ([]model.SnapshotEntry, error)
}

// Origin tags where a captured snapshot came from.
type Origin int

const (
	// OriginNone marks an empty capture: the version owns no live packages
	// and has no frozen copy. A version may legitimately own zero packages.
	OriginNone Origin = iota
	// OriginLive marks a capture read from the version's live package rows.
	OriginLive
	// OriginFrozen marks a capture served from the version's stored frozen
	// copy, used when a restored version was never re-populated with rows.
	OriginFrozen
)

// String returns the origin's name.
func (o Origin) String() string {
	switch o {
	case OriginLive:
		return "live"
	case OriginFrozen:
		return "frozen"
	default:
		return "none"
	}
}

// Source is a captured snapshot together with where it came from.
type Source struct {
	Origin  Origin
	Entries []model.SnapshotEntry
}

// Empty reports whether the capture holds no entries.
func (s Source) Empty() bool {
	return len(s.Entries) == 0
}

// Capture reads the current package state of a version. Live rows win; if
// the version owns none, a previously stored frozen copy is used verbatim.
// Capture never writes and is idempotent between mutations.
func Capture(ctx context.Context, r PackageReader, versionID string) (Source, error) {
	live, err := r.ListPackages(ctx, versionID, true)
	if err != nil {
		return Source{}, fmt.Errorf("capture %s: list packages: %w", versionID, err)
	}
	if len(live) > 0 {
		return Source{Origin: OriginLive, Entries: model.SnapshotAll(live)}, nil
	}

	frozen, err := r.GetFrozenPackages(ctx, versionID)
	if err != nil {
		return Source{}, fmt.Errorf("capture %s: frozen packages: %w", versionID, err)
	}
	if len(frozen) > 0 {
		return Source{Origin: OriginFrozen, Entries: frozen}, nil
	}

	return Source{Origin: OriginNone}, nil
}
