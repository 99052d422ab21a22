// Package restore composes the version store, snapshot capture, differ, and
// numbering into the preview/execute restore protocol for a lineage.
package restore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/groblegark/quotevault/internal/idgen"
	"github.com/groblegark/quotevault/internal/model"
	"github.com/groblegark/quotevault/internal/numbering"
	"github.com/groblegark/quotevault/internal/snapshot"
	"github.com/groblegark/quotevault/internal/store"
)

// Restore failure taxonomy. Execute failures always roll back the whole
// transaction; the caller never observes a partially applied restore.
var (
	// ErrNotFound: the target version does not exist.
	ErrNotFound = errors.New("restore: version not found")
	// ErrNoActiveVersion: the target's lineage has no active version. A
	// healthy store never reaches this state.
	ErrNoActiveVersion = errors.New("restore: lineage has no active version")
	// ErrInvalidStrategy: the strategy is not a recognized value.
	ErrInvalidStrategy = errors.New("restore: invalid strategy")
	// ErrNoHistoricalSnapshot: the historical strategy was chosen but the
	// target carries no frozen snapshot.
	ErrNoHistoricalSnapshot = errors.New("restore: target has no frozen snapshot")
	// ErrNoPackagesAvailable: the current strategy was chosen but the
	// active version has nothing to carry forward.
	ErrNoPackagesAvailable = errors.New("restore: no packages to carry forward")
	// ErrPersistenceFailure: a freeze write did not observe its own effect.
	ErrPersistenceFailure = errors.New("restore: frozen snapshot not observed after write")
	// ErrLineageActive: lineage bootstrap was attempted while an active
	// version already exists.
	ErrLineageActive = errors.New("restore: lineage already has an active version")
)

// PreviewResult reports what a restore of the target would change, without
// mutating anything.
type PreviewResult struct {
	TargetID            string            `json:"target_id"`
	TargetIdentifier    string            `json:"target_identifier"`
	ActiveID            string            `json:"active_id"`
	ActiveIdentifier    string            `json:"active_identifier"`
	HasHistoricSnapshot bool              `json:"has_historic_snapshot"`
	CanRestorePackages  bool              `json:"can_restore_packages"`
	Diff                *model.DiffResult `json:"diff,omitempty"`
}

// ExecuteResult reports a completed restore.
type ExecuteResult struct {
	NewVersion      *model.ConfigVersion  `json:"new_version"`
	PreviousVersion *model.ConfigVersion  `json:"previous_version"`
	Strategy        model.RestoreStrategy `json:"strategy"`
}

// Orchestrator owns the restore protocol over a store.
type Orchestrator struct {
	store store.Store
}

// New returns an Orchestrator backed by the given store.
func New(s store.Store) *Orchestrator {
	return &Orchestrator{store: s}
}

// Preview compares the lineage's current package state against the target
// version's frozen snapshot. It performs no writes and is safe to retry.
func (o *Orchestrator) Preview(ctx context.Context, targetID string) (*PreviewResult, error) {
	target, err := o.store.GetVersion(ctx, targetID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, targetID)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch target: %w", err)
	}

	active, err := o.store.GetActiveVersion(ctx, target.Lineage)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNoActiveVersion, target.Lineage)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch active version: %w", err)
	}

	// Always capture fresh: the active version's packages may have changed
	// since it last carried a frozen copy.
	current, err := snapshot.Capture(ctx, o.store, active.ID)
	if err != nil {
		return nil, err
	}

	result := &PreviewResult{
		TargetID:         target.ID,
		TargetIdentifier: target.Identifier,
		ActiveID:         active.ID,
		ActiveIdentifier: active.Identifier,
	}

	// Versions predating snapshot support have no frozen copy; that is a
	// reportable condition, not an error.
	if len(target.FrozenPackages) == 0 {
		return result, nil
	}
	result.HasHistoricSnapshot = true
	result.CanRestorePackages = true

	diff, err := snapshot.Diff(current.Entries, target.FrozenPackages)
	if err != nil {
		return nil, err
	}
	result.Diff = diff

	return result, nil
}

// Execute restores the target version into the active slot: the current
// active version is frozen and deactivated, a new version is created from
// the target's template, and packages are reconciled per the strategy. All
// writes happen in one transaction serialized per lineage by a row lock on
// the active version.
func (o *Orchestrator) Execute(ctx context.Context, targetID string, strategy model.RestoreStrategy, actor string) (*ExecuteResult, error) {
	if !strategy.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStrategy, strategy)
	}

	target, err := o.store.GetVersion(ctx, targetID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, targetID)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch target: %w", err)
	}

	var result *ExecuteResult
	err = o.store.RunInTransaction(ctx, func(tx store.Store) error {
		active, err := tx.GetActiveVersionForUpdate(ctx, target.Lineage)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrNoActiveVersion, target.Lineage)
		}
		if err != nil {
			return fmt.Errorf("lock active version: %w", err)
		}

		identifiers, err := tx.ListIdentifiers(ctx, target.Lineage)
		if err != nil {
			return fmt.Errorf("list identifiers: %w", err)
		}
		identifier, sequence := numbering.Next(target.Lineage, identifiers)

		current, err := snapshot.Capture(ctx, tx, active.ID)
		if err != nil {
			return err
		}

		if err := tx.DeactivateVersion(ctx, active.ID, current.Entries); err != nil {
			return fmt.Errorf("deactivate %s: %w", active.ID, err)
		}

		// Verification gate: re-read the freeze before any destructive step.
		frozen, err := tx.GetFrozenPackages(ctx, active.ID)
		if err != nil {
			return fmt.Errorf("verify freeze: %w", err)
		}
		if len(frozen) == 0 && !current.Empty() {
			return fmt.Errorf("%w: %s", ErrPersistenceFailure, active.ID)
		}

		newID, err := idgen.Version()
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		newVersion := &model.ConfigVersion{
			ID:         newID,
			Lineage:    target.Lineage,
			Identifier: identifier,
			Sequence:   sequence,
			Active:     true,
			// Template fields come from the target, not the outgoing active.
			Template:  target.Template,
			CreatedAt: now,
			CreatedBy: actor,
			UpdatedAt: now,
		}

		switch strategy {
		case model.StrategyCurrent:
			if current.Empty() {
				return fmt.Errorf("%w: version %s", ErrNoPackagesAvailable, active.ID)
			}
			// Continuity copy of what the new version starts with.
			newVersion.FrozenPackages = current.Entries
			if err := tx.CreateVersion(ctx, newVersion); err != nil {
				return fmt.Errorf("create version: %w", err)
			}
			if current.Origin == snapshot.OriginLive {
				if _, err := tx.ReassignPackages(ctx, active.ID, newID); err != nil {
					return fmt.Errorf("reassign packages: %w", err)
				}
			} else {
				// Snapshot-only active version: recreate fresh rows.
				if err := createPackages(ctx, tx, newID, current.Entries, now); err != nil {
					return err
				}
			}

		case model.StrategyHistorical:
			if len(target.FrozenPackages) == 0 {
				return fmt.Errorf("%w: %s", ErrNoHistoricalSnapshot, target.Identifier)
			}
			newVersion.FrozenPackages = target.FrozenPackages
			if err := tx.CreateVersion(ctx, newVersion); err != nil {
				return fmt.Errorf("create version: %w", err)
			}
			// The outgoing version's live rows are preserved in its frozen
			// copy; drop them and rebuild from the target's snapshot.
			if _, err := tx.DeleteVersionPackages(ctx, active.ID); err != nil {
				return fmt.Errorf("delete packages: %w", err)
			}
			if err := createPackages(ctx, tx, newID, target.FrozenPackages, now); err != nil {
				return err
			}
		}

		result = &ExecuteResult{
			NewVersion:      newVersion,
			PreviousVersion: active,
			Strategy:        strategy,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CreateLineage mints the first active version of a new lineage.
func (o *Orchestrator) CreateLineage(ctx context.Context, lineage string, template []byte, actor string) (*model.ConfigVersion, error) {
	var created *model.ConfigVersion
	err := o.store.RunInTransaction(ctx, func(tx store.Store) error {
		_, err := tx.GetActiveVersion(ctx, lineage)
		if err == nil {
			return fmt.Errorf("%w: %s", ErrLineageActive, lineage)
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("fetch active version: %w", err)
		}

		identifiers, err := tx.ListIdentifiers(ctx, lineage)
		if err != nil {
			return fmt.Errorf("list identifiers: %w", err)
		}
		identifier, sequence := numbering.Next(lineage, identifiers)

		id, err := idgen.Version()
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		created = &model.ConfigVersion{
			ID:         id,
			Lineage:    lineage,
			Identifier: identifier,
			Sequence:   sequence,
			Active:     true,
			Template:   template,
			CreatedAt:  now,
			CreatedBy:  actor,
			UpdatedAt:  now,
		}
		return tx.CreateVersion(ctx, created)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// createPackages recreates package rows under a version from snapshot
// entries, minting fresh identities and timestamps.
func createPackages(ctx context.Context, tx store.Store, versionID string, entries []model.SnapshotEntry, now time.Time) error {
	for _, e := range entries {
		id, err := idgen.Package()
		if err != nil {
			return err
		}
		rec := &model.PackageRecord{
			ID:          id,
			VersionID:   versionID,
			Name:        e.Name,
			Description: e.Description,
			Price:       e.Price,
			Services:    e.Services,
			Fields:      e.Fields,
			Active:      true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.CreatePackage(ctx, rec); err != nil {
			return fmt.Errorf("create package %q: %w", e.Name, err)
		}
	}
	return nil
}
