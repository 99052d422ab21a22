package store

import (
	"context"
	"errors"

	"github.com/groblegark/quotevault/internal/model"
)

// ErrAlreadyFrozen is returned by DeactivateVersion when a version's frozen
// snapshot has been sealed and the caller attempts to replace it with
// different content. Re-deactivating with the same content is a no-op.
var ErrAlreadyFrozen = errors.New("store: frozen snapshot already sealed")

// Store defines the persistence interface for configuration versions and
// their package records. Missing rows surface as sql.ErrNoRows.
type Store interface {
	// Versions
	CreateVersion(ctx context.Context, v *model.ConfigVersion) error
	GetVersion(ctx context.Context, id string) (*model.ConfigVersion, error)
	GetActiveVersion(ctx context.Context, lineage string) (*model.ConfigVersion, error)
	// GetActiveVersionForUpdate locks the active version row for the
	// remainder of the transaction; restores use it to serialize per
	// lineage. Only meaningful inside RunInTransaction.
	GetActiveVersionForUpdate(ctx context.Context, lineage string) (*model.ConfigVersion, error)
	ListVersions(ctx context.Context, lineage string) ([]*model.ConfigVersion, error)
	ListLineages(ctx context.Context) ([]string, error)
	ListIdentifiers(ctx context.Context, lineage string) ([]string, error)
	// DeactivateVersion clears the active flag and seals the frozen
	// snapshot with the given payload.
	DeactivateVersion(ctx context.Context, id string, frozen []model.SnapshotEntry) error
	GetFrozenPackages(ctx context.Context, id string) ([]model.SnapshotEntry, error)

	// Packages
	CreatePackage(ctx context.Context, p *model.PackageRecord) error
	GetPackage(ctx context.Context, id string) (*model.PackageRecord, error)
	UpdatePackage(ctx context.Context, p *model.PackageRecord) error
	DeletePackage(ctx context.Context, id string) error
	ListPackages(ctx context.Context, versionID string, activeOnly bool) ([]*model.PackageRecord, error)
	// ReassignPackages moves every package owned by one version to another
	// without duplication; returns the number of rows moved.
	ReassignPackages(ctx context.Context, fromVersionID, toVersionID string) (int, error)
	// DeleteVersionPackages removes every package row owned by a version;
	// returns the number of rows deleted.
	DeleteVersionPackages(ctx context.Context, versionID string) (int, error)

	// Transaction support
	RunInTransaction(ctx context.Context, fn func(tx Store) error) error

	// Lifecycle
	Close() error
}
