// Package client provides a transport-agnostic interface for the quotevault
// service and an HTTP/JSON implementation that talks to its REST API.
package client

import (
	"context"
	"encoding/json"

	"github.com/groblegark/quotevault/internal/model"
	"github.com/groblegark/quotevault/internal/restore"
)

// VaultClient is the interface that all qv CLI commands use to communicate
// with the quotevault server. It is implemented by HTTPClient (default) and
// can be backed by any transport.
type VaultClient interface {
	// Lineages
	ListLineages(ctx context.Context) ([]string, error)
	CreateLineage(ctx context.Context, req *CreateLineageRequest) (*model.ConfigVersion, error)

	// Versions
	ListVersions(ctx context.Context, lineage string) ([]*model.ConfigVersion, error)
	GetVersion(ctx context.Context, id string) (*model.ConfigVersion, error)
	GetActiveVersion(ctx context.Context, lineage string) (*model.ConfigVersion, error)

	// Packages
	ListPackages(ctx context.Context, versionID string, activeOnly bool) ([]*model.PackageRecord, error)
	CreatePackage(ctx context.Context, versionID string, req *CreatePackageRequest) (*model.PackageRecord, error)
	GetPackage(ctx context.Context, id string) (*model.PackageRecord, error)
	UpdatePackage(ctx context.Context, id string, req *UpdatePackageRequest) (*model.PackageRecord, error)
	DeletePackage(ctx context.Context, id string) error

	// Restore
	PreviewRestore(ctx context.Context, versionID string) (*restore.PreviewResult, error)
	ExecuteRestore(ctx context.Context, versionID string, strategy model.RestoreStrategy, actor string) (*restore.ExecuteResult, error)

	// Export
	Export(ctx context.Context) ([]byte, error)

	// Health
	Health(ctx context.Context) (string, error)

	// Lifecycle
	Close() error
}

// CreateLineageRequest holds parameters for bootstrapping a lineage.
type CreateLineageRequest struct {
	Lineage  string          `json:"lineage"`
	Template json.RawMessage `json:"template,omitempty"`
	Actor    string          `json:"actor,omitempty"`
}

// CreatePackageRequest holds parameters for creating a package.
type CreatePackageRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       float64         `json:"price"`
	Services    []string        `json:"services,omitempty"`
	Fields      json.RawMessage `json:"fields,omitempty"`
}

// UpdatePackageRequest holds parameters for a partial package update.
// Nil fields are left unchanged.
type UpdatePackageRequest struct {
	Name        *string         `json:"name,omitempty"`
	Description *string         `json:"description,omitempty"`
	Price       *float64        `json:"price,omitempty"`
	Services    []string        `json:"services,omitempty"`
	Fields      json.RawMessage `json:"fields,omitempty"`
	Active      *bool           `json:"active,omitempty"`
}
