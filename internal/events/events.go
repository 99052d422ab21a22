package events

import (
	"context"

	"github.com/groblegark/quotevault/internal/model"
)

// Event topic constants
const (
	TopicLineageCreated  = "quotevault.lineage.created"
	TopicVersionRestored = "quotevault.version.restored"
	TopicPackageCreated  = "quotevault.package.created"
	TopicPackageUpdated  = "quotevault.package.updated"
	TopicPackageDeleted  = "quotevault.package.deleted"
)

// Event types

type LineageCreated struct {
	Version *model.ConfigVersion `json:"version"`
	Actor   string               `json:"actor,omitempty"`
}

// VersionRestored is the audit payload published after a successful
// restore. Publishing is fire-and-forget and happens after the restore
// transaction commits; it is never part of its atomicity guarantee.
type VersionRestored struct {
	PreviousVersionID string                `json:"previous_version_id"`
	NewVersionID      string                `json:"new_version_id"`
	TargetVersionID   string                `json:"target_version_id"`
	Strategy          model.RestoreStrategy `json:"strategy"`
	Actor             string                `json:"actor,omitempty"`
}

type PackageCreated struct {
	Package *model.PackageRecord `json:"package"`
}

type PackageUpdated struct {
	Package *model.PackageRecord `json:"package"`
}

type PackageDeleted struct {
	PackageID string `json:"package_id"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
