package server

import (
	"context"
	"log/slog"

	"github.com/groblegark/quotevault/internal/events"
	"github.com/groblegark/quotevault/internal/restore"
	"github.com/groblegark/quotevault/internal/store"
)

// VaultServer owns the HTTP surface over the version store and the restore
// orchestrator.
type VaultServer struct {
	store     store.Store
	publisher events.Publisher
	restorer  *restore.Orchestrator
}

// NewVaultServer returns a VaultServer backed by the given store and publisher.
func NewVaultServer(s store.Store, p events.Publisher) *VaultServer {
	return &VaultServer{
		store:     s,
		publisher: p,
		restorer:  restore.New(s),
	}
}

// publish emits an audit event. Publishing is best-effort; failures are
// logged but never surface to the caller, since the owning write has
// already committed.
func (s *VaultServer) publish(ctx context.Context, topic string, event any) {
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		slog.Warn("failed to publish event", "topic", topic, "error", err)
	}
}
