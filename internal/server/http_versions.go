package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/groblegark/quotevault/internal/events"
	"github.com/groblegark/quotevault/internal/model"
	"github.com/groblegark/quotevault/internal/restore"
)

// handleListLineages handles GET /v1/lineages.
func (s *VaultServer) handleListLineages(w http.ResponseWriter, r *http.Request) {
	lineages, err := s.store.ListLineages(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list lineages")
		return
	}

	// Ensure lineages is never null in JSON output.
	if lineages == nil {
		lineages = []string{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"lineages": lineages})
}

type createLineageInput struct {
	Lineage  string          `json:"lineage"`
	Template json.RawMessage `json:"template,omitempty"`
	Actor    string          `json:"actor,omitempty"`
}

// handleCreateLineage handles POST /v1/lineages: bootstrap the first active
// version of a new lineage.
func (s *VaultServer) handleCreateLineage(w http.ResponseWriter, r *http.Request) {
	var in createLineageInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if in.Lineage == "" {
		writeError(w, http.StatusBadRequest, "lineage is required")
		return
	}

	created, err := s.restorer.CreateLineage(r.Context(), in.Lineage, in.Template, in.Actor)
	if err != nil {
		if errors.Is(err, restore.ErrLineageActive) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.publish(r.Context(), events.TopicLineageCreated, events.LineageCreated{Version: created, Actor: in.Actor})

	writeJSON(w, http.StatusCreated, created)
}

// handleListVersions handles GET /v1/lineages/{lineage}/versions.
func (s *VaultServer) handleListVersions(w http.ResponseWriter, r *http.Request) {
	lineage := r.PathValue("lineage")
	if lineage == "" {
		writeError(w, http.StatusBadRequest, "lineage is required")
		return
	}

	versions, err := s.store.ListVersions(r.Context(), lineage)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list versions")
		return
	}

	if versions == nil {
		versions = []*model.ConfigVersion{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"lineage":  lineage,
		"versions": versions,
	})
}

// handleGetActiveVersion handles GET /v1/lineages/{lineage}/active.
func (s *VaultServer) handleGetActiveVersion(w http.ResponseWriter, r *http.Request) {
	lineage := r.PathValue("lineage")
	if lineage == "" {
		writeError(w, http.StatusBadRequest, "lineage is required")
		return
	}

	v, err := s.store.GetActiveVersion(r.Context(), lineage)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "no active version")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get active version")
		return
	}

	writeJSON(w, http.StatusOK, v)
}

// handleGetVersion handles GET /v1/versions/{id}.
func (s *VaultServer) handleGetVersion(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	v, err := s.store.GetVersion(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "version not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get version")
		return
	}

	writeJSON(w, http.StatusOK, v)
}

// handlePreviewRestore handles POST /v1/versions/{id}/preview.
// Read-only: reports what restoring the version would change.
func (s *VaultServer) handlePreviewRestore(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	result, err := s.restorer.Preview(r.Context(), id)
	if err != nil {
		writeRestoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type executeRestoreInput struct {
	Strategy model.RestoreStrategy `json:"strategy"`
	Actor    string                `json:"actor,omitempty"`
}

// handleExecuteRestore handles POST /v1/versions/{id}/restore.
func (s *VaultServer) handleExecuteRestore(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	var in executeRestoreInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := s.restorer.Execute(r.Context(), id, in.Strategy, in.Actor)
	if err != nil {
		writeRestoreError(w, err)
		return
	}

	s.publish(r.Context(), events.TopicVersionRestored, events.VersionRestored{
		PreviousVersionID: result.PreviousVersion.ID,
		NewVersionID:      result.NewVersion.ID,
		TargetVersionID:   id,
		Strategy:          result.Strategy,
		Actor:             in.Actor,
	})

	writeJSON(w, http.StatusOK, result)
}

// writeRestoreError maps orchestrator errors to HTTP status codes.
func writeRestoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, restore.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, restore.ErrInvalidStrategy):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, restore.ErrNoActiveVersion),
		errors.Is(err, restore.ErrNoHistoricalSnapshot),
		errors.Is(err, restore.ErrNoPackagesAvailable):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
