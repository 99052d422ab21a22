package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/groblegark/quotevault/internal/events"
	"github.com/groblegark/quotevault/internal/idgen"
	"github.com/groblegark/quotevault/internal/model"
)

// handleListPackages handles GET /v1/versions/{id}/packages.
// With ?active=true only active rows are returned.
func (s *VaultServer) handleListPackages(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	if _, err := s.store.GetVersion(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "version not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get version")
		return
	}

	activeOnly := r.URL.Query().Get("active") == "true"
	pkgs, err := s.store.ListPackages(r.Context(), id, activeOnly)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list packages")
		return
	}

	// Ensure packages is never null in JSON output.
	if pkgs == nil {
		pkgs = []*model.PackageRecord{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"packages": pkgs})
}

type createPackageInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       float64         `json:"price"`
	Services    []string        `json:"services,omitempty"`
	Fields      json.RawMessage `json:"fields,omitempty"`
}

// handleCreatePackage handles POST /v1/versions/{id}/packages.
func (s *VaultServer) handleCreatePackage(w http.ResponseWriter, r *http.Request) {
	versionID := r.PathValue("id")
	if versionID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	var in createPackageInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if in.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	version, err := s.store.GetVersion(r.Context(), versionID)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "version not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get version")
		return
	}
	if version.Frozen() {
		writeError(w, http.StatusConflict, "version is frozen")
		return
	}

	id, err := idgen.Package()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate id")
		return
	}
	now := time.Now().UTC()
	pkg := &model.PackageRecord{
		ID:          id,
		VersionID:   versionID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Services:    in.Services,
		Fields:      in.Fields,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreatePackage(r.Context(), pkg); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create package")
		return
	}

	s.publish(r.Context(), events.TopicPackageCreated, events.PackageCreated{Package: pkg})

	writeJSON(w, http.StatusCreated, pkg)
}

// handleGetPackage handles GET /v1/packages/{id}.
func (s *VaultServer) handleGetPackage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	pkg, err := s.store.GetPackage(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "package not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get package")
		return
	}

	writeJSON(w, http.StatusOK, pkg)
}

type updatePackageInput struct {
	Name        *string         `json:"name,omitempty"`
	Description *string         `json:"description,omitempty"`
	Price       *float64        `json:"price,omitempty"`
	Services    []string        `json:"services,omitempty"`
	Fields      json.RawMessage `json:"fields,omitempty"`
	Active      *bool           `json:"active,omitempty"`
}

// handleUpdatePackage handles PATCH /v1/packages/{id}. Only the fields
// present in the body change.
func (s *VaultServer) handleUpdatePackage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	var in updatePackageInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	pkg, err := s.store.GetPackage(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "package not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get package")
		return
	}

	version, err := s.store.GetVersion(r.Context(), pkg.VersionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get owning version")
		return
	}
	if version.Frozen() {
		writeError(w, http.StatusConflict, "version is frozen")
		return
	}

	if in.Name != nil {
		if *in.Name == "" {
			writeError(w, http.StatusBadRequest, "name cannot be empty")
			return
		}
		pkg.Name = *in.Name
	}
	if in.Description != nil {
		pkg.Description = *in.Description
	}
	if in.Price != nil {
		pkg.Price = *in.Price
	}
	if in.Services != nil {
		pkg.Services = in.Services
	}
	if in.Fields != nil {
		pkg.Fields = in.Fields
	}
	if in.Active != nil {
		pkg.Active = *in.Active
	}
	pkg.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdatePackage(r.Context(), pkg); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update package")
		return
	}

	s.publish(r.Context(), events.TopicPackageUpdated, events.PackageUpdated{Package: pkg})

	writeJSON(w, http.StatusOK, pkg)
}

// handleDeletePackage handles DELETE /v1/packages/{id}.
func (s *VaultServer) handleDeletePackage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	pkg, err := s.store.GetPackage(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "package not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get package")
		return
	}

	version, err := s.store.GetVersion(r.Context(), pkg.VersionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get owning version")
		return
	}
	if version.Frozen() {
		writeError(w, http.StatusConflict, "version is frozen")
		return
	}

	if err := s.store.DeletePackage(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "package not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete package")
		return
	}

	s.publish(r.Context(), events.TopicPackageDeleted, events.PackageDeleted{PackageID: id})

	w.WriteHeader(http.StatusNoContent)
}
