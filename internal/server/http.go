package server

import (
	"encoding/json"
	"net/http"

	"github.com/groblegark/quotevault/internal/archive"
)

// NewHTTPHandler returns an http.Handler with all routes registered.
// When authToken is non-empty, requests (except GET /v1/health) must include
// a valid Authorization: Bearer <token> header.
func (s *VaultServer) NewHTTPHandler(authToken string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/lineages", s.handleListLineages)
	mux.HandleFunc("POST /v1/lineages", s.handleCreateLineage)
	mux.HandleFunc("GET /v1/lineages/{lineage}/versions", s.handleListVersions)
	mux.HandleFunc("GET /v1/lineages/{lineage}/active", s.handleGetActiveVersion)
	mux.HandleFunc("GET /v1/versions/{id}", s.handleGetVersion)
	mux.HandleFunc("GET /v1/versions/{id}/packages", s.handleListPackages)
	mux.HandleFunc("POST /v1/versions/{id}/packages", s.handleCreatePackage)
	mux.HandleFunc("POST /v1/versions/{id}/preview", s.handlePreviewRestore)
	mux.HandleFunc("POST /v1/versions/{id}/restore", s.handleExecuteRestore)
	mux.HandleFunc("GET /v1/packages/{id}", s.handleGetPackage)
	mux.HandleFunc("PATCH /v1/packages/{id}", s.handleUpdatePackage)
	mux.HandleFunc("DELETE /v1/packages/{id}", s.handleDeletePackage)
	mux.HandleFunc("GET /v1/export", s.handleExport)
	mux.HandleFunc("GET /v1/health", s.handleHealth)
	return AuthMiddleware(authToken, RecoveryMiddleware(mux))
}

// handleHealth handles GET /v1/health.
func (s *VaultServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleExport handles GET /v1/export: the full version history as JSONL.
func (s *VaultServer) handleExport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/x-ndjson")
	if err := archive.ExportJSONL(r.Context(), s.store, w); err != nil {
		// Headers may already be written; the truncated stream is the
		// only signal left.
		return
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
