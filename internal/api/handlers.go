// internal/api/handlers.go
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	commonerrors "requirement-extractor/internal/common/errors"
	"requirement-extractor/internal/extraction"
	"requirement-extractor/internal/extraction/remote"
	"requirement-extractor/internal/models"
	"requirement-extractor/internal/store/apps"
)

const maxRequestBytes = 10 << 20

type extractRequest struct {
	Description *string `json:"description"`
}

// POST /api/extract-requirements
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input", "Request body must be valid JSON")
		return
	}
	if req.Description == nil {
		writeError(w, http.StatusBadRequest, "Invalid input", "Description is required and must be a non-empty string")
		return
	}

	result, err := s.extractor.Extract(r.Context(), *req.Description)
	if err != nil {
		stdErr := commonerrors.FromExtractionError(err)
		status := commonerrors.HTTPStatus(stdErr.Code)
		if errors.Is(err, extraction.ErrInvalidInput) {
			writeError(w, status, "Invalid input", strings.TrimPrefix(err.Error(), "INVALID_INPUT: "))
			return
		}
		s.logger.Error("extraction failed", map[string]interface{}{"error": err.Error()})
		writeError(w, status, "Processing Error", "Failed to extract requirements. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// POST /api/save-app
func (s *Server) handleSaveApp(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	var req models.SaveAppRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing required fields", "appName, entities, roles, and features are required")
		return
	}

	app, err := s.apps.Save(r.Context(), req)
	if err != nil {
		s.writeStoreError(w, err, "Failed to save app. Please try again.")
		return
	}

	if s.search != nil {
		if err := s.search.Index(r.Context(), app); err != nil {
			s.logger.Warn("search index update failed", map[string]interface{}{"appId": app.ID, "error": err.Error()})
		}
	}

	s.logger.Info("app saved", map[string]interface{}{"appId": app.ID, "appName": app.AppName})
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "App saved successfully",
		"app":     app,
		"id":      app.ID,
	})
}

// GET /api/apps?page=&limit=&search=
func (s *Server) handleListApps(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	q := r.URL.Query()
	params := apps.ListParams{
		Page:   queryInt(q.Get("page"), 1),
		Limit:  queryInt(q.Get("limit"), apps.DefaultPageSize),
		Search: strings.TrimSpace(q.Get("search")),
	}

	if params.Search != "" && s.search != nil {
		if list, ok := s.searchApps(r, params); ok {
			writeJSON(w, http.StatusOK, list)
			return
		}
	}

	list, err := s.apps.List(r.Context(), params)
	if err != nil {
		s.writeStoreError(w, err, "Failed to fetch apps. Please try again.")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// searchApps resolves a full-text query through the index. It reports false
// when the index fails so the caller can fall back to the database.
func (s *Server) searchApps(r *http.Request, params apps.ListParams) (*models.AppList, bool) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 || params.Limit > apps.MaxPageSize {
		params.Limit = apps.DefaultPageSize
	}

	hits, err := s.search.Search(r.Context(), params.Search, (params.Page-1)*params.Limit, params.Limit)
	if err != nil {
		s.logger.Warn("search query failed, falling back to database", map[string]interface{}{"error": err.Error()})
		return nil, false
	}

	found, err := s.apps.GetMany(r.Context(), hits.IDs)
	if err != nil {
		s.logger.Warn("loading search hits failed, falling back to database", map[string]interface{}{"error": err.Error()})
		return nil, false
	}

	return &models.AppList{
		Apps:       found,
		Pagination: apps.NewPagination(params.Page, params.Limit, hits.Total),
	}, true
}

// GET /api/apps/{id}
func (s *Server) handleGetApp(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	id, ok := appID(w, r)
	if !ok {
		return
	}

	app, err := s.apps.Get(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, err, "Failed to fetch app. Please try again.")
		return
	}
	writeJSON(w, http.StatusOK, app)
}

// DELETE /api/apps/{id}
func (s *Server) handleDeleteApp(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	id, ok := appID(w, r)
	if !ok {
		return
	}

	deleted, err := s.apps.Delete(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, err, "Failed to delete app. Please try again.")
		return
	}

	if s.search != nil {
		if err := s.search.Delete(r.Context(), id); err != nil {
			s.logger.Warn("search index delete failed", map[string]interface{}{"appId": id, "error": err.Error()})
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "App deleted successfully",
		"deletedApp": map[string]string{
			"id":      deleted.ID,
			"appName": deleted.AppName,
		},
	})
}

// GET /api/test
func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message":   "API Test Successful",
		"timestamp": s.now().UTC().Format(time.RFC3339),
		"server":    serverName,
		"version":   s.opts.Version,
	})
}

// GET /api/status
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	provider := ""
	recommended := models.ModelRuleBased
	if s.extractor.RemoteEnabled() {
		provider = s.extractor.Provider()
		recommended = provider
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		remote.ProviderOpenAI:    provider == remote.ProviderOpenAI,
		remote.ProviderAnthropic: provider == remote.ProviderAnthropic,
		"fallback":               true,
		"recommended":            recommended,
		"search":                 s.search != nil,
		"storage":                s.apps != nil,
	})
}

// GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "OK"
	deps := make(map[string]string, len(s.checks))
	for _, name := range s.checkNames() {
		if err := s.checks[name](r.Context()); err != nil {
			deps[name] = "Disconnected"
			status = "DEGRADED"
			continue
		}
		deps[name] = "Connected"
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       status,
		"message":      serverName + " is running",
		"timestamp":    s.now().UTC().Format(time.RFC3339),
		"environment":  s.opts.Environment,
		"dependencies": deps,
	})
}

// GET /
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Welcome to the " + serverName + " API",
		"version":   s.opts.Version,
		"endpoints": endpoints,
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]interface{}{
		"error":              "Endpoint not found",
		"message":            "Cannot " + r.Method + " " + r.URL.Path,
		"availableEndpoints": endpoints,
	})
}

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.apps == nil {
		writeError(w, http.StatusServiceUnavailable, "Storage Unavailable", "App storage is not configured")
		return false
	}
	return true
}

func (s *Server) writeStoreError(w http.ResponseWriter, err error, fallback string) {
	stdErr := commonerrors.FromAppStoreError(err)
	status := commonerrors.HTTPStatus(stdErr.Code)

	switch stdErr.Code {
	case commonerrors.ErrCodeAppValidationFailed:
		writeError(w, status, "Missing required fields", strings.TrimPrefix(err.Error(), "APP_VALIDATION_FAILED: "))
	case commonerrors.ErrCodeDuplicateApp:
		writeError(w, status, "Duplicate App", "An app with this name already exists")
	case commonerrors.ErrCodeAppNotFound:
		writeError(w, status, "App Not Found", "No app found with the provided ID")
	default:
		s.logger.Error("app store failed", map[string]interface{}{"error": err.Error()})
		writeError(w, status, "Database Error", fallback)
	}
}

func appID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID", "Please provide a valid app ID")
		return "", false
	}
	return id, true
}

func queryInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, title, message string) {
	writeJSON(w, status, map[string]string{"error": title, "message": message})
}
