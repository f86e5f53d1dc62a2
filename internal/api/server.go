// Package api serves the extraction and saved-app endpoints over HTTP.
package api

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"requirement-extractor/internal/common/logger"
	"requirement-extractor/internal/models"
	"requirement-extractor/internal/store/apps"
	"requirement-extractor/internal/store/search"
)

const (
	serverName     = "Requirement Extractor"
	defaultVersion = "1.0.0"
)

type Extractor interface {
	Extract(ctx context.Context, description string) (*models.ExtractionResult, error)
	RemoteEnabled() bool
	Provider() string
}

type AppStore interface {
	Save(ctx context.Context, req models.SaveAppRequest) (*models.GeneratedApp, error)
	Get(ctx context.Context, id string) (*models.GeneratedApp, error)
	GetMany(ctx context.Context, ids []string) ([]models.GeneratedApp, error)
	List(ctx context.Context, params apps.ListParams) (*models.AppList, error)
	Delete(ctx context.Context, id string) (*models.GeneratedApp, error)
}

type SearchIndex interface {
	Index(ctx context.Context, app *models.GeneratedApp) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string, from, size int) (*search.Hits, error)
}

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

type Options struct {
	Version     string
	Environment string
	CORSOrigins []string
}

type Option func(*Server)

// WithAppStore enables the saved-app endpoints.
func WithAppStore(store AppStore) Option {
	return func(s *Server) { s.apps = store }
}

// WithSearch serves GET /api/apps?search= from the full-text index and keeps
// it in sync on save and delete.
func WithSearch(index SearchIndex) Option {
	return func(s *Server) { s.search = index }
}

func WithHealthCheck(name string, check HealthCheck) Option {
	return func(s *Server) { s.checks[name] = check }
}

type Server struct {
	opts      Options
	extractor Extractor
	apps      AppStore
	search    SearchIndex
	checks    map[string]HealthCheck
	logger    logger.Logger
	now       func() time.Time
}

func NewServer(opts Options, extractor Extractor, log logger.Logger, options ...Option) *Server {
	if opts.Version == "" {
		opts.Version = defaultVersion
	}
	s := &Server{
		opts:      opts,
		extractor: extractor,
		checks:    map[string]HealthCheck{},
		logger:    log.WithFields(map[string]interface{}{"component": "api"}),
		now:       time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Handler returns the routed mux wrapped in recovery, CORS and request
// logging middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/extract-requirements", s.handleExtract)
	mux.HandleFunc("POST /api/save-app", s.handleSaveApp)
	mux.HandleFunc("GET /api/apps", s.handleListApps)
	mux.HandleFunc("GET /api/apps/{id}", s.handleGetApp)
	mux.HandleFunc("DELETE /api/apps/{id}", s.handleDeleteApp)
	mux.HandleFunc("GET /api/test", s.handleTest)
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("/", s.handleNotFound)

	var handler http.Handler = mux
	handler = logMiddleware(s.logger, handler)
	handler = corsMiddleware(s.opts.CORSOrigins, handler)
	handler = recoveryMiddleware(s.logger, handler)
	return handler
}

func (s *Server) checkNames() []string {
	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var endpoints = []string{
	"GET /",
	"GET /health",
	"GET /metrics",
	"POST /api/extract-requirements",
	"POST /api/save-app",
	"GET /api/apps",
	"GET /api/apps/{id}",
	"DELETE /api/apps/{id}",
	"GET /api/test",
	"GET /api/status",
}
