// Package server exposes the dashboard API over HTTP: location and keyword
// management, research job triggering, publish operations, and analytics.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/localpages/internal/store"
	"github.com/sells-group/localpages/internal/workflow"
	"github.com/sells-group/localpages/pkg/wordpress"
)

// Server wires the workflows and store behind the HTTP API.
type Server struct {
	store    store.Store
	research *workflow.Research
	publish  *workflow.Publish
	bulk     *workflow.BulkPublish
	wp       wordpress.Client

	allowedOrigins []string
}

// Config holds the server's collaborators.
type Config struct {
	Store          store.Store
	Research       *workflow.Research
	Publish        *workflow.Publish
	Bulk           *workflow.BulkPublish
	WordPress      wordpress.Client
	AllowedOrigins []string
}

// New creates a Server.
func New(cfg Config) *Server {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return &Server{
		store:          cfg.Store,
		research:       cfg.Research,
		publish:        cfg.Publish,
		bulk:           cfg.Bulk,
		wp:             cfg.WordPress,
		allowedOrigins: origins,
	}
}

// Router builds the chi router with all API routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/doctor", s.handleDoctor)

	r.Route("/locations", func(r chi.Router) {
		r.Get("/", s.handleListLocations)
		r.Post("/", s.handleCreateLocation)
		r.Get("/{id}", s.handleGetLocation)
		r.Put("/{id}", s.handleUpdateLocation)
	})

	r.Route("/research", func(r chi.Router) {
		r.Get("/", s.handleListResearchJobs)
		r.Post("/", s.handleCreateResearchJob)
		r.Get("/{id}", s.handleGetResearchJob)
	})

	r.Route("/publish", func(r chi.Router) {
		r.Post("/", s.handlePublish)
		r.Put("/", s.handleBulkPublish)
		r.Put("/{postID}", s.handleUpdatePublish)
	})

	r.Get("/pages", s.handleListPages)

	r.Route("/keywords", func(r chi.Router) {
		r.Get("/", s.handleListKeywords)
		r.Post("/", s.handleCreateKeyword)
		r.Put("/{id}", s.handleUpdateKeyword)
	})

	r.Get("/analytics", s.handleAnalytics)

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("encode response", zap.Error(err))
	}
}

// writeError maps workflow error types onto HTTP statuses. Validation and
// state violations are client errors; unknown records are 404; everything
// else is a 500 with the detail kept out of the response body.
func writeError(w http.ResponseWriter, err error) {
	var (
		validationErr   *workflow.ValidationError
		notFoundErr     *workflow.NotFoundError
		invalidStateErr *workflow.InvalidStateError
	)
	switch {
	case eris.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": validationErr.Error()})
	case eris.As(err, &notFoundErr):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": notFoundErr.Error()})
	case eris.As(err, &invalidStateErr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": invalidStateErr.Error()})
	case eris.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	default:
		zap.L().Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &workflow.ValidationError{Field: "body", Reason: "invalid JSON"}
	}
	return nil
}
