// Package server exposes the exercise, session and transfer operations over a
// JSON REST API.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/language"

	"github.com/claude/repbook/internal/editor"
	"github.com/claude/repbook/internal/repository"
	"github.com/claude/repbook/internal/transfer"
)

// maxImportBytes bounds the size of an uploaded import document.
const maxImportBytes = 10 << 20

// Options configures a Server.
type Options struct {
	// APIKey enables X-API-Key checks on every /api/v1 route when non-empty.
	APIKey string
	// Locale drives collation of the name and muscle group sorts.
	Locale language.Tag
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	repo     *repository.Repository
	editor   *editor.Editor
	transfer *transfer.Service
	opts     Options
	log      *slog.Logger
	router   chi.Router
}

// New creates a new Server with all routes configured.
func New(repo *repository.Repository, ed *editor.Editor, xfer *transfer.Service, opts Options, log *slog.Logger) *Server {
	s := &Server{
		repo:     repo,
		editor:   ed,
		transfer: xfer,
		opts:     opts,
		log:      log,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	s.router.Route("/api/v1", func(r chi.Router) {
		if s.opts.APIKey != "" {
			r.Use(APIKeyAuth(s.opts.APIKey))
		}

		r.Route("/exercises", func(r chi.Router) {
			r.Get("/", s.handleListExercises)
			r.Post("/", s.handleCreateExercise)
			r.Get("/{id}", s.handleGetExercise)
			r.Put("/{id}", s.handleUpdateExercise)
			r.Delete("/{id}", s.handleDeleteExercise)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", s.handleListSessions)
			r.Post("/", s.handleCreateSession)
			r.Get("/{id}", s.handleGetSession)
			r.Patch("/{id}", s.handleRenameSession)
			r.Delete("/{id}", s.handleDeleteSession)
			r.Post("/{id}/exercises", s.handleAddSessionExercise)
			r.Delete("/{id}/exercises/{exerciseID}", s.handleRemoveSessionExercise)
			r.Put("/{id}/exercises/{exerciseID}/sets/{index}", s.handleUpdateSet)
		})

		r.Get("/export/{key}", s.handleExport)
		r.Post("/import/{key}", s.handleImport)

		r.Get("/theme", s.handleGetTheme)
		r.Put("/theme", s.handleSetTheme)
		r.Post("/theme/toggle", s.handleToggleTheme)

		r.Get("/sort/next", s.handleNextSort)
	})
}
