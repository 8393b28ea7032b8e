package api

import (
	"log/slog"
	"net/http"

	"github.com/gedtools/gedserve/internal/config"
	"github.com/gedtools/gedserve/internal/registry"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for gedserve.
type Server struct {
	router chi.Router
	store  *registry.Store
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(store *registry.Store, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		store: store,
		log:   log,
		cfg:   cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/documents", s.handleUpload)
		r.Get("/api/documents", s.handleListDocuments)

		r.Route("/api/documents/{docID}", func(r chi.Router) {
			r.Get("/", s.handleGetDocument)
			r.Delete("/", s.handleDeleteDocument)
			r.Get("/source", s.handleDocumentSource)
			r.Get("/stats", s.handleDocumentStats)
			r.Get("/records/{xref}", s.handleGetRecord)

			r.Route("/individuals/{xref}", func(r chi.Router) {
				r.Get("/parents", s.handleParents)
				r.Get("/children", s.handleChildren)
				r.Get("/spouses", s.handleSpouses)
				r.Get("/siblings", s.handleSiblings)
				r.Get("/stepsiblings", s.handleStepsiblings)
				r.Get("/all-siblings", s.handleAllSiblings)
				r.Get("/relatives", s.handleRelatives)
				r.Get("/degree/{degree}", s.handleByDegree)
			})
		})
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
