// Package server exposes the grading engine over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/peekknuf/skatergrade/internal/export"
	"github.com/peekknuf/skatergrade/internal/report"
	"github.com/sirupsen/logrus"
)

const defaultNameLimit = 20

// Options configures the router.
type Options struct {
	RequestTimeout time.Duration
	AllowedOrigins []string
	Logger         logrus.FieldLogger
}

// Server answers player queries for one loaded season. All state is built
// at construction and only read afterwards.
type Server struct {
	ev     *report.Evaluator
	bundle *export.Bundle
	opts   Options
	log    logrus.FieldLogger
}

// New grades the whole season up front so slug lookups never recompute.
func New(ev *report.Evaluator, opts Options) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 15 * time.Second
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Server{
		ev:     ev,
		bundle: export.Build(ev, nil),
		opts:   opts,
		log:    log.WithField("component", "server"),
	}
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(&requestLogger{log: s.log}))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Routes
	r.Get("/health", s.HealthCheck)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/players", s.SearchPlayer)
		r.Get("/players/{slug}", s.GetPlayer)
		r.Get("/index", s.GetIndex)
		r.Get("/names", s.GetNames)
	})
	r.Get("/players/{slug}", s.PlayerPage)

	return r
}

// HealthCheck returns service health
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "skatergrade",
		"source":  s.ev.Dataset().Source(),
		"players": s.ev.Dataset().Len(),
	})
}

// SearchPlayer evaluates the first skater whose name contains q.
func (s *Server) SearchPlayer(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	rep, err := s.ev.Evaluate(q)
	if err != nil {
		var notFound *report.NotFoundError
		switch {
		case errors.Is(err, report.ErrEmptyQuery):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.As(err, &notFound):
			respondError(w, http.StatusNotFound, err.Error())
		default:
			s.log.WithError(err).WithField("query", q).Error("evaluation failed")
			respondError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	respondJSON(w, http.StatusOK, rep)
}

// GetPlayer returns the exported record for a slug.
func (s *Server) GetPlayer(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	p, ok := s.bundle.Player(slug)
	if !ok {
		respondError(w, http.StatusNotFound, "player not found")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// GetIndex returns the search index of every skater.
func (s *Server) GetIndex(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.bundle.Index)
}

// GetNames returns sorted player names containing q, for autocomplete.
// limit caps the result (default 20, 0 for all).
func (s *Server) GetNames(w http.ResponseWriter, r *http.Request) {
	limit := defaultNameLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	names := s.ev.Dataset().Suggest(r.URL.Query().Get("q"), limit)
	if names == nil {
		names = []string{}
	}
	respondJSON(w, http.StatusOK, names)
}

// PlayerPage renders the HTML report for a slug.
func (s *Server) PlayerPage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	p, ok := s.bundle.Player(slug)
	if !ok {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		if err := NotFoundView(slug).Render(r.Context(), w); err != nil {
			s.log.WithError(err).Warn("render failed")
		}
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := PlayerView(p).Render(r.Context(), w); err != nil {
		s.log.WithError(err).WithField("slug", slug).Warn("render failed")
	}
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
