// Package httpapi is the HTTP boundary adapter: it maps routes onto the
// session manager's operations and serializes the results. All story logic
// lives below it in the core.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rockysnow7/cyoa/internal/logging"
	"github.com/rockysnow7/cyoa/pkg/story"
)

// Sessions defines the slice of the session manager the adapter consumes.
type Sessions interface {
	Create(ctx context.Context) (string, error)
	Current(ctx context.Context, id string) (story.View, error)
	Choose(ctx context.Context, id, choiceID string) (story.View, error)
	Sweep(ctx context.Context, timeout time.Duration, now time.Time) (int, error)
}

// Server holds the adapter's dependencies.
type Server struct {
	sessions       Sessions
	sessionTimeout time.Duration
	logger         *slog.Logger
	metrics        *Metrics
	registry       *prometheus.Registry
	prefix         string
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithPrefix mounts the API routes under a path prefix.
func WithPrefix(prefix string) Option {
	return func(s *Server) {
		s.prefix = prefix
	}
}

// WithSessionTimeout sets the idle timeout applied by the maintenance
// endpoint's sweep.
func WithSessionTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.sessionTimeout = d
	}
}

// WithMetrics registers prometheus instruments on the given registry and
// exposes it at /metrics.
func WithMetrics(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
		s.metrics = NewMetrics(reg)
	}
}

// NewHandler builds the HTTP handler for the engine.
func NewHandler(sessions Sessions, opts ...Option) http.Handler {
	s := &Server{
		sessions:       sessions,
		sessionTimeout: 24 * time.Hour,
		logger:         logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	if s.metrics != nil {
		r.Use(s.instrument)
	}

	routes := func(r chi.Router) {
		r.Post("/session", s.createSession)
		r.Get("/session/{sessionID}/current", s.getCurrent)
		r.Post("/session/{sessionID}/choose/{choiceID}", s.chooseOption)
		r.Post("/clear_expired_sessions", s.clearExpiredSessions)
	}
	if s.prefix != "" && s.prefix != "/" {
		r.Route(s.prefix, routes)
	} else {
		r.Group(routes)
	}

	if s.registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	return r
}

type createSessionResponse struct {
	SessionID string `json:"session_id"`
}

type sweepResponse struct {
	Removed int `json:"removed"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	id, err := s.sessions.Create(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if s.metrics != nil {
		s.metrics.SessionsCreated.Inc()
	}
	s.writeJSON(w, http.StatusCreated, createSessionResponse{SessionID: id})
}

func (s *Server) getCurrent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	view, err := s.sessions.Current(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) chooseOption(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	choiceID := chi.URLParam(r, "choiceID")

	view, err := s.sessions.Choose(r.Context(), id, choiceID)
	if s.metrics != nil {
		s.metrics.Choices.WithLabelValues(chooseResult(err)).Inc()
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) clearExpiredSessions(w http.ResponseWriter, r *http.Request) {
	removed, err := s.sessions.Sweep(r.Context(), s.sessionTimeout, time.Now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if s.metrics != nil {
		s.metrics.SessionsExpired.Add(float64(removed))
	}
	s.logger.Info("expired sessions cleared", "removed", removed)
	s.writeJSON(w, http.StatusOK, sweepResponse{Removed: removed})
}

// instrument records request durations against the matched route pattern.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		route := chi.RouteContext(r.Context()).RoutePattern()
		s.metrics.RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func chooseResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, story.ErrSessionNotFound):
		return "session_not_found"
	case errors.Is(err, story.ErrChoiceNotFound):
		return "choice_not_found"
	case errors.Is(err, story.ErrChoiceNotVisible):
		return "choice_not_visible"
	case errors.Is(err, story.ErrStoryFinished):
		return "story_finished"
	default:
		return "error"
	}
}

// writeError maps core errors onto distinct client-visible outcomes. Anything
// unrecognized is an internal error: not attributable to the caller, and the
// message stays out of the response.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	var msg string
	switch {
	case errors.Is(err, story.ErrSessionNotFound):
		status, msg = http.StatusNotFound, "session not found"
	case errors.Is(err, story.ErrChoiceNotFound):
		status, msg = http.StatusNotFound, "choice not found"
	case errors.Is(err, story.ErrChoiceNotVisible):
		status, msg = http.StatusConflict, "choice not currently visible"
	case errors.Is(err, story.ErrStoryFinished):
		status, msg = http.StatusConflict, "story finished"
	default:
		status, msg = http.StatusInternalServerError, "internal error"
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}
