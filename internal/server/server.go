package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/crossfade/internal/mix"
	"github.com/desertthunder/crossfade/internal/models"
	"github.com/desertthunder/crossfade/internal/services"
	"github.com/desertthunder/crossfade/internal/session"
	"github.com/desertthunder/crossfade/internal/shared"
	"github.com/go-chi/chi/v5"
)

// Opts contains the dependencies for building a [Server].
type Opts struct {
	Config       *shared.Config
	Catalog      services.Catalog
	Orchestrator *mix.Orchestrator
	Codec        *session.Codec
	Logger       *log.Logger
}

// Server holds the handler dependencies. It carries no per-request state:
// sessions live in the client cookie and every request stands alone.
type Server struct {
	config       *shared.Config
	catalog      services.Catalog
	orchestrator *mix.Orchestrator
	codec        *session.Codec
	logger       *log.Logger
}

// New creates a Server from opts.
func New(opts Opts) (*Server, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("config is required: %w", shared.ErrMissingConfig)
	}
	if opts.Catalog == nil || opts.Orchestrator == nil || opts.Codec == nil {
		return nil, fmt.Errorf("catalog, orchestrator and codec are required")
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Server{
		config:       opts.Config,
		catalog:      opts.Catalog,
		orchestrator: opts.Orchestrator,
		codec:        opts.Codec,
		logger:       opts.Logger,
	}, nil
}

// Router builds the chi route tree with the middleware stack applied.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestLogger(s.logger))
	r.Use(CORS(s.config.Server.ClientOrigin))

	r.Get("/health", s.handleHealth)

	r.Route("/auth", func(r chi.Router) {
		r.Get("/login", s.handleLogin)
		r.Get("/callback", s.handleCallback)
		r.Post("/refresh", s.handleRefresh)
		r.Post("/logout", s.handleLogout)
		r.Get("/me", s.handleMe)
		r.Get("/playlists", s.handlePlaylists)
		r.Get("/playlists/{playlistID}/tracks", s.handlePlaylistTracks)
	})

	r.Route("/mix", func(r chi.Router) {
		r.Get("/analysis", s.handleAnalysis)
		r.Post("/plan", s.handlePlan)
		r.Post("/timeline", s.handleTimeline)
	})

	r.Route("/player", func(r chi.Router) {
		r.Get("/token", s.handleToken)
		r.Post("/transfer", s.handleTransfer)
		r.Post("/play", s.handlePlay)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// authorize resolves the session at the request boundary. On anything but
// a valid session it writes the 401 response and reports false; no
// upstream call happens on an invalid session.
func (s *Server) authorize(w http.ResponseWriter, r *http.Request) (*models.Session, bool) {
	outcome := s.codec.Guard(r, time.Now())

	switch outcome.Status {
	case session.Missing, session.Malformed:
		http.Error(w, "No session", http.StatusUnauthorized)
		return nil, false
	case session.Expired:
		http.Error(w, "Token expired", http.StatusUnauthorized)
		return nil, false
	}

	return outcome.Session, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// respondUpstreamError relays catalog failures with the upstream status
// and body untouched; anything else becomes a 500.
func (s *Server) respondUpstreamError(w http.ResponseWriter, err error) {
	var apiErr *services.APIError
	if errors.As(err, &apiErr) {
		w.WriteHeader(apiErr.Status)
		io.WriteString(w, apiErr.Body)
		return
	}

	s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}
