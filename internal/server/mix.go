package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/desertthunder/crossfade/internal/mix"
	"github.com/desertthunder/crossfade/internal/models"
	"github.com/desertthunder/crossfade/internal/services"
)

// maxPlanPayload bounds the planner payload; audio analyses run large but
// not unbounded.
const maxPlanPayload = 4 << 20

// handleAnalysis returns a track's combined audio analysis and features.
func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	trackID := r.URL.Query().Get("trackId")
	if trackID == "" {
		http.Error(w, "Missing trackId", http.StatusBadRequest)
		return
	}

	sess, ok := s.authorize(w, r)
	if !ok {
		return
	}

	analysis, err := s.orchestrator.Analyze(r.Context(), trackID, sess.AccessToken)
	if err != nil {
		s.respondUpstreamError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, analysis)
}

// handlePlan forwards the caller-shaped payload to the planner and relays
// the decoded plan.
func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPlanPayload))
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}
	if !json.Valid(payload) {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	plan, err := s.orchestrator.Plan(r.Context(), payload)
	if err != nil {
		var plannerErr *services.PlannerError
		if errors.As(err, &plannerErr) {
			w.WriteHeader(http.StatusInternalServerError)
			io.WriteString(w, plannerErr.Body)
			return
		}
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	s.writeJSON(w, http.StatusOK, plan)
}

// handleTimeline renders a plan into normalized bar geometry. Pure
// computation; no session required.
func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	var plan models.TransitionPlan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	s.writeJSON(w, http.StatusOK, mix.Render(plan))
}
