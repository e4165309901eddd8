package server

import (
	"encoding/json"
	"net/http"
)

// handleToken exposes the session's access token to the in-browser player
// SDK, which cannot read the HTTP-only cookie itself.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.authorize(w, r)
	if !ok {
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"access_token": sess.AccessToken,
		"expires_at":   sess.ExpiresAt,
	})
}

// handleTransfer moves playback to the named device without starting it.
func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.authorize(w, r)
	if !ok {
		return
	}

	var body struct {
		DeviceID string `json:"device_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.DeviceID == "" {
		http.Error(w, "Missing device_id", http.StatusBadRequest)
		return
	}

	err := s.catalog.Put(r.Context(), "/me/player", sess.AccessToken, map[string]any{
		"device_ids": []string{body.DeviceID},
		"play":       false,
	})
	if err != nil {
		s.respondUpstreamError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handlePlay starts playback of the given URIs at an offset.
func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.authorize(w, r)
	if !ok {
		return
	}

	var body struct {
		URIs       []string `json:"uris"`
		PositionMS int      `json:"position_ms"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.URIs) == 0 {
		http.Error(w, "Missing uris", http.StatusBadRequest)
		return
	}

	err := s.catalog.Put(r.Context(), "/me/player/play", sess.AccessToken, map[string]any{
		"uris":        body.URIs,
		"position_ms": body.PositionMS,
	})
	if err != nil {
		s.respondUpstreamError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
