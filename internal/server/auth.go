package server

import (
	"net/http"

	"github.com/desertthunder/crossfade/internal/services"
	"github.com/desertthunder/crossfade/internal/shared"
)

// handleLogin starts the authorization flow: a fresh state token is bound
// to the browser via a short-lived cookie, then the user is sent to the
// provider's authorize endpoint.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	state := shared.GenerateState()
	http.SetCookie(w, s.codec.EncodeState(state))
	http.Redirect(w, r, s.catalog.AuthURL(state), http.StatusFound)
}

// handleCallback completes the flow: the returned state must match the one
// issued at login, then the code is exchanged and the session cookie set.
func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	pending := s.codec.DecodeState(r)
	http.SetCookie(w, s.codec.ClearState())

	if pending == "" || r.URL.Query().Get("state") != pending {
		http.Error(w, "Invalid state", http.StatusBadRequest)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Missing code", http.StatusBadRequest)
		return
	}

	token, err := s.catalog.ExchangeCode(r.Context(), code)
	if err != nil {
		s.logger.Error("code exchange failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cookie, err := s.codec.Encode(services.SessionFromToken(token, ""))
	if err != nil {
		s.logger.Error("failed to encode session cookie", "error", err)
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, cookie)
	http.Redirect(w, r, s.config.Server.ClientOrigin+"/", http.StatusFound)
}

// handleRefresh rotates the session wholesale. An expired session may
// still refresh; only the refresh token matters here.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	sess := s.codec.Decode(r)
	if sess == nil {
		http.Error(w, "No session", http.StatusUnauthorized)
		return
	}
	if sess.RefreshToken == "" {
		http.Error(w, "No refresh token", http.StatusBadRequest)
		return
	}

	token, err := s.catalog.Refresh(r.Context(), sess.RefreshToken)
	if err != nil {
		s.logger.Error("token refresh failed", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	cookie, err := s.codec.Encode(services.SessionFromToken(token, sess.RefreshToken))
	if err != nil {
		s.logger.Error("failed to encode session cookie", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update session"})
		return
	}

	http.SetCookie(w, cookie)
	s.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleLogout overwrites the session cookie with a zero-lifetime one.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, s.codec.Clear())
	s.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
