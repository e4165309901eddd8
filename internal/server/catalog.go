package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// proxy relays a guarded catalog GET, passing the upstream JSON through
// unchanged.
func (s *Server) proxy(w http.ResponseWriter, r *http.Request, path string) {
	sess, ok := s.authorize(w, r)
	if !ok {
		return
	}

	data, err := s.catalog.Get(r.Context(), path, sess.AccessToken)
	if err != nil {
		s.respondUpstreamError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	s.proxy(w, r, "/me")
}

func (s *Server) handlePlaylists(w http.ResponseWriter, r *http.Request) {
	s.proxy(w, r, "/me/playlists?limit=50")
}

func (s *Server) handlePlaylistTracks(w http.ResponseWriter, r *http.Request) {
	playlistID := chi.URLParam(r, "playlistID")
	if playlistID == "" {
		http.Error(w, "Missing playlistId", http.StatusBadRequest)
		return
	}

	s.proxy(w, r, fmt.Sprintf("/playlists/%s/tracks?limit=100", playlistID))
}
