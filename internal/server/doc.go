// Package server wires the HTTP surface of the crossfade backend.
//
// # Layout
//
// Routes are mounted in three groups mirroring the client's usage:
//
//	/auth   — login redirect, OAuth callback, refresh, logout, and the
//	          guarded catalog proxies (/me, /playlists, playlist tracks)
//	/mix    — two-track analysis, transition planning, timeline geometry
//	/player — token introspection and playback control (transfer, play)
//
// plus an unguarded /health probe.
//
// # Authorization
//
// Every guarded handler resolves the session at the boundary via
// [session.Codec.Guard] before any upstream call: missing or malformed
// sessions get 401 "No session", expired ones 401 "Token expired" so the
// client knows a refresh may succeed. Catalog errors are relayed with the
// upstream status and body untranslated.
//
// # Middleware
//
// [Middleware] follows the standard wrapping pattern. The stack is request
// logging and a credentialed single-origin CORS layer; state beyond that
// lives in the client cookie, so handlers share nothing across requests.
package server
