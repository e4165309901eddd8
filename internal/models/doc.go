// Package models defines domain values shared across the crossfade service.
//
// The package contains plain value types only:
//   - [Session] : client-held access/refresh credentials with margin-adjusted expiry
//   - [TransitionPlan] : the external planner's blend suggestion for two tracks
//   - [Segment] : a start/duration window in seconds
//   - [Timeline] : normalized bar geometry derived from a plan
//
// The service is stateless: nothing here is persisted server-side. A Session
// lives exclusively in the client cookie and is reconstructed per request.
package models
