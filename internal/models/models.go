// package models defines the data model for the crossfade web service
package models

import (
	"time"
)

// SessionTTL is the lifetime of the client-held session cookie.
const SessionTTL = 30 * 24 * time.Hour

// ExpiryMargin is subtracted from the upstream-reported token expiry so a
// token is treated as expired before it can lapse mid-request.
const ExpiryMargin = time.Minute

// Session holds the credentials reconstructed from the client cookie on
// every request. The server keeps no copy of it.
type Session struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresAt    int64  `json:"expiresAt"` // unix milliseconds
}

// Expired reports whether the session's access token has passed its
// margin-adjusted expiry.
func (s Session) Expired(now time.Time) bool {
	return now.UnixMilli() > s.ExpiresAt
}

// NewSession derives a Session from token material. expiry is the
// upstream-reported absolute expiry of the access token; the stored
// ExpiresAt is always [ExpiryMargin] earlier. When the upstream omits a
// new refresh token the previous one is carried forward.
func NewSession(accessToken, refreshToken string, expiry time.Time, prevRefresh string) Session {
	if refreshToken == "" {
		refreshToken = prevRefresh
	}
	return Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiry.Add(-ExpiryMargin).UnixMilli(),
	}
}

// Segment is a window of audio in seconds.
type Segment struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// TransitionPlan is the planner's suggestion for blending two tracks.
// It is read-only after receipt.
type TransitionPlan struct {
	TempoRatio float64 `json:"tempoRatio"`
	Strategy   string  `json:"strategy"`
	From       Segment `json:"from"`
	To         Segment `json:"to"`
}

// Timeline holds normalized bar geometry for visualizing a plan. Values
// are percentages of the combined transition span.
type Timeline struct {
	FromBar    float64 `json:"fromBar"`
	ToBar      float64 `json:"toBar"`
	FromOffset float64 `json:"fromOffset"`
	ToOffset   float64 `json:"toOffset"`
}
