package session

import (
	"net/http"
	"time"

	"github.com/desertthunder/crossfade/internal/models"
)

// Status classifies the session carried by an inbound request.
type Status int

const (
	// Valid means the session parsed and has not expired.
	Valid Status = iota
	// Missing means no session cookie was present.
	Missing
	// Malformed means a cookie was present but did not decode to a usable
	// session. Treated like Missing for authorization purposes.
	Malformed
	// Expired means the session parsed but its token is past the
	// margin-adjusted expiry. Distinct from Missing so clients can refresh
	// instead of re-login.
	Expired
)

func (s Status) String() string {
	switch s {
	case Valid:
		return "valid"
	case Missing:
		return "missing"
	case Malformed:
		return "malformed"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// Outcome is the guard's decision. Session is non-nil only for Valid and
// Expired.
type Outcome struct {
	Status  Status
	Session *models.Session
}

// Guard inspects the request's cookie header and classifies it. Pure over
// the request and the supplied clock; performs no I/O.
func (c *Codec) Guard(r *http.Request, now time.Time) Outcome {
	if _, err := r.Cookie(CookieName); err != nil {
		return Outcome{Status: Missing}
	}

	session := c.Decode(r)
	if session == nil {
		return Outcome{Status: Malformed}
	}

	if session.Expired(now) {
		return Outcome{Status: Expired, Session: session}
	}

	return Outcome{Status: Valid, Session: session}
}
