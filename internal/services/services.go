// package services defines interfaces for the external HTTP services the
// crossfade backend talks to
//
// Spotify (accounts + catalog), transition planner
package services

import (
	"context"
	"encoding/json"

	"github.com/desertthunder/crossfade/internal/models"
	"golang.org/x/oauth2"
)

// Catalog is an authenticated tunnel to a music catalog API plus the OAuth
// exchanges against its identity provider.
type Catalog interface {
	// AuthURL builds the provider's authorize URL for the given opaque state.
	AuthURL(state string) string

	// ExchangeCode trades an authorization code for token material.
	// Fails with [*AuthError] when the token endpoint rejects the exchange.
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)

	// Refresh trades a refresh token for fresh token material. The returned
	// token carries the prior refresh token forward when the provider omits
	// a new one.
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)

	// Get issues an authenticated GET and returns the raw JSON body.
	// Non-success statuses fail with [*APIError] carrying the upstream
	// status and body verbatim.
	Get(ctx context.Context, path, accessToken string) (json.RawMessage, error)

	// Put issues an authenticated PUT with a JSON body. The upstream
	// signals success with 204; anything else fails with [*APIError].
	Put(ctx context.Context, path, accessToken string, body any) error

	// Name returns the name of the service (e.g. "Spotify")
	Name() string
}

// Planner computes a [models.TransitionPlan] from two tracks' audio data.
type Planner interface {
	// Plan forwards the payload to the planning endpoint and decodes the
	// result. Fails with [*PlannerError] on non-success responses and with
	// [shared.ErrMalformedPlan] when the decoded plan is not usable.
	Plan(ctx context.Context, payload json.RawMessage) (*models.TransitionPlan, error)

	// Name returns the name of the service
	Name() string
}
