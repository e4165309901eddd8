package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrWeakSessionSecret  = fmt.Errorf("session secret too short")

	// Session errors
	ErrNoSession      = fmt.Errorf("no session")
	ErrTokenExpired   = fmt.Errorf("access token expired")
	ErrNoRefreshToken = fmt.Errorf("no refresh token available")

	// Authentication errors
	ErrAuthFailed    = fmt.Errorf("authentication failed")
	ErrInvalidState  = fmt.Errorf("invalid state parameter")
	ErrRefreshFailed = fmt.Errorf("token refresh failed")

	// API and service errors
	ErrAPIRequest        = fmt.Errorf("API request failed")
	ErrMalformedUpstream = fmt.Errorf("malformed upstream response")
	ErrMalformedPlan     = fmt.Errorf("malformed transition plan")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
