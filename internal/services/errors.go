package services

import "fmt"

// AuthError is a non-success response from the identity provider's token
// endpoint. A failed exchange is terminal for that login attempt; callers
// never retry it.
type AuthError struct {
	Status int
	Body   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("token endpoint returned %d: %s", e.Status, e.Body)
}

// APIError is a non-success response from the catalog API. Status and Body
// are relayed to the client untranslated so upstream semantics (rate
// limits, permission errors) survive the proxy hop.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("catalog API returned %d: %s", e.Status, e.Body)
}

// PlannerError is a non-success response from the transition planner.
type PlannerError struct {
	Body string
}

func (e *PlannerError) Error() string {
	return fmt.Sprintf("planner request failed: %s", e.Body)
}
