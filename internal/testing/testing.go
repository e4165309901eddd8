// package testing contains shared testing utilities
package testing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/desertthunder/crossfade/internal/models"
	"golang.org/x/oauth2"
)

// MockCatalog is a test double for [services.Catalog]. Unset function
// fields fall back to benign zero behavior.
type MockCatalog struct {
	AuthURLFunc  func(state string) string
	ExchangeFunc func(ctx context.Context, code string) (*oauth2.Token, error)
	RefreshFunc  func(ctx context.Context, refreshToken string) (*oauth2.Token, error)
	GetFunc      func(ctx context.Context, path, accessToken string) (json.RawMessage, error)
	PutFunc      func(ctx context.Context, path, accessToken string, body any) error
}

func (m *MockCatalog) AuthURL(state string) string {
	if m.AuthURLFunc != nil {
		return m.AuthURLFunc(state)
	}
	return "https://accounts.example.com/authorize?state=" + state
}

func (m *MockCatalog) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, code)
	}
	return &oauth2.Token{AccessToken: "mock"}, nil
}

func (m *MockCatalog) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return &oauth2.Token{AccessToken: "mock", RefreshToken: refreshToken}, nil
}

func (m *MockCatalog) Get(ctx context.Context, path, accessToken string) (json.RawMessage, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, path, accessToken)
	}
	return json.RawMessage(`{}`), nil
}

func (m *MockCatalog) Put(ctx context.Context, path, accessToken string, body any) error {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, path, accessToken, body)
	}
	return nil
}

func (m *MockCatalog) Name() string { return "mock" }

// MockPlanner is a test double for [services.Planner].
type MockPlanner struct {
	PlanFunc func(ctx context.Context, payload json.RawMessage) (*models.TransitionPlan, error)
}

func (m *MockPlanner) Plan(ctx context.Context, payload json.RawMessage) (*models.TransitionPlan, error) {
	if m.PlanFunc != nil {
		return m.PlanFunc(ctx, payload)
	}
	return &models.TransitionPlan{TempoRatio: 1, Strategy: "smooth"}, nil
}

func (m *MockPlanner) Name() string { return "mock" }

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}
