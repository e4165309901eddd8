// Planner client for the external transition-planning service
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/desertthunder/crossfade/internal/models"
	"github.com/desertthunder/crossfade/internal/shared"
)

// PlannerService posts raw JSON payloads to the planning service and
// decodes the resulting [models.TransitionPlan].
type PlannerService struct {
	baseURL    string
	httpClient *http.Client
}

// NewPlannerService creates a new planner client.
func NewPlannerService(baseURL string, client *http.Client) *PlannerService {
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &PlannerService{
		baseURL:    baseURL,
		httpClient: client,
	}
}

func (p *PlannerService) Name() string {
	return "Planner"
}

// Plan forwards the payload to the planner's plan-transition endpoint.
//
// The payload is caller-shaped (two tracks' analysis/features plus a known
// duration) and passed through untouched. The response is decoded into a
// [models.TransitionPlan] and shape-checked before use.
func (p *PlannerService) Plan(ctx context.Context, payload json.RawMessage) (*models.TransitionPlan, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/plan-transition", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &PlannerError{Body: string(body)}
	}

	var plan models.TransitionPlan
	if err := json.Unmarshal(body, &plan); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedPlan, err)
	}
	if err := validatePlan(plan); err != nil {
		return nil, err
	}

	return &plan, nil
}

// validatePlan rejects plans the renderer cannot work with. The planner is
// trusted for values, not for shape.
func validatePlan(plan models.TransitionPlan) error {
	if plan.TempoRatio <= 0 {
		return fmt.Errorf("%w: tempo ratio %v", shared.ErrMalformedPlan, plan.TempoRatio)
	}
	if plan.Strategy == "" {
		return fmt.Errorf("%w: missing strategy", shared.ErrMalformedPlan)
	}
	if plan.From.Duration < 0 || plan.To.Duration < 0 {
		return fmt.Errorf("%w: negative segment duration", shared.ErrMalformedPlan)
	}
	return nil
}
