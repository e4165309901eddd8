// package mix orchestrates two-track analysis and transition planning
package mix

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/crossfade/internal/models"
	"github.com/desertthunder/crossfade/internal/services"
	"golang.org/x/sync/errgroup"
)

// Analysis pairs a track's audio analysis with its audio features. Both
// bodies stay opaque JSON; the backend forwards them, it does not read them.
type Analysis struct {
	Analysis json.RawMessage `json:"analysis"`
	Features json.RawMessage `json:"features"`
}

// Orchestrator sequences catalog lookups and planner calls for a mix.
type Orchestrator struct {
	catalog services.Catalog
	planner services.Planner
}

// NewOrchestrator creates an orchestrator over the given services.
func NewOrchestrator(catalog services.Catalog, planner services.Planner) *Orchestrator {
	return &Orchestrator{catalog: catalog, planner: planner}
}

// Analyze fetches a track's audio analysis and audio features. The two
// lookups are independent and run concurrently; failure of either aborts
// the other and surfaces that call's error, never a partial result.
func (o *Orchestrator) Analyze(ctx context.Context, trackID, accessToken string) (*Analysis, error) {
	if trackID == "" {
		return nil, fmt.Errorf("no track ID provided")
	}

	var result Analysis
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		data, err := o.catalog.Get(ctx, "/audio-analysis/"+trackID, accessToken)
		if err != nil {
			return err
		}
		result.Analysis = data
		return nil
	})

	g.Go(func() error {
		data, err := o.catalog.Get(ctx, "/audio-features/"+trackID, accessToken)
		if err != nil {
			return err
		}
		result.Features = data
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &result, nil
}

// Plan forwards a caller-shaped payload to the external planner. Callers
// assemble the payload from two Analyze results; Plan must not run until
// both have completed successfully.
func (o *Orchestrator) Plan(ctx context.Context, payload json.RawMessage) (*models.TransitionPlan, error) {
	return o.planner.Plan(ctx, payload)
}
