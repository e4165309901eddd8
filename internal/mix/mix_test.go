package mix

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/desertthunder/crossfade/internal/models"
	"github.com/desertthunder/crossfade/internal/services"
	itesting "github.com/desertthunder/crossfade/internal/testing"
)

func TestOrchestrator(t *testing.T) {
	t.Run("Analyze", func(t *testing.T) {
		t.Run("Combines Both Lookups", func(t *testing.T) {
			catalog := &itesting.MockCatalog{
				GetFunc: func(ctx context.Context, path, accessToken string) (json.RawMessage, error) {
					if accessToken != "tok" {
						t.Errorf("expected access token to reach the gateway, got %q", accessToken)
					}
					switch {
					case strings.HasPrefix(path, "/audio-analysis/"):
						return json.RawMessage(`{"sections":[{"start":150.5}]}`), nil
					case strings.HasPrefix(path, "/audio-features/"):
						return json.RawMessage(`{"tempo":120,"key":5}`), nil
					default:
						t.Errorf("unexpected path %q", path)
						return nil, errors.New("unexpected path")
					}
				},
			}

			o := NewOrchestrator(catalog, &itesting.MockPlanner{})

			result, err := o.Analyze(context.Background(), "track1", "tok")
			if err != nil {
				t.Fatalf("analyze failed: %v", err)
			}

			if !strings.Contains(string(result.Analysis), "sections") {
				t.Errorf("unexpected analysis payload: %s", result.Analysis)
			}
			if !strings.Contains(string(result.Features), "tempo") {
				t.Errorf("unexpected features payload: %s", result.Features)
			}
		})

		t.Run("Features Failure Aborts", func(t *testing.T) {
			catalog := &itesting.MockCatalog{
				GetFunc: func(ctx context.Context, path, accessToken string) (json.RawMessage, error) {
					if strings.HasPrefix(path, "/audio-features/") {
						return nil, &services.APIError{Status: http.StatusForbidden, Body: "forbidden"}
					}
					return json.RawMessage(`{}`), nil
				},
			}

			o := NewOrchestrator(catalog, &itesting.MockPlanner{})

			result, err := o.Analyze(context.Background(), "track1", "tok")
			if result != nil {
				t.Error("expected no partial result")
			}

			var apiErr *services.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %v", err)
			}
			if apiErr.Status != http.StatusForbidden {
				t.Errorf("expected status 403, got %d", apiErr.Status)
			}
		})

		t.Run("Missing Track ID", func(t *testing.T) {
			o := NewOrchestrator(&itesting.MockCatalog{}, &itesting.MockPlanner{})

			if _, err := o.Analyze(context.Background(), "", "tok"); err == nil {
				t.Error("expected error for empty track ID")
			}
		})
	})

	t.Run("Plan Delegates To Planner", func(t *testing.T) {
		want := &models.TransitionPlan{TempoRatio: 1.1, Strategy: "smooth"}
		planner := &itesting.MockPlanner{
			PlanFunc: func(ctx context.Context, payload json.RawMessage) (*models.TransitionPlan, error) {
				return want, nil
			},
		}

		o := NewOrchestrator(&itesting.MockCatalog{}, planner)

		plan, err := o.Plan(context.Background(), json.RawMessage(`{}`))
		if err != nil {
			t.Fatalf("plan failed: %v", err)
		}
		if plan != want {
			t.Errorf("expected planner result to pass through, got %+v", plan)
		}
	})
}

func TestRender(t *testing.T) {
	t.Run("Even Split", func(t *testing.T) {
		plan := models.TransitionPlan{
			TempoRatio: 1.05,
			Strategy:   "beatmatch",
			From:       models.Segment{Start: 0, Duration: 30},
			To:         models.Segment{Start: 30, Duration: 30},
		}

		timeline := Render(plan)

		if timeline.FromBar != 50 || timeline.ToBar != 50 {
			t.Errorf("expected 50/50 bars, got %v/%v", timeline.FromBar, timeline.ToBar)
		}
		if timeline.FromOffset != 0 {
			t.Errorf("expected from offset 0, got %v", timeline.FromOffset)
		}
		if timeline.ToOffset != 50 {
			t.Errorf("expected to offset 50, got %v", timeline.ToOffset)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		plan := models.TransitionPlan{
			TempoRatio: 0.98,
			Strategy:   "smooth",
			From:       models.Segment{Start: 140, Duration: 16},
			To:         models.Segment{Start: 4, Duration: 16},
		}

		first := Render(plan)
		second := Render(plan)
		if first != second {
			t.Errorf("render not idempotent: %+v vs %+v", first, second)
		}
	})

	t.Run("Zero Total Maps To Zero", func(t *testing.T) {
		timeline := Render(models.TransitionPlan{Strategy: "smooth"})

		if timeline != (models.Timeline{}) {
			t.Errorf("expected all-zero timeline, got %+v", timeline)
		}
	})

	t.Run("Visual Floor", func(t *testing.T) {
		// A near-zero segment still renders at 2%.
		plan := models.TransitionPlan{
			TempoRatio: 1,
			Strategy:   "smooth",
			From:       models.Segment{Start: 0, Duration: 0.1},
			To:         models.Segment{Start: 10, Duration: 90},
		}

		timeline := Render(plan)
		if timeline.FromBar != 2 {
			t.Errorf("expected 2%% floor, got %v", timeline.FromBar)
		}
		if timeline.ToBar <= 2 {
			t.Errorf("expected large bar above the floor, got %v", timeline.ToBar)
		}
	})

	t.Run("Negative Start Clamped", func(t *testing.T) {
		plan := models.TransitionPlan{
			TempoRatio: 1,
			Strategy:   "smooth",
			From:       models.Segment{Start: -5, Duration: 30},
			To:         models.Segment{Start: 30, Duration: 30},
		}

		if timeline := Render(plan); timeline.FromOffset != 0 {
			t.Errorf("expected clamped offset 0, got %v", timeline.FromOffset)
		}
	})
}
