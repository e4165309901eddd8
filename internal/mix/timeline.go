package mix

import (
	"math"

	"github.com/desertthunder/crossfade/internal/models"
)

// barFloor keeps near-zero segments visible in the rendered timeline.
const barFloor = 2.0

// Render computes normalized bar geometry for a transition plan.
//
// The total span is the sum of both segment durations. Positive values
// scale to a percentage of that span with a 2% floor; non-positive values
// and a zero span map to 0. Pure and idempotent over all finite
// non-negative inputs.
func Render(plan models.TransitionPlan) models.Timeline {
	total := plan.From.Duration + plan.To.Duration

	scale := func(s float64) float64 {
		if total <= 0 || s <= 0 {
			return 0
		}
		return math.Max(barFloor, s/total*100)
	}

	return models.Timeline{
		FromBar:    scale(plan.From.Duration),
		ToBar:      scale(plan.To.Duration),
		FromOffset: scale(math.Max(0, plan.From.Start)),
		ToOffset:   scale(math.Max(0, plan.To.Start)),
	}
}
