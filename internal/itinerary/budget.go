// Package itinerary implements trip generation: estimating a budget for a
// tier, synthesizing a day-by-day plan from a destination catalog, and
// rescaling a plan's budget for a different party size.
//
// Everything in this package is pure computation over values. Catalog
// lookups, persistence and cancellation live in the service layer.
package itinerary

import (
	"fmt"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// EstimateBudget returns the whole-trip budget for partySize people
// travelling duration days at the given tier: every category of the tier's
// daily per-person cost multiplied by duration*partySize.
// Returns domain.ErrInvalidInput if duration or partySize is not positive or
// the tier is unknown.
func EstimateBudget(tier domain.BudgetTier, duration, partySize int) (domain.Budget, error) {
	if duration <= 0 {
		return domain.Budget{}, fmt.Errorf("%w: duration must be positive, got %d", domain.ErrInvalidInput, duration)
	}
	if partySize <= 0 {
		return domain.Budget{}, fmt.Errorf("%w: party size must be at least 1, got %d", domain.ErrInvalidInput, partySize)
	}
	daily, ok := domain.TierDailyCost(tier)
	if !ok {
		return domain.Budget{}, fmt.Errorf("%w: unknown budget tier %q", domain.ErrInvalidInput, tier)
	}
	return daily.Scale(float64(duration * partySize)), nil
}
