package itinerary

import (
	"fmt"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// ScaleForParty returns a copy of plan whose whole-trip budget covers
// partySize travellers. Every budget category is multiplied by partySize.
//
// Only the top-level budget changes. Day and meal cost estimates keep the
// values generated for a single traveller; the itinerary itself is copied
// unchanged along with the plan's id, destination, tier and duration.
//
// partySize == 1 returns plan as is. partySize < 1 returns
// domain.ErrInvalidInput.
func ScaleForParty(plan domain.Plan, partySize int) (domain.Plan, error) {
	if partySize < 1 {
		return domain.Plan{}, fmt.Errorf("%w: party size must be at least 1, got %d", domain.ErrInvalidInput, partySize)
	}
	if partySize == 1 {
		return plan, nil
	}

	out := plan.Clone()
	out.Budget = plan.Budget.Scale(float64(partySize))
	out.PartySize = max(plan.PartySize, 1) * partySize
	return out, nil
}
