package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

func TestPlan_CloneSharesNothing(t *testing.T) {
	fee := 12.5
	acc := &domain.Accommodation{ID: "inn", Amenities: []string{"wifi"}}
	plan := domain.Plan{
		ID:       uuid.New(),
		Duration: 1,
		Days: []domain.DayPlan{{
			Day:           1,
			Places:        []domain.Place{{ID: "museum", EntranceFee: &fee}},
			Meals:         []domain.Meal{{Slot: domain.SlotLunch, EstimatedCost: 20}},
			Accommodation: acc,
		}},
	}

	clone := plan.Clone()
	assert.Equal(t, plan, clone)

	*clone.Days[0].Places[0].EntranceFee = 99
	clone.Days[0].Meals[0].EstimatedCost = 0
	clone.Days[0].Accommodation.Amenities[0] = "pool"
	clone.Days[0].Day = 7

	assert.Equal(t, 12.5, fee)
	assert.Equal(t, 20.0, plan.Days[0].Meals[0].EstimatedCost)
	assert.Equal(t, "wifi", acc.Amenities[0])
	assert.Equal(t, 1, plan.Days[0].Day)
}

func TestPlan_CloneNilDays(t *testing.T) {
	plan := domain.Plan{ID: uuid.New()}

	assert.Nil(t, plan.Clone().Days)
}
