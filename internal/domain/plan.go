// Package domain contains the core data types for the trip planner.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (itinerary, repo, service, handler).
package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// MealSlot identifies when during the day a meal is eaten.
type MealSlot string

const (
	SlotBreakfast MealSlot = "breakfast"
	SlotLunch     MealSlot = "lunch"
	SlotDinner    MealSlot = "dinner"
	SlotSnack     MealSlot = "snack"
)

// Plan is a complete day-by-day itinerary with its whole-trip budget.
//
// Plans are values: nothing mutates a Plan after it has been assembled.
// Any adjustment (see itinerary.ScaleForParty) returns a new Plan.
// Invariant: len(Days) == Duration and Days[i].Day == i+1.
type Plan struct {
	ID            uuid.UUID  `json:"id"`
	DestinationID string     `json:"destination_id"`
	Tier          BudgetTier `json:"tier"`
	Duration      int        `json:"duration"`
	PartySize     int        `json:"party_size"`
	StartDate     time.Time  `json:"start_date"`
	Budget        Budget     `json:"budget"`
	Days          []DayPlan  `json:"days"`
	CreatedAt     time.Time  `json:"created_at"`
}

// DayPlan is one day's worth of visits, meals, and lodging within a Plan.
// Accommodation is nil when the destination lists no lodging.
type DayPlan struct {
	ID            uuid.UUID      `json:"id"`
	Day           int            `json:"day"`
	Date          time.Time      `json:"date"`
	Places        []Place        `json:"places"`
	Meals         []Meal         `json:"meals"`
	Accommodation *Accommodation `json:"accommodation,omitempty"`
	EstimatedCost float64        `json:"estimated_cost"`
}

// Meal is a single meal slot with its assigned eatery and cost estimate.
type Meal struct {
	ID            uuid.UUID `json:"id"`
	Slot          MealSlot  `json:"slot"`
	Eatery        Eatery    `json:"eatery"`
	EstimatedCost float64   `json:"estimated_cost"`
}

// Clone returns a deep copy of p. The copy shares no slices or pointers
// with p, so callers holding either value never observe changes to the other.
func (p Plan) Clone() Plan {
	out := p
	if p.Days == nil {
		return out
	}
	out.Days = make([]DayPlan, len(p.Days))
	for i, d := range p.Days {
		out.Days[i] = d.clone()
	}
	return out
}

func (d DayPlan) clone() DayPlan {
	out := d
	if d.Places != nil {
		out.Places = make([]Place, len(d.Places))
		for i, pl := range d.Places {
			if pl.EntranceFee != nil {
				fee := *pl.EntranceFee
				pl.EntranceFee = &fee
			}
			out.Places[i] = pl
		}
	}
	out.Meals = slices.Clone(d.Meals)
	if d.Accommodation != nil {
		acc := *d.Accommodation
		acc.Amenities = slices.Clone(d.Accommodation.Amenities)
		out.Accommodation = &acc
	}
	return out
}

// PlanChange is one field-level difference between two versions of a plan.
// Path is dot-separated, e.g. "budget.food".
type PlanChange struct {
	Path string `json:"path"`
	From any    `json:"from"`
	To   any    `json:"to"`
}
