package domain

import (
	"fmt"
	"strings"
)

// BudgetTier is a named cost profile. Each tier maps to a fixed table of
// daily per-person costs (see TierDailyCost).
type BudgetTier string

const (
	TierEconomy  BudgetTier = "economy"
	TierStandard BudgetTier = "standard"
	TierLuxury   BudgetTier = "luxury"
)

// BudgetTiers lists every known tier in ascending cost order.
var BudgetTiers = []BudgetTier{TierEconomy, TierStandard, TierLuxury}

// ParseBudgetTier converts a case-insensitive string into a BudgetTier.
// Returns ErrInvalidInput for unknown values.
func ParseBudgetTier(s string) (BudgetTier, error) {
	t := BudgetTier(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown budget tier %q", ErrInvalidInput, s)
	}
	return t, nil
}

// Valid reports whether t is one of the known tiers.
func (t BudgetTier) Valid() bool {
	switch t {
	case TierEconomy, TierStandard, TierLuxury:
		return true
	}
	return false
}

// TierDailyCost returns the daily per-person cost table for a tier.
// The second return value is false for unknown tiers.
//
// The table is returned by value so callers can never modify it.
func TierDailyCost(t BudgetTier) (Budget, bool) {
	switch t {
	case TierEconomy:
		return Budget{Accommodation: 60, Food: 40, Transportation: 20, Activities: 20, Shopping: 10, Other: 10}, true
	case TierStandard:
		return Budget{Accommodation: 150, Food: 80, Transportation: 40, Activities: 50, Shopping: 20, Other: 10}, true
	case TierLuxury:
		return Budget{Accommodation: 400, Food: 200, Transportation: 100, Activities: 150, Shopping: 100, Other: 50}, true
	}
	return Budget{}, false
}

// Budget is a cost breakdown across six categories.
// The total is never stored; Total always sums the categories, so a Budget
// cannot carry a total that disagrees with its breakdown.
type Budget struct {
	Accommodation  float64 `json:"accommodation" diff:"accommodation"`
	Food           float64 `json:"food" diff:"food"`
	Transportation float64 `json:"transportation" diff:"transportation"`
	Activities     float64 `json:"activities" diff:"activities"`
	Shopping       float64 `json:"shopping" diff:"shopping"`
	Other          float64 `json:"other" diff:"other"`
}

// Total returns the sum of all six categories.
func (b Budget) Total() float64 {
	return b.Accommodation + b.Food + b.Transportation + b.Activities + b.Shopping + b.Other
}

// Scale returns a copy of b with every category multiplied by k.
func (b Budget) Scale(k float64) Budget {
	return Budget{
		Accommodation:  b.Accommodation * k,
		Food:           b.Food * k,
		Transportation: b.Transportation * k,
		Activities:     b.Activities * k,
		Shopping:       b.Shopping * k,
		Other:          b.Other * k,
	}
}
