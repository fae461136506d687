package domain

import "time"

// Destination is a travel destination in the catalog.
// IDs are human-readable slugs (e.g. "istanbul") assigned by the catalog.
type Destination struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Country     string    `json:"country" yaml:"country"`
	Description string    `json:"description,omitempty" yaml:"description"`
	CreatedAt   time.Time `json:"created_at" yaml:"-"`
}

// DefaultVisitMinutes is assumed for places that do not list a visit time.
const DefaultVisitMinutes = 60

// Place is a sight or attraction that can be visited at a destination.
// EntranceFee is nil when the place is free to enter.
type Place struct {
	ID            string   `json:"id" yaml:"id"`
	DestinationID string   `json:"destination_id" yaml:"-"`
	Name          string   `json:"name" yaml:"name"`
	Category      string   `json:"category,omitempty" yaml:"category"`
	VisitMinutes  int      `json:"visit_minutes" yaml:"visit_minutes"`
	EntranceFee   *float64 `json:"entrance_fee,omitempty" yaml:"entrance_fee"`
}

// VisitDuration returns the typical time spent at the place.
func (p Place) VisitDuration() time.Duration {
	if p.VisitMinutes <= 0 {
		return DefaultVisitMinutes * time.Minute
	}
	return time.Duration(p.VisitMinutes) * time.Minute
}

// Eatery is a restaurant or café at a destination.
// PriceTier runs from 1 (cheap) to 4 (expensive).
type Eatery struct {
	ID            string `json:"id" yaml:"id"`
	DestinationID string `json:"destination_id" yaml:"-"`
	Name          string `json:"name" yaml:"name"`
	Cuisine       string `json:"cuisine,omitempty" yaml:"cuisine"`
	PriceTier     int    `json:"price_tier" yaml:"price_tier"`
}

// Accommodation is a lodging option at a destination.
type Accommodation struct {
	ID            string   `json:"id" yaml:"id"`
	DestinationID string   `json:"destination_id" yaml:"-"`
	Name          string   `json:"name" yaml:"name"`
	Type          string   `json:"type" yaml:"type"`
	NightlyPrice  float64  `json:"nightly_price" yaml:"nightly_price"`
	Amenities     []string `json:"amenities,omitempty" yaml:"amenities"`
}

// DestinationComparison summarises how a destination fares for a given
// trip shape. It is produced by the catalog service's Compare operation.
type DestinationComparison struct {
	Destination          Destination
	Budget               Budget
	PlaceCount           int
	EateryCount          int
	AccommodationCount   int
	CheapestNightly      *float64 // nil when no lodging is listed
	AverageEntranceFee   float64  // averaged over places that charge a fee
	GeneratableItinerary bool     // false when places or eateries are missing
}
