package handler

import (
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

// --- requests ---------------------------------------------------------------

// The validate tags cap duration at 30 days and parties at 20 people. The
// core itself accepts any positive value.

// EstimateRequest is the body of POST /budget/estimate.
// party_size defaults to 1.
type EstimateRequest struct {
	Tier      string `json:"tier" validate:"required,oneof=economy standard luxury"`
	Duration  int    `json:"duration" validate:"required,min=1,max=30"`
	PartySize int    `json:"party_size,omitempty" validate:"omitempty,min=1,max=20"`
}

// GenerateRequest is the body of POST /plans and POST /plans/preview.
// start_date defaults to today.
type GenerateRequest struct {
	DestinationID string              `json:"destination_id" validate:"required,max=64"`
	Tier          string              `json:"tier" validate:"required,oneof=economy standard luxury"`
	Duration      int                 `json:"duration" validate:"required,min=1,max=30"`
	PartySize     int                 `json:"party_size,omitempty" validate:"omitempty,min=1,max=20"`
	StartDate     *openapi_types.Date `json:"start_date,omitempty"`
}

func (req GenerateRequest) toInput() service.GenerateInput {
	in := service.GenerateInput{
		DestinationID: req.DestinationID,
		Tier:          domain.BudgetTier(req.Tier),
		Duration:      req.Duration,
		PartySize:     req.PartySize,
	}
	if req.StartDate != nil {
		in.StartDate = req.StartDate.Time
	}
	return in
}

// ScaleRequest is the body of POST /plans/{id}/scale.
type ScaleRequest struct {
	PartySize int `json:"party_size" validate:"required,min=1,max=20"`
}

// compareQuery holds the query parameters of GET /destinations/compare.
type compareQuery struct {
	IDs       []string `query:"ids" validate:"required,min=1,max=5,dive,required"`
	Tier      string   `query:"tier" validate:"required,oneof=economy standard luxury"`
	Duration  int      `query:"days" validate:"required,min=1,max=30"`
	PartySize int      `query:"party" validate:"min=1,max=20"`
}

// --- responses --------------------------------------------------------------

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

func paginationOf(p domain.PaginationParams, total int64) Pagination {
	return Pagination{Page: p.Page, Limit: p.Limit, Total: int(total)}
}

// Health is the body of GET /healthz.
type Health struct {
	Status string `json:"status"`
}

// Budget is a budget breakdown with its computed total.
type Budget struct {
	Accommodation  float64 `json:"accommodation"`
	Food           float64 `json:"food"`
	Transportation float64 `json:"transportation"`
	Activities     float64 `json:"activities"`
	Shopping       float64 `json:"shopping"`
	Other          float64 `json:"other"`
	Total          float64 `json:"total"`
}

func budgetToResponse(b domain.Budget) Budget {
	return Budget{
		Accommodation:  b.Accommodation,
		Food:           b.Food,
		Transportation: b.Transportation,
		Activities:     b.Activities,
		Shopping:       b.Shopping,
		Other:          b.Other,
		Total:          b.Total(),
	}
}

// EstimateResponse is the body of a successful budget estimate.
type EstimateResponse struct {
	Tier      string `json:"tier"`
	Duration  int    `json:"duration"`
	PartySize int    `json:"party_size"`
	Budget    Budget `json:"budget"`
}

// DayPlan is one day of a plan.
type DayPlan struct {
	ID            uuid.UUID             `json:"id"`
	Day           int                   `json:"day"`
	Date          openapi_types.Date    `json:"date"`
	Places        []domain.Place        `json:"places"`
	Meals         []domain.Meal         `json:"meals"`
	Accommodation *domain.Accommodation `json:"accommodation,omitempty"`
	EstimatedCost float64               `json:"estimated_cost"`
}

// Plan is a full plan with its itinerary.
type Plan struct {
	ID            uuid.UUID          `json:"id"`
	DestinationID string             `json:"destination_id"`
	Tier          string             `json:"tier"`
	Duration      int                `json:"duration"`
	PartySize     int                `json:"party_size"`
	StartDate     openapi_types.Date `json:"start_date"`
	Budget        Budget             `json:"budget"`
	Days          []DayPlan          `json:"days"`
	CreatedAt     time.Time          `json:"created_at"`
}

func planToResponse(p domain.Plan) Plan {
	days := make([]DayPlan, len(p.Days))
	for i, d := range p.Days {
		days[i] = DayPlan{
			ID:            d.ID,
			Day:           d.Day,
			Date:          openapi_types.Date{Time: d.Date},
			Places:        d.Places,
			Meals:         d.Meals,
			Accommodation: d.Accommodation,
			EstimatedCost: d.EstimatedCost,
		}
	}
	return Plan{
		ID:            p.ID,
		DestinationID: p.DestinationID,
		Tier:          string(p.Tier),
		Duration:      p.Duration,
		PartySize:     p.PartySize,
		StartDate:     openapi_types.Date{Time: p.StartDate},
		Budget:        budgetToResponse(p.Budget),
		Days:          days,
		CreatedAt:     p.CreatedAt,
	}
}

// PlanSummary is a plan without its itinerary, used in listings.
type PlanSummary struct {
	ID            uuid.UUID          `json:"id"`
	DestinationID string             `json:"destination_id"`
	Tier          string             `json:"tier"`
	Duration      int                `json:"duration"`
	PartySize     int                `json:"party_size"`
	StartDate     openapi_types.Date `json:"start_date"`
	Total         float64            `json:"total"`
	CreatedAt     time.Time          `json:"created_at"`
}

func planToSummary(p domain.Plan) PlanSummary {
	return PlanSummary{
		ID:            p.ID,
		DestinationID: p.DestinationID,
		Tier:          string(p.Tier),
		Duration:      p.Duration,
		PartySize:     p.PartySize,
		StartDate:     openapi_types.Date{Time: p.StartDate},
		Total:         p.Budget.Total(),
		CreatedAt:     p.CreatedAt,
	}
}

// PlanList is the body of GET /plans.
type PlanList struct {
	Data       []PlanSummary `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

// ScaleResponse is the scaled plan plus what changed relative to the saved one.
type ScaleResponse struct {
	Plan    Plan                `json:"plan"`
	Changes []domain.PlanChange `json:"changes"`
}

// DestinationList is the body of GET /destinations.
type DestinationList struct {
	Data       []domain.Destination `json:"data"`
	Pagination Pagination           `json:"pagination"`
}

// Comparison is one destination's row in a comparison.
type Comparison struct {
	Destination          domain.Destination `json:"destination"`
	Budget               Budget             `json:"budget"`
	PlaceCount           int                `json:"place_count"`
	EateryCount          int                `json:"eatery_count"`
	AccommodationCount   int                `json:"accommodation_count"`
	CheapestNightly      *float64           `json:"cheapest_nightly,omitempty"`
	AverageEntranceFee   float64            `json:"average_entrance_fee"`
	GeneratableItinerary bool               `json:"generatable_itinerary"`
}

// ComparisonList is the body of GET /destinations/compare.
type ComparisonList struct {
	Data []Comparison `json:"data"`
}

func comparisonToResponse(c domain.DestinationComparison) Comparison {
	return Comparison{
		Destination:          c.Destination,
		Budget:               budgetToResponse(c.Budget),
		PlaceCount:           c.PlaceCount,
		EateryCount:          c.EateryCount,
		AccommodationCount:   c.AccommodationCount,
		CheapestNightly:      c.CheapestNightly,
		AverageEntranceFee:   c.AverageEntranceFee,
		GeneratableItinerary: c.GeneratableItinerary,
	}
}
