// Package service contains the business logic for the trip planner API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here: services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/itinerary"
	"github.com/pkordes/trip-planner/backend/internal/plandiff"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// GenerateInput describes the trip a plan is generated for.
// A zero PartySize means a single traveller; a zero StartDate means today.
type GenerateInput struct {
	DestinationID string
	Tier          domain.BudgetTier
	Duration      int
	PartySize     int
	StartDate     time.Time
}

// ScaleResult is a plan re-budgeted for a different party size together
// with the field-level changes relative to the saved plan.
type ScaleResult struct {
	Plan    domain.Plan
	Changes []domain.PlanChange
}

// PlanService generates, stores and rescales itineraries.
type PlanService struct {
	catalog repo.CatalogRepo
	plans   repo.PlanRepo
	synth   *itinerary.Synthesizer
}

// NewPlanService constructs a PlanService. The synthesizer is shared by
// every request and is safe for concurrent use.
func NewPlanService(catalog repo.CatalogRepo, plans repo.PlanRepo, synth *itinerary.Synthesizer) *PlanService {
	return &PlanService{catalog: catalog, plans: plans, synth: synth}
}

// Estimate previews the whole-trip budget without generating a plan.
// Returns domain.ErrInvalidInput for an unknown tier or non-positive counts.
func (s *PlanService) Estimate(_ context.Context, tier domain.BudgetTier, duration, partySize int) (domain.Budget, error) {
	b, err := itinerary.EstimateBudget(tier, duration, partySize)
	if err != nil {
		return domain.Budget{}, fmt.Errorf("service.PlanService.Estimate: %w", err)
	}
	return b, nil
}

// Generate builds a plan without saving it.
// Synthesis always budgets for one traveller; a larger party is applied
// afterwards with the plan scaler, so day and meal costs stay per person.
//
// Returns domain.ErrInvalidInput, domain.ErrDestinationNotFound or
// domain.ErrRouteGenerationFailed, or ctx.Err() if ctx is done before the
// plan is assembled.
func (s *PlanService) Generate(ctx context.Context, in GenerateInput) (domain.Plan, error) {
	if err := validateGenerateInput(&in); err != nil {
		return domain.Plan{}, fmt.Errorf("service.PlanService.Generate: %w", err)
	}

	cat, err := s.loadCatalog(ctx, in.DestinationID)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("service.PlanService.Generate: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return domain.Plan{}, err
	}

	plan, err := s.synth.Synthesize(cat, in.Tier, in.Duration, in.StartDate)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("service.PlanService.Generate: %w", err)
	}

	plan, err = itinerary.ScaleForParty(plan, in.PartySize)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("service.PlanService.Generate: %w", err)
	}
	return plan, nil
}

// Create generates a plan and saves it.
func (s *PlanService) Create(ctx context.Context, in GenerateInput) (domain.Plan, error) {
	plan, err := s.Generate(ctx, in)
	if err != nil {
		return domain.Plan{}, err
	}

	saved, err := s.plans.Save(ctx, plan)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("service.PlanService.Create: %w", err)
	}
	return saved, nil
}

// GetByID returns a saved plan. Returns domain.ErrNotFound if absent.
func (s *PlanService) GetByID(ctx context.Context, id uuid.UUID) (domain.Plan, error) {
	plan, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("service.PlanService.GetByID: %w", err)
	}
	return plan, nil
}

// ListPaged returns one page of saved plans, newest first, and the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *PlanService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Plan, int64, error) {
	plans, total, err := s.plans.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.PlanService.ListPaged: %w", err)
	}
	if plans == nil {
		plans = []domain.Plan{}
	}
	return plans, total, nil
}

// Delete removes a saved plan. Returns domain.ErrNotFound if absent.
func (s *PlanService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.plans.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.PlanService.Delete: %w", err)
	}
	return nil
}

// Scale re-budgets a saved plan for partySize travellers. The saved plan is
// left untouched; the scaled copy keeps its id and itinerary.
func (s *PlanService) Scale(ctx context.Context, id uuid.UUID, partySize int) (ScaleResult, error) {
	plan, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return ScaleResult{}, fmt.Errorf("service.PlanService.Scale: %w", err)
	}

	scaled, err := itinerary.ScaleForParty(plan, partySize)
	if err != nil {
		return ScaleResult{}, fmt.Errorf("service.PlanService.Scale: %w", err)
	}

	changes, err := plandiff.Changes(plan, scaled)
	if err != nil {
		return ScaleResult{}, fmt.Errorf("service.PlanService.Scale: %w", err)
	}
	return ScaleResult{Plan: scaled, Changes: changes}, nil
}

// loadCatalog resolves the destination, then fetches its places, eateries
// and lodging concurrently. The first failing lookup cancels the others.
func (s *PlanService) loadCatalog(ctx context.Context, destinationID string) (itinerary.Catalog, error) {
	dest, err := s.catalog.GetDestination(ctx, destinationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return itinerary.Catalog{}, fmt.Errorf("%w: %q", domain.ErrDestinationNotFound, destinationID)
		}
		return itinerary.Catalog{}, err
	}

	cat := itinerary.Catalog{Destination: dest}
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cat.Places, err = s.catalog.ListPlaces(gCtx, dest.ID)
		return err
	})
	g.Go(func() error {
		var err error
		cat.Eateries, err = s.catalog.ListEateries(gCtx, dest.ID)
		return err
	})
	g.Go(func() error {
		var err error
		cat.Accommodations, err = s.catalog.ListAccommodations(gCtx, dest.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return itinerary.Catalog{}, err
	}
	return cat, nil
}

func validateGenerateInput(in *GenerateInput) error {
	if in.DestinationID == "" {
		return fmt.Errorf("%w: destination id is required", domain.ErrInvalidInput)
	}
	if !in.Tier.Valid() {
		return fmt.Errorf("%w: unknown budget tier %q", domain.ErrInvalidInput, in.Tier)
	}
	if in.Duration < 1 {
		return fmt.Errorf("%w: duration must be at least 1 day, got %d", domain.ErrInvalidInput, in.Duration)
	}
	if in.PartySize == 0 {
		in.PartySize = 1
	}
	if in.PartySize < 1 {
		return fmt.Errorf("%w: party size must be at least 1, got %d", domain.ErrInvalidInput, in.PartySize)
	}
	return nil
}
