package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/itinerary"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// MaxCompare caps how many destinations one Compare call looks at.
const MaxCompare = 5

// CatalogService exposes the destination catalog.
type CatalogService struct {
	catalog repo.CatalogRepo
}

// NewCatalogService constructs a CatalogService backed by the provided CatalogRepo.
func NewCatalogService(catalog repo.CatalogRepo) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// ListDestinations returns one page of destinations ordered by name.
func (s *CatalogService) ListDestinations(ctx context.Context, p domain.PaginationParams) ([]domain.Destination, int64, error) {
	dests, total, err := s.catalog.ListDestinations(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.CatalogService.ListDestinations: %w", err)
	}
	return orEmpty(dests), total, nil
}

// SearchDestinations matches query against destination names and countries.
// A blank query behaves like ListDestinations.
func (s *CatalogService) SearchDestinations(ctx context.Context, query string, p domain.PaginationParams) ([]domain.Destination, int64, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.ListDestinations(ctx, p)
	}

	dests, total, err := s.catalog.SearchDestinations(ctx, query, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.CatalogService.SearchDestinations: %w", err)
	}
	return orEmpty(dests), total, nil
}

// GetDestination returns one destination.
// Returns domain.ErrDestinationNotFound if the id does not resolve.
func (s *CatalogService) GetDestination(ctx context.Context, id string) (domain.Destination, error) {
	d, err := s.catalog.GetDestination(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Destination{}, fmt.Errorf("service.CatalogService.GetDestination: %w: %q", domain.ErrDestinationNotFound, id)
		}
		return domain.Destination{}, fmt.Errorf("service.CatalogService.GetDestination: %w", err)
	}
	return d, nil
}

// Compare estimates the same trip at each destination and reports how well
// stocked each catalog is. Results keep the order of ids; duplicates are
// compared once.
//
// Returns domain.ErrInvalidInput for an empty or oversized id list or bad
// trip parameters, and domain.ErrDestinationNotFound if any id is unknown.
func (s *CatalogService) Compare(ctx context.Context, ids []string, tier domain.BudgetTier, duration, partySize int) ([]domain.DestinationComparison, error) {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return nil, fmt.Errorf("service.CatalogService.Compare: %w: at least one destination is required", domain.ErrInvalidInput)
	}
	if len(ids) > MaxCompare {
		return nil, fmt.Errorf("service.CatalogService.Compare: %w: at most %d destinations can be compared", domain.ErrInvalidInput, MaxCompare)
	}

	budget, err := itinerary.EstimateBudget(tier, duration, partySize)
	if err != nil {
		return nil, fmt.Errorf("service.CatalogService.Compare: %w", err)
	}

	out := make([]domain.DestinationComparison, len(ids))
	g, gCtx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			c, err := s.compareOne(gCtx, id)
			if err != nil {
				return err
			}
			c.Budget = budget
			out[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("service.CatalogService.Compare: %w", err)
	}
	return out, nil
}

func (s *CatalogService) compareOne(ctx context.Context, id string) (domain.DestinationComparison, error) {
	d, err := s.catalog.GetDestination(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.DestinationComparison{}, fmt.Errorf("%w: %q", domain.ErrDestinationNotFound, id)
		}
		return domain.DestinationComparison{}, err
	}
	places, err := s.catalog.ListPlaces(ctx, id)
	if err != nil {
		return domain.DestinationComparison{}, err
	}
	eateries, err := s.catalog.ListEateries(ctx, id)
	if err != nil {
		return domain.DestinationComparison{}, err
	}
	accs, err := s.catalog.ListAccommodations(ctx, id)
	if err != nil {
		return domain.DestinationComparison{}, err
	}

	c := domain.DestinationComparison{
		Destination:          d,
		PlaceCount:           len(places),
		EateryCount:          len(eateries),
		AccommodationCount:   len(accs),
		GeneratableItinerary: len(places) > 0 && len(eateries) > 0,
	}

	var feeSum float64
	var feeCount int
	for _, p := range places {
		if p.EntranceFee != nil {
			feeSum += *p.EntranceFee
			feeCount++
		}
	}
	if feeCount > 0 {
		c.AverageEntranceFee = feeSum / float64(feeCount)
	}

	for _, a := range accs {
		if c.CheapestNightly == nil || a.NightlyPrice < *c.CheapestNightly {
			price := a.NightlyPrice
			c.CheapestNightly = &price
		}
	}
	return c, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func orEmpty(d []domain.Destination) []domain.Destination {
	if d == nil {
		return []domain.Destination{}
	}
	return d
}
