// Package mem provides in-memory implementations of the repo interfaces.
// They back the "memory" storage mode and the planner CLI, and are safe for
// concurrent use.
package mem

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// Catalog is an in-memory repo.CatalogRepo.
// Records are copied on the way in and on the way out, so callers can never
// modify stored data through a returned slice.
type Catalog struct {
	mu             sync.RWMutex
	destinations   map[string]domain.Destination
	places         map[string][]domain.Place
	eateries       map[string][]domain.Eatery
	accommodations map[string][]domain.Accommodation
}

var (
	_ repo.CatalogRepo   = (*Catalog)(nil)
	_ repo.CatalogWriter = (*Catalog)(nil)
)

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		destinations:   make(map[string]domain.Destination),
		places:         make(map[string][]domain.Place),
		eateries:       make(map[string][]domain.Eatery),
		accommodations: make(map[string][]domain.Accommodation),
	}
}

// Add registers a destination together with its places, eateries and
// lodging. The DestinationID of every record is set to d.ID.
// Returns domain.ErrInvalidInput if d.ID is empty or already registered.
func (c *Catalog) Add(d domain.Destination, places []domain.Place, eateries []domain.Eatery, accs []domain.Accommodation) error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("mem.Catalog.Add: %w: destination id is required", domain.ErrInvalidInput)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.destinations[d.ID]; exists {
		return fmt.Errorf("mem.Catalog.Add: %w: destination %q already exists", domain.ErrInvalidInput, d.ID)
	}
	c.put(d, places, eateries, accs)
	return nil
}

// Upsert inserts or replaces a destination and all of its records.
func (c *Catalog) Upsert(_ context.Context, e repo.CatalogEntry) error {
	if strings.TrimSpace(e.Destination.ID) == "" {
		return fmt.Errorf("mem.Catalog.Upsert: %w: destination id is required", domain.ErrInvalidInput)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if prev, ok := c.destinations[e.Destination.ID]; ok && e.Destination.CreatedAt.IsZero() {
		e.Destination.CreatedAt = prev.CreatedAt
	}
	c.put(e.Destination, e.Places, e.Eateries, e.Accommodations)
	return nil
}

// put stores d and its records. The caller holds the write lock.
func (c *Catalog) put(d domain.Destination, places []domain.Place, eateries []domain.Eatery, accs []domain.Accommodation) {
	c.destinations[d.ID] = d
	c.places[d.ID] = withDestination(places, d.ID, func(p *domain.Place, id string) {
		p.DestinationID = id
		p.EntranceFee = cloneFee(p.EntranceFee)
	})
	c.eateries[d.ID] = withDestination(eateries, d.ID, func(e *domain.Eatery, id string) { e.DestinationID = id })
	c.accommodations[d.ID] = withDestination(accs, d.ID, func(a *domain.Accommodation, id string) {
		a.DestinationID = id
		a.Amenities = slices.Clone(a.Amenities)
	})
	slices.SortFunc(c.places[d.ID], func(a, b domain.Place) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	slices.SortFunc(c.eateries[d.ID], func(a, b domain.Eatery) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	slices.SortFunc(c.accommodations[d.ID], func(a, b domain.Accommodation) int {
		return cmp.Or(cmp.Compare(a.NightlyPrice, b.NightlyPrice), cmp.Compare(a.ID, b.ID))
	})
}

func (c *Catalog) GetDestination(_ context.Context, id string) (domain.Destination, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	d, ok := c.destinations[id]
	if !ok {
		return domain.Destination{}, fmt.Errorf("mem.Catalog.GetDestination: %w", domain.ErrNotFound)
	}
	return d, nil
}

func (c *Catalog) ListDestinations(ctx context.Context, p domain.PaginationParams) ([]domain.Destination, int64, error) {
	return c.SearchDestinations(ctx, "", p)
}

func (c *Catalog) SearchDestinations(_ context.Context, query string, p domain.PaginationParams) ([]domain.Destination, int64, error) {
	q := strings.ToLower(strings.TrimSpace(query))

	c.mu.RLock()
	matches := make([]domain.Destination, 0, len(c.destinations))
	for _, d := range c.destinations {
		if q == "" || strings.Contains(strings.ToLower(d.Name), q) || strings.Contains(strings.ToLower(d.Country), q) {
			matches = append(matches, d)
		}
	}
	c.mu.RUnlock()

	slices.SortFunc(matches, func(a, b domain.Destination) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	start, end := p.Window(len(matches))
	return slices.Clone(matches[start:end]), int64(len(matches)), nil
}

func (c *Catalog) ListPlaces(_ context.Context, destinationID string) ([]domain.Place, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := copyOf(c.places[destinationID])
	for i := range out {
		out[i].EntranceFee = cloneFee(out[i].EntranceFee)
	}
	return out, nil
}

func (c *Catalog) ListEateries(_ context.Context, destinationID string) ([]domain.Eatery, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copyOf(c.eateries[destinationID]), nil
}

func (c *Catalog) ListAccommodations(_ context.Context, destinationID string) ([]domain.Accommodation, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := copyOf(c.accommodations[destinationID])
	for i := range out {
		out[i].Amenities = slices.Clone(out[i].Amenities)
	}
	return out, nil
}

func withDestination[T any](in []T, id string, set func(*T, string)) []T {
	out := copyOf(in)
	for i := range out {
		set(&out[i], id)
	}
	return out
}

func cloneFee(fee *float64) *float64 {
	if fee == nil {
		return nil
	}
	v := *fee
	return &v
}

// copyOf returns a shallow copy of s that is never nil.
func copyOf[T any](s []T) []T {
	return append(make([]T, 0, len(s)), s...)
}
