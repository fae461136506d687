package itinerary

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// PlacesPerDay is the number of place visits scheduled on each day when the
// catalog has enough places.
const PlacesPerDay = 2

// mealShares splits a day's food allotment across the three main meals.
// The shares sum to 1.
var mealShares = []struct {
	slot  domain.MealSlot
	share float64
}{
	{domain.SlotBreakfast, 0.25},
	{domain.SlotLunch, 0.35},
	{domain.SlotDinner, 0.40},
}

// Catalog is everything the synthesizer needs to know about a destination.
type Catalog struct {
	Destination    domain.Destination
	Places         []domain.Place
	Eateries       []domain.Eatery
	Accommodations []domain.Accommodation
}

// Synthesizer builds day-by-day plans from a destination catalog.
// Place and eatery selection is pseudo-random; the random source, clock and
// id generator are injectable so output can be reproduced in tests.
//
// A Synthesizer is safe for concurrent use.
type Synthesizer struct {
	mu    sync.Mutex
	rng   *rand.Rand
	now   func() time.Time
	newID func() uuid.UUID
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithSeed makes selection deterministic for a given seed.
func WithSeed(seed uint64) Option {
	return func(s *Synthesizer) {
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithClock overrides the clock used for CreatedAt and the default start date.
func WithClock(now func() time.Time) Option {
	return func(s *Synthesizer) { s.now = now }
}

// WithIDGenerator overrides how plan, day and meal ids are minted.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(s *Synthesizer) { s.newID = newID }
}

// NewSynthesizer returns a Synthesizer seeded from the runtime's random
// source unless WithSeed is given.
func NewSynthesizer(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:   time.Now,
		newID: uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize builds a plan of duration days for a single traveller.
// Days are dated from start; a zero start means the current day.
//
// Returns domain.ErrInvalidInput for a bad tier or duration and
// domain.ErrRouteGenerationFailed when the catalog has no places or no
// eateries. A missing lodging catalog is not an error: days are then
// generated without accommodation.
func (s *Synthesizer) Synthesize(c Catalog, tier domain.BudgetTier, duration int, start time.Time) (domain.Plan, error) {
	budget, err := EstimateBudget(tier, duration, 1)
	if err != nil {
		return domain.Plan{}, err
	}
	if len(c.Places) == 0 {
		return domain.Plan{}, fmt.Errorf("%w: destination %q has no places", domain.ErrRouteGenerationFailed, c.Destination.ID)
	}
	if len(c.Eateries) == 0 {
		return domain.Plan{}, fmt.Errorf("%w: destination %q has no eateries", domain.ErrRouteGenerationFailed, c.Destination.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if start.IsZero() {
		start = now
	}
	start = truncateToDay(start)

	acc := chooseAccommodation(tier, c.Accommodations)
	dailyFood := budget.Food / float64(duration)
	dailyCost := budget.Total() / float64(duration)

	days := make([]domain.DayPlan, duration)
	for i := range days {
		days[i] = domain.DayPlan{
			ID:            s.newID(),
			Day:           i + 1,
			Date:          start.AddDate(0, 0, i),
			Places:        s.pickPlaces(c.Places),
			Meals:         s.pickMeals(c.Eateries, dailyFood),
			Accommodation: acc,
			EstimatedCost: dailyCost,
		}
	}

	return domain.Plan{
		ID:            s.newID(),
		DestinationID: c.Destination.ID,
		Tier:          tier,
		Duration:      duration,
		PartySize:     1,
		StartDate:     start,
		Budget:        budget,
		Days:          days,
		CreatedAt:     now,
	}, nil
}

// pickPlaces returns up to PlacesPerDay distinct places in random order.
func (s *Synthesizer) pickPlaces(places []domain.Place) []domain.Place {
	n := min(PlacesPerDay, len(places))
	out := make([]domain.Place, 0, n)
	for _, idx := range s.rng.Perm(len(places))[:n] {
		out = append(out, copyPlace(places[idx]))
	}
	return out
}

// pickMeals assigns an eatery to breakfast, lunch and dinner. Eateries are
// drawn from a fresh permutation, so they differ within the day whenever
// the catalog has at least three.
func (s *Synthesizer) pickMeals(eateries []domain.Eatery, dailyFood float64) []domain.Meal {
	perm := s.rng.Perm(len(eateries))
	meals := make([]domain.Meal, len(mealShares))
	for i, ms := range mealShares {
		meals[i] = domain.Meal{
			ID:            s.newID(),
			Slot:          ms.slot,
			Eatery:        eateries[perm[i%len(perm)]],
			EstimatedCost: dailyFood * ms.share,
		}
	}
	return meals
}

// chooseAccommodation picks the single lodging used for the whole trip.
// Options are ranked by nightly price: economy takes the cheapest, luxury
// the most expensive and standard the median.
func chooseAccommodation(tier domain.BudgetTier, options []domain.Accommodation) *domain.Accommodation {
	if len(options) == 0 {
		return nil
	}
	ranked := slices.Clone(options)
	slices.SortStableFunc(ranked, func(a, b domain.Accommodation) int {
		if c := cmp.Compare(a.NightlyPrice, b.NightlyPrice); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	var idx int
	switch tier {
	case domain.TierLuxury:
		idx = len(ranked) - 1
	case domain.TierStandard:
		idx = (len(ranked) - 1) / 2
	}
	acc := ranked[idx]
	acc.Amenities = slices.Clone(acc.Amenities)
	return &acc
}

func copyPlace(p domain.Place) domain.Place {
	if p.EntranceFee != nil {
		fee := *p.EntranceFee
		p.EntranceFee = &fee
	}
	return p
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
