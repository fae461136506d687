package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// mockCatalogRepo is a hand-written test double for repo.CatalogRepo.
// Each method is a function field; set only the ones your test needs.
type mockCatalogRepo struct {
	getDestination     func(ctx context.Context, id string) (domain.Destination, error)
	listDestinations   func(ctx context.Context, p domain.PaginationParams) ([]domain.Destination, int64, error)
	searchDestinations func(ctx context.Context, q string, p domain.PaginationParams) ([]domain.Destination, int64, error)
	listPlaces         func(ctx context.Context, id string) ([]domain.Place, error)
	listEateries       func(ctx context.Context, id string) ([]domain.Eatery, error)
	listAccommodations func(ctx context.Context, id string) ([]domain.Accommodation, error)
}

func (m *mockCatalogRepo) GetDestination(ctx context.Context, id string) (domain.Destination, error) {
	return m.getDestination(ctx, id)
}
func (m *mockCatalogRepo) ListDestinations(ctx context.Context, p domain.PaginationParams) ([]domain.Destination, int64, error) {
	return m.listDestinations(ctx, p)
}
func (m *mockCatalogRepo) SearchDestinations(ctx context.Context, q string, p domain.PaginationParams) ([]domain.Destination, int64, error) {
	return m.searchDestinations(ctx, q, p)
}
func (m *mockCatalogRepo) ListPlaces(ctx context.Context, id string) ([]domain.Place, error) {
	return m.listPlaces(ctx, id)
}
func (m *mockCatalogRepo) ListEateries(ctx context.Context, id string) ([]domain.Eatery, error) {
	return m.listEateries(ctx, id)
}
func (m *mockCatalogRepo) ListAccommodations(ctx context.Context, id string) ([]domain.Accommodation, error) {
	return m.listAccommodations(ctx, id)
}

// mockPlanRepo is a hand-written test double for repo.PlanRepo.
type mockPlanRepo struct {
	save      func(ctx context.Context, plan domain.Plan) (domain.Plan, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Plan, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Plan, int64, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockPlanRepo) Save(ctx context.Context, plan domain.Plan) (domain.Plan, error) {
	return m.save(ctx, plan)
}
func (m *mockPlanRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Plan, error) {
	return m.getByID(ctx, id)
}
func (m *mockPlanRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Plan, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockPlanRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// compile-time checks: the mocks must satisfy the repo interfaces.
var (
	_ repo.CatalogRepo = (*mockCatalogRepo)(nil)
	_ repo.PlanRepo    = (*mockPlanRepo)(nil)
)

func fee(f float64) *float64 { return &f }

// istanbulRepo returns a catalog mock serving one well-stocked destination.
// Unknown ids report domain.ErrNotFound the way both repo implementations do.
func istanbulRepo() *mockCatalogRepo {
	return &mockCatalogRepo{
		getDestination: func(_ context.Context, id string) (domain.Destination, error) {
			if id != "istanbul" {
				return domain.Destination{}, domain.ErrNotFound
			}
			return domain.Destination{ID: "istanbul", Name: "Istanbul", Country: "Türkiye"}, nil
		},
		listPlaces: func(_ context.Context, _ string) ([]domain.Place, error) {
			return []domain.Place{
				{ID: "hagia-sophia", Name: "Hagia Sophia", VisitMinutes: 90},
				{ID: "topkapi-palace", Name: "Topkapı Palace", VisitMinutes: 180, EntranceFee: fee(45)},
				{ID: "galata-tower", Name: "Galata Tower", VisitMinutes: 60, EntranceFee: fee(15)},
			}, nil
		},
		listEateries: func(_ context.Context, _ string) ([]domain.Eatery, error) {
			return []domain.Eatery{
				{ID: "hamdi", Name: "Hamdi", PriceTier: 2},
				{ID: "karakoy-lokantasi", Name: "Karaköy Lokantası", PriceTier: 2},
				{ID: "mikla", Name: "Mikla", PriceTier: 4},
			}, nil
		},
		listAccommodations: func(_ context.Context, _ string) ([]domain.Accommodation, error) {
			return []domain.Accommodation{
				{ID: "sultan-hostel", Name: "Sultan Hostel", NightlyPrice: 25},
				{ID: "pera-palace", Name: "Pera Palace", NightlyPrice: 320},
			}, nil
		},
	}
}
