package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

// withKyoto extends istanbulRepo with a second destination that has
// places but no eateries or lodging.
func withKyoto() *mockCatalogRepo {
	m := istanbulRepo()
	getIstanbul := m.getDestination
	m.getDestination = func(ctx context.Context, id string) (domain.Destination, error) {
		if id == "kyoto" {
			return domain.Destination{ID: "kyoto", Name: "Kyoto", Country: "Japan"}, nil
		}
		return getIstanbul(ctx, id)
	}
	listPlaces, listEateries, listAccs := m.listPlaces, m.listEateries, m.listAccommodations
	m.listPlaces = func(ctx context.Context, id string) ([]domain.Place, error) {
		if id == "kyoto" {
			return []domain.Place{{ID: "kinkaku-ji", Name: "Kinkaku-ji", EntranceFee: fee(4)}}, nil
		}
		return listPlaces(ctx, id)
	}
	m.listEateries = func(ctx context.Context, id string) ([]domain.Eatery, error) {
		if id == "kyoto" {
			return []domain.Eatery{}, nil
		}
		return listEateries(ctx, id)
	}
	m.listAccommodations = func(ctx context.Context, id string) ([]domain.Accommodation, error) {
		if id == "kyoto" {
			return []domain.Accommodation{}, nil
		}
		return listAccs(ctx, id)
	}
	return m
}

// ---- List / Search / Get tests ---------------------------------------------

func TestCatalogService_SearchDestinations_BlankQueryLists(t *testing.T) {
	var listed bool
	repo := &mockCatalogRepo{
		listDestinations: func(_ context.Context, _ domain.PaginationParams) ([]domain.Destination, int64, error) {
			listed = true
			return nil, 0, nil
		},
		searchDestinations: func(_ context.Context, _ string, _ domain.PaginationParams) ([]domain.Destination, int64, error) {
			t.Fatal("blank query must not hit search")
			return nil, 0, nil
		},
	}
	svc := service.NewCatalogService(repo)

	got, _, err := svc.SearchDestinations(context.Background(), "   ", domain.PaginationParams{Page: 1, Limit: 20})

	require.NoError(t, err)
	assert.True(t, listed)
	assert.NotNil(t, got)
}

func TestCatalogService_SearchDestinations_TrimsQuery(t *testing.T) {
	var gotQuery string
	repo := &mockCatalogRepo{
		searchDestinations: func(_ context.Context, q string, _ domain.PaginationParams) ([]domain.Destination, int64, error) {
			gotQuery = q
			return []domain.Destination{{ID: "kyoto"}}, 1, nil
		},
	}
	svc := service.NewCatalogService(repo)

	got, total, err := svc.SearchDestinations(context.Background(), "  kyo ", domain.PaginationParams{Page: 1, Limit: 20})

	require.NoError(t, err)
	assert.Equal(t, "kyo", gotQuery)
	assert.EqualValues(t, 1, total)
	assert.Len(t, got, 1)
}

func TestCatalogService_GetDestination_NotFound(t *testing.T) {
	svc := service.NewCatalogService(istanbulRepo())

	_, err := svc.GetDestination(context.Background(), "atlantis")

	assert.ErrorIs(t, err, domain.ErrDestinationNotFound)
}

// ---- Compare tests ---------------------------------------------------------

func TestCatalogService_Compare(t *testing.T) {
	svc := service.NewCatalogService(withKyoto())

	got, err := svc.Compare(context.Background(), []string{"kyoto", "istanbul", "kyoto"}, domain.TierEconomy, 2, 2)

	require.NoError(t, err)
	require.Len(t, got, 2, "duplicates are compared once")

	kyoto, istanbul := got[0], got[1]
	assert.Equal(t, "kyoto", kyoto.Destination.ID, "results keep request order")
	assert.Equal(t, 640.0, kyoto.Budget.Total())
	assert.Equal(t, kyoto.Budget, istanbul.Budget)

	assert.Equal(t, 1, kyoto.PlaceCount)
	assert.False(t, kyoto.GeneratableItinerary)
	assert.Nil(t, kyoto.CheapestNightly)
	assert.Equal(t, 4.0, kyoto.AverageEntranceFee)

	assert.Equal(t, 3, istanbul.PlaceCount)
	assert.Equal(t, 3, istanbul.EateryCount)
	assert.Equal(t, 2, istanbul.AccommodationCount)
	assert.True(t, istanbul.GeneratableItinerary)
	require.NotNil(t, istanbul.CheapestNightly)
	assert.Equal(t, 25.0, *istanbul.CheapestNightly)
	assert.Equal(t, 30.0, istanbul.AverageEntranceFee, "free places are left out of the average")
}

func TestCatalogService_Compare_UnknownDestination(t *testing.T) {
	svc := service.NewCatalogService(withKyoto())

	_, err := svc.Compare(context.Background(), []string{"istanbul", "atlantis"}, domain.TierEconomy, 2, 1)

	assert.ErrorIs(t, err, domain.ErrDestinationNotFound)
}

func TestCatalogService_Compare_InvalidInput(t *testing.T) {
	svc := service.NewCatalogService(withKyoto())
	ctx := context.Background()

	_, err := svc.Compare(ctx, nil, domain.TierEconomy, 2, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "empty id list")

	_, err = svc.Compare(ctx, []string{"a", "b", "c", "d", "e", "f"}, domain.TierEconomy, 2, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "too many ids")

	_, err = svc.Compare(ctx, []string{"istanbul"}, domain.TierEconomy, 0, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "zero duration")
}
