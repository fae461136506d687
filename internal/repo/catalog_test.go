package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
	"github.com/pkordes/trip-planner/backend/testutil"
)

func ptr(f float64) *float64 { return &f }

// seedRome imports a small destination through the writer so the reader
// tests run against rows produced by the production import path.
func seedRome(t *testing.T, w repo.CatalogWriter) {
	t.Helper()
	err := w.Upsert(context.Background(), repo.CatalogEntry{
		Destination: domain.Destination{ID: "test-rome", Name: "Test Rome", Country: "Testitalia"},
		Places: []domain.Place{
			{ID: "test-colosseum", Name: "Colosseum", Category: "historic", VisitMinutes: 120, EntranceFee: ptr(18)},
			{ID: "test-pantheon", Name: "Pantheon", Category: "historic"},
		},
		Eateries: []domain.Eatery{
			{ID: "test-roscioli", Name: "Roscioli", Cuisine: "roman", PriceTier: 3},
		},
		Accommodations: []domain.Accommodation{
			{ID: "test-artemide", Name: "Hotel Artemide", Type: "hotel", NightlyPrice: 210, Amenities: []string{"wifi", "spa"}},
			{ID: "test-yellow", Name: "The Yellow", Type: "hostel", NightlyPrice: 40},
		},
	})
	require.NoError(t, err)
}

func TestCatalogRepo_ReadAfterUpsert(t *testing.T) {
	tx := testutil.BeginTx(t)
	seedRome(t, repo.NewCatalogWriter(tx))
	r := repo.NewCatalogRepo(tx)
	ctx := context.Background()

	d, err := r.GetDestination(ctx, "test-rome")
	require.NoError(t, err)
	assert.Equal(t, "Test Rome", d.Name)
	assert.False(t, d.CreatedAt.IsZero())

	places, err := r.ListPlaces(ctx, "test-rome")
	require.NoError(t, err)
	require.Len(t, places, 2)
	assert.Equal(t, "test-colosseum", places[0].ID)
	require.NotNil(t, places[0].EntranceFee)
	assert.Equal(t, 18.0, *places[0].EntranceFee)
	assert.Nil(t, places[1].EntranceFee)
	assert.Equal(t, domain.DefaultVisitMinutes, places[1].VisitMinutes)

	eateries, err := r.ListEateries(ctx, "test-rome")
	require.NoError(t, err)
	require.Len(t, eateries, 1)
	assert.Equal(t, 3, eateries[0].PriceTier)

	accs, err := r.ListAccommodations(ctx, "test-rome")
	require.NoError(t, err)
	require.Len(t, accs, 2)
	assert.Equal(t, "test-yellow", accs[0].ID, "lodging is ordered by nightly price")
	assert.Equal(t, []string{"wifi", "spa"}, accs[1].Amenities)
	assert.Equal(t, []string{}, accs[0].Amenities)
}

func TestCatalogRepo_UpsertReplacesChildren(t *testing.T) {
	tx := testutil.BeginTx(t)
	w := repo.NewCatalogWriter(tx)
	seedRome(t, w)
	ctx := context.Background()

	err := w.Upsert(ctx, repo.CatalogEntry{
		Destination: domain.Destination{ID: "test-rome", Name: "Test Roma"},
		Places:      []domain.Place{{ID: "test-forum", Name: "Roman Forum", VisitMinutes: 90}},
	})
	require.NoError(t, err)

	r := repo.NewCatalogRepo(tx)
	d, err := r.GetDestination(ctx, "test-rome")
	require.NoError(t, err)
	assert.Equal(t, "Test Roma", d.Name)

	places, err := r.ListPlaces(ctx, "test-rome")
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "test-forum", places[0].ID)

	accs, err := r.ListAccommodations(ctx, "test-rome")
	require.NoError(t, err)
	assert.Empty(t, accs)
}

func TestCatalogRepo_GetDestination_NotFound(t *testing.T) {
	r := repo.NewCatalogRepo(testutil.BeginTx(t))

	_, err := r.GetDestination(context.Background(), "atlantis")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogRepo_SearchDestinations(t *testing.T) {
	tx := testutil.BeginTx(t)
	seedRome(t, repo.NewCatalogWriter(tx))
	r := repo.NewCatalogRepo(tx)
	ctx := context.Background()
	page := domain.PaginationParams{Page: 1, Limit: domain.MaxPageLimit}

	byCountry, total, err := r.SearchDestinations(ctx, "TESTITAL", page)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, byCountry, 1)
	assert.Equal(t, "test-rome", byCountry[0].ID)

	none, total, err := r.SearchDestinations(ctx, "no-such-place-anywhere", page)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	for _, wildcard := range []string{"_", "%", "Test_Rome"} {
		got, total, err := r.SearchDestinations(ctx, wildcard, page)
		require.NoError(t, err)
		for _, d := range got {
			assert.NotEqual(t, "test-rome", d.ID, "%q is matched literally", wildcard)
		}
		assert.EqualValues(t, len(got), total)
	}

	_, all, err := r.ListDestinations(ctx, page)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, all, int64(1))
}
