package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/handler"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

// mockPlanServicer is a test double for handler.PlanServicer.
// Set only the method fields your test needs.
type mockPlanServicer struct {
	estimate  func(ctx context.Context, tier domain.BudgetTier, duration, partySize int) (domain.Budget, error)
	generate  func(ctx context.Context, in service.GenerateInput) (domain.Plan, error)
	create    func(ctx context.Context, in service.GenerateInput) (domain.Plan, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Plan, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Plan, int64, error)
	delete    func(ctx context.Context, id uuid.UUID) error
	scale     func(ctx context.Context, id uuid.UUID, partySize int) (service.ScaleResult, error)
}

func (m *mockPlanServicer) Estimate(ctx context.Context, tier domain.BudgetTier, duration, partySize int) (domain.Budget, error) {
	return m.estimate(ctx, tier, duration, partySize)
}
func (m *mockPlanServicer) Generate(ctx context.Context, in service.GenerateInput) (domain.Plan, error) {
	return m.generate(ctx, in)
}
func (m *mockPlanServicer) Create(ctx context.Context, in service.GenerateInput) (domain.Plan, error) {
	return m.create(ctx, in)
}
func (m *mockPlanServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Plan, error) {
	return m.getByID(ctx, id)
}
func (m *mockPlanServicer) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Plan, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockPlanServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockPlanServicer) Scale(ctx context.Context, id uuid.UUID, partySize int) (service.ScaleResult, error) {
	return m.scale(ctx, id, partySize)
}

// mockCatalogServicer is a test double for handler.CatalogServicer.
type mockCatalogServicer struct {
	list    func(ctx context.Context, p domain.PaginationParams) ([]domain.Destination, int64, error)
	search  func(ctx context.Context, q string, p domain.PaginationParams) ([]domain.Destination, int64, error)
	get     func(ctx context.Context, id string) (domain.Destination, error)
	compare func(ctx context.Context, ids []string, tier domain.BudgetTier, duration, partySize int) ([]domain.DestinationComparison, error)
}

func (m *mockCatalogServicer) ListDestinations(ctx context.Context, p domain.PaginationParams) ([]domain.Destination, int64, error) {
	return m.list(ctx, p)
}
func (m *mockCatalogServicer) SearchDestinations(ctx context.Context, q string, p domain.PaginationParams) ([]domain.Destination, int64, error) {
	return m.search(ctx, q, p)
}
func (m *mockCatalogServicer) GetDestination(ctx context.Context, id string) (domain.Destination, error) {
	return m.get(ctx, id)
}
func (m *mockCatalogServicer) Compare(ctx context.Context, ids []string, tier domain.BudgetTier, duration, partySize int) ([]domain.DestinationComparison, error) {
	return m.compare(ctx, ids, tier, duration, partySize)
}

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.PlanServicer    = (*mockPlanServicer)(nil)
	_ handler.CatalogServicer = (*mockCatalogServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mocks into the chi router,
// exactly as main.go does in production.
func newHTTPHandler(plans handler.PlanServicer, catalog handler.CatalogServicer, generation ...func(http.Handler) http.Handler) http.Handler {
	return handler.NewServer(plans, catalog).Routes(generation...)
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// do sends req through h and returns the recorder.
func do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	if req.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error
}
