// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server. Methods are split into resource files
// (health.go, destination.go, plan.go) but share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

// PlanServicer defines the plan operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching storage or the synthesizer.
type PlanServicer interface {
	Estimate(ctx context.Context, tier domain.BudgetTier, duration, partySize int) (domain.Budget, error)
	Generate(ctx context.Context, in service.GenerateInput) (domain.Plan, error)
	Create(ctx context.Context, in service.GenerateInput) (domain.Plan, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Plan, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Plan, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Scale(ctx context.Context, id uuid.UUID, partySize int) (service.ScaleResult, error)
}

// CatalogServicer defines the catalog operations the handlers depend on.
type CatalogServicer interface {
	ListDestinations(ctx context.Context, p domain.PaginationParams) ([]domain.Destination, int64, error)
	SearchDestinations(ctx context.Context, query string, p domain.PaginationParams) ([]domain.Destination, int64, error)
	GetDestination(ctx context.Context, id string) (domain.Destination, error)
	Compare(ctx context.Context, ids []string, tier domain.BudgetTier, duration, partySize int) ([]domain.DestinationComparison, error)
}

// Server holds the dependencies of every handler.
// Wire it in main.go via Server.Routes.
type Server struct {
	plans    PlanServicer
	catalog  CatalogServicer
	validate *validator.Validate
}

// NewServer constructs the Server with all its dependencies.
func NewServer(plans PlanServicer, catalog CatalogServicer) *Server {
	return &Server{plans: plans, catalog: catalog, validate: newValidator()}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil)
}

// Routes registers every endpoint on a new chi router.
// The generation middlewares (typically the rate limiter) wrap only the
// routes that run the synthesizer.
func (s *Server) Routes(generation ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	})

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/destinations", func(r chi.Router) {
		r.Get("/", s.ListDestinations)
		r.Get("/compare", s.CompareDestinations)
		r.Get("/{id}", s.GetDestination)
	})

	r.Post("/budget/estimate", s.EstimateBudget)

	r.Route("/plans", func(r chi.Router) {
		r.Get("/", s.ListPlans)
		r.Get("/{id}", s.GetPlan)
		r.Delete("/{id}", s.DeletePlan)

		r.Group(func(r chi.Router) {
			r.Use(generation...)
			r.Post("/", s.CreatePlan)
			r.Post("/preview", s.PreviewPlan)
			r.Post("/{id}/scale", s.ScalePlan)
		})
	})
	return r
}
