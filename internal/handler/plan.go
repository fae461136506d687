package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// EstimateBudget handles POST /budget/estimate.
func (s *Server) EstimateBudget(w http.ResponseWriter, r *http.Request) {
	var req EstimateRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeRequestError(w, err)
		return
	}
	if req.PartySize == 0 {
		req.PartySize = 1
	}

	b, err := s.plans.Estimate(r.Context(), domain.BudgetTier(req.Tier), req.Duration, req.PartySize)
	if err != nil {
		writeServiceError(w, r, err, "budget")
		return
	}
	writeJSON(w, http.StatusOK, EstimateResponse{
		Tier:      req.Tier,
		Duration:  req.Duration,
		PartySize: req.PartySize,
		Budget:    budgetToResponse(b),
	})
}

// PreviewPlan handles POST /plans/preview: generates a plan without saving it.
func (s *Server) PreviewPlan(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeRequestError(w, err)
		return
	}

	plan, err := s.plans.Generate(r.Context(), req.toInput())
	if err != nil {
		writeServiceError(w, r, err, "plan")
		return
	}
	writeJSON(w, http.StatusOK, planToResponse(plan))
}

// CreatePlan handles POST /plans: generates a plan and saves it.
func (s *Server) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeRequestError(w, err)
		return
	}

	plan, err := s.plans.Create(r.Context(), req.toInput())
	if err != nil {
		writeServiceError(w, r, err, "plan")
		return
	}
	w.Header().Set("Location", "/plans/"+plan.ID.String())
	writeJSON(w, http.StatusCreated, planToResponse(plan))
}

// ListPlans handles GET /plans.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListPlans(w http.ResponseWriter, r *http.Request) {
	params, err := pagination(r)
	if err != nil {
		writeRequestError(w, err)
		return
	}

	plans, total, err := s.plans.ListPaged(r.Context(), params)
	if err != nil {
		writeServiceError(w, r, err, "plan")
		return
	}

	data := make([]PlanSummary, len(plans))
	for i, p := range plans {
		data[i] = planToSummary(p)
	}
	writeJSON(w, http.StatusOK, PlanList{Data: data, Pagination: paginationOf(params, total)})
}

// GetPlan handles GET /plans/{id}.
func (s *Server) GetPlan(w http.ResponseWriter, r *http.Request) {
	id, err := planID(r)
	if err != nil {
		writeRequestError(w, err)
		return
	}

	plan, err := s.plans.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "plan")
		return
	}
	writeJSON(w, http.StatusOK, planToResponse(plan))
}

// DeletePlan handles DELETE /plans/{id}.
func (s *Server) DeletePlan(w http.ResponseWriter, r *http.Request) {
	id, err := planID(r)
	if err != nil {
		writeRequestError(w, err)
		return
	}

	if err := s.plans.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "plan")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ScalePlan handles POST /plans/{id}/scale.
// The saved plan is not modified; the response carries the scaled copy.
func (s *Server) ScalePlan(w http.ResponseWriter, r *http.Request) {
	id, err := planID(r)
	if err != nil {
		writeRequestError(w, err)
		return
	}
	var req ScaleRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeRequestError(w, err)
		return
	}

	res, err := s.plans.Scale(r.Context(), id, req.PartySize)
	if err != nil {
		writeServiceError(w, r, err, "plan")
		return
	}
	changes := res.Changes
	if changes == nil {
		changes = []domain.PlanChange{}
	}
	writeJSON(w, http.StatusOK, ScaleResponse{Plan: planToResponse(res.Plan), Changes: changes})
}

func planID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, invalid("id must be a UUID (got: %s)", raw)
	}
	return id, nil
}
