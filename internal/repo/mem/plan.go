package mem

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// PlanStore is an in-memory repo.PlanRepo.
// Saves and deletes are serialised by an RWMutex; plans are deep-copied on
// save and on every read.
type PlanStore struct {
	mu    sync.RWMutex
	plans map[uuid.UUID]domain.Plan
}

var _ repo.PlanRepo = (*PlanStore)(nil)

// NewPlanStore returns an empty plan store.
func NewPlanStore() *PlanStore {
	return &PlanStore{plans: make(map[uuid.UUID]domain.Plan)}
}

func (s *PlanStore) Save(_ context.Context, plan domain.Plan) (domain.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.plans[plan.ID]; exists {
		return domain.Plan{}, fmt.Errorf("mem.PlanStore.Save: %w: plan %s already saved", domain.ErrInvalidInput, plan.ID)
	}
	s.plans[plan.ID] = plan.Clone()
	return plan.Clone(), nil
}

func (s *PlanStore) GetByID(_ context.Context, id uuid.UUID) (domain.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plan, ok := s.plans[id]
	if !ok {
		return domain.Plan{}, fmt.Errorf("mem.PlanStore.GetByID: %w", domain.ErrNotFound)
	}
	return plan.Clone(), nil
}

// ListPaged returns plans newest first, matching the Postgres ordering.
func (s *PlanStore) ListPaged(_ context.Context, p domain.PaginationParams) ([]domain.Plan, int64, error) {
	s.mu.RLock()
	all := make([]domain.Plan, 0, len(s.plans))
	for _, plan := range s.plans {
		all = append(all, plan)
	}
	s.mu.RUnlock()

	slices.SortFunc(all, func(a, b domain.Plan) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(a.ID.String(), b.ID.String()))
	})

	start, end := p.Window(len(all))
	out := make([]domain.Plan, 0, end-start)
	for _, plan := range all[start:end] {
		out = append(out, plan.Clone())
	}
	return out, int64(len(all)), nil
}

func (s *PlanStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.plans[id]; !ok {
		return fmt.Errorf("mem.PlanStore.Delete: %w", domain.ErrNotFound)
	}
	delete(s.plans, id)
	return nil
}
