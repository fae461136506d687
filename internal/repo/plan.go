// Package repo contains all database access logic for the trip planner.
// Each resource has its own file with an interface and a Postgres implementation;
// in-memory implementations of the same interfaces live in repo/mem.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// PlanRepo defines the persistence operations for saved plans.
// Plans are immutable once saved: there is no Update.
type PlanRepo interface {
	// Save stores a generated plan under its own ID.
	// Returns domain.ErrInvalidInput if a plan with that ID is already saved.
	Save(ctx context.Context, plan domain.Plan) (domain.Plan, error)

	// GetByID retrieves a saved plan. Returns domain.ErrNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Plan, error)

	// ListPaged returns one page of saved plans, newest first, and the total count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Plan, int64, error)

	// Delete removes a saved plan. Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgPlanRepo is the Postgres implementation of PlanRepo.
// The budget and the day-by-day itinerary are stored as jsonb documents.
type pgPlanRepo struct {
	db db
}

// NewPlanRepo constructs a PlanRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPlanRepo(db db) PlanRepo {
	return &pgPlanRepo{db: db}
}

const planColumns = `id, destination_id, tier, duration, party_size, start_date, budget, itinerary, created_at`

// Save inserts a plan row and returns the persisted record.
func (r *pgPlanRepo) Save(ctx context.Context, plan domain.Plan) (domain.Plan, error) {
	const q = `
		INSERT INTO plans (` + planColumns + `)
		VALUES (@id, @destination_id, @tier, @duration, @party_size, @start_date, @budget, @itinerary, @created_at)
		RETURNING ` + planColumns

	args := pgx.NamedArgs{
		"id":             plan.ID,
		"destination_id": plan.DestinationID,
		"tier":           string(plan.Tier),
		"duration":       plan.Duration,
		"party_size":     plan.PartySize,
		"start_date":     plan.StartDate,
		"budget":         plan.Budget,
		"itinerary":      plan.Days,
		"created_at":     plan.CreatedAt,
	}

	result, err := scanPlan(r.db.QueryRow(ctx, q, args))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.Plan{}, fmt.Errorf("repo.PlanRepo.Save: %w: plan %s already saved", domain.ErrInvalidInput, plan.ID)
		}
		return domain.Plan{}, fmt.Errorf("repo.PlanRepo.Save: %w", err)
	}
	return result, nil
}

// GetByID retrieves a plan by primary key.
func (r *pgPlanRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Plan, error) {
	const q = `SELECT ` + planColumns + ` FROM plans WHERE id = @id`

	result, err := scanPlan(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Plan{}, fmt.Errorf("repo.PlanRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns plans ordered by created_at descending (most recent first).
func (r *pgPlanRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Plan, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM plans`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.PlanRepo.ListPaged: count: %w", err)
	}

	const q = `
		SELECT ` + planColumns + `
		FROM plans
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.PlanRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	plans := []domain.Plan{}
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.PlanRepo.ListPaged: scan: %w", err)
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.PlanRepo.ListPaged: rows: %w", err)
	}
	return plans, total, nil
}

// Delete removes a plan by primary key.
func (r *pgPlanRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM plans WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.PlanRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PlanRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanPlan maps a single plans row into a domain.Plan.
// jsonb columns decode straight into the domain types.
func scanPlan(s scanner) (domain.Plan, error) {
	var (
		p         domain.Plan
		id        pgtype.UUID
		tier      string
		startDate pgtype.Date
	)

	err := s.Scan(&id, &p.DestinationID, &tier, &p.Duration, &p.PartySize, &startDate, &p.Budget, &p.Days, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Plan{}, domain.ErrNotFound
		}
		return domain.Plan{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	p.Tier = domain.BudgetTier(tier)
	p.StartDate = startDate.Time
	return p, nil
}
