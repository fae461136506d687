package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// CatalogRepo is the read-only catalog of destinations and everything that
// can be visited, eaten at, or slept in there.
type CatalogRepo interface {
	// GetDestination returns a single destination.
	// Returns domain.ErrNotFound if no destination has that ID.
	GetDestination(ctx context.Context, id string) (domain.Destination, error)

	// ListDestinations returns one page of destinations ordered by name and the total count.
	ListDestinations(ctx context.Context, p domain.PaginationParams) ([]domain.Destination, int64, error)

	// SearchDestinations is ListDestinations restricted to destinations whose
	// name or country contains query (case-insensitive).
	SearchDestinations(ctx context.Context, query string, p domain.PaginationParams) ([]domain.Destination, int64, error)

	// ListPlaces returns the places at a destination ordered by name.
	ListPlaces(ctx context.Context, destinationID string) ([]domain.Place, error)

	// ListEateries returns the eateries at a destination ordered by name.
	ListEateries(ctx context.Context, destinationID string) ([]domain.Eatery, error)

	// ListAccommodations returns the lodging at a destination ordered by nightly price.
	ListAccommodations(ctx context.Context, destinationID string) ([]domain.Accommodation, error)
}

// CatalogEntry is one destination together with everything listed there.
// It is the unit of catalog import.
type CatalogEntry struct {
	Destination    domain.Destination     `yaml:",inline"`
	Places         []domain.Place         `yaml:"places"`
	Eateries       []domain.Eatery        `yaml:"eateries"`
	Accommodations []domain.Accommodation `yaml:"accommodations"`
}

// CatalogWriter loads catalog entries into storage.
type CatalogWriter interface {
	// Upsert inserts or replaces a destination and all of its records.
	// Records that are no longer listed for the destination are removed.
	Upsert(ctx context.Context, e CatalogEntry) error
}

// pgCatalogRepo is the Postgres implementation of CatalogRepo and CatalogWriter.
type pgCatalogRepo struct {
	db db
}

// NewCatalogRepo constructs a CatalogRepo backed by the provided db connection.
func NewCatalogRepo(db db) CatalogRepo {
	return &pgCatalogRepo{db: db}
}

// NewCatalogWriter constructs a CatalogWriter backed by the provided db connection.
// Pass a pgx.Tx to make an import all-or-nothing.
func NewCatalogWriter(db db) CatalogWriter {
	return &pgCatalogRepo{db: db}
}

func (r *pgCatalogRepo) Upsert(ctx context.Context, e CatalogEntry) error {
	d := e.Destination
	const upsertDest = `
		INSERT INTO destinations (id, name, country, description)
		VALUES (@id, @name, @country, @description)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, country = EXCLUDED.country, description = EXCLUDED.description`

	args := pgx.NamedArgs{"id": d.ID, "name": d.Name, "country": d.Country, "description": d.Description}
	if _, err := r.db.Exec(ctx, upsertDest, args); err != nil {
		return fmt.Errorf("repo.CatalogRepo.Upsert: destination %q: %w", d.ID, err)
	}

	// Children are replaced wholesale; the tables cascade from destinations
	// but the destination row itself is kept so created_at survives.
	for _, table := range []string{"places", "eateries", "accommodations"} {
		if _, err := r.db.Exec(ctx, `DELETE FROM `+table+` WHERE destination_id = @id`, pgx.NamedArgs{"id": d.ID}); err != nil {
			return fmt.Errorf("repo.CatalogRepo.Upsert: clear %s: %w", table, err)
		}
	}

	for _, p := range e.Places {
		const q = `
			INSERT INTO places (id, destination_id, name, category, visit_minutes, entrance_fee)
			VALUES (@id, @destination_id, @name, @category, @visit_minutes, @entrance_fee)`
		visit := p.VisitMinutes
		if visit <= 0 {
			visit = domain.DefaultVisitMinutes
		}
		_, err := r.db.Exec(ctx, q, pgx.NamedArgs{
			"id": p.ID, "destination_id": d.ID, "name": p.Name, "category": p.Category,
			"visit_minutes": visit, "entrance_fee": p.EntranceFee,
		})
		if err != nil {
			return fmt.Errorf("repo.CatalogRepo.Upsert: place %q: %w", p.ID, err)
		}
	}

	for _, eat := range e.Eateries {
		const q = `
			INSERT INTO eateries (id, destination_id, name, cuisine, price_tier)
			VALUES (@id, @destination_id, @name, @cuisine, @price_tier)`
		_, err := r.db.Exec(ctx, q, pgx.NamedArgs{
			"id": eat.ID, "destination_id": d.ID, "name": eat.Name, "cuisine": eat.Cuisine, "price_tier": eat.PriceTier,
		})
		if err != nil {
			return fmt.Errorf("repo.CatalogRepo.Upsert: eatery %q: %w", eat.ID, err)
		}
	}

	for _, a := range e.Accommodations {
		const q = `
			INSERT INTO accommodations (id, destination_id, name, type, nightly_price, amenities)
			VALUES (@id, @destination_id, @name, @type, @nightly_price, @amenities)`
		amenities := a.Amenities
		if amenities == nil {
			amenities = []string{}
		}
		_, err := r.db.Exec(ctx, q, pgx.NamedArgs{
			"id": a.ID, "destination_id": d.ID, "name": a.Name, "type": a.Type,
			"nightly_price": a.NightlyPrice, "amenities": amenities,
		})
		if err != nil {
			return fmt.Errorf("repo.CatalogRepo.Upsert: accommodation %q: %w", a.ID, err)
		}
	}
	return nil
}

func (r *pgCatalogRepo) GetDestination(ctx context.Context, id string) (domain.Destination, error) {
	const q = `
		SELECT id, name, country, description, created_at
		FROM destinations
		WHERE id = @id`

	var d domain.Destination
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).
		Scan(&d.ID, &d.Name, &d.Country, &d.Description, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Destination{}, fmt.Errorf("repo.CatalogRepo.GetDestination: %w", domain.ErrNotFound)
		}
		return domain.Destination{}, fmt.Errorf("repo.CatalogRepo.GetDestination: %w", err)
	}
	return d, nil
}

func (r *pgCatalogRepo) ListDestinations(ctx context.Context, p domain.PaginationParams) ([]domain.Destination, int64, error) {
	dests, total, err := r.listDestinations(ctx, "", p)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.CatalogRepo.ListDestinations: %w", err)
	}
	return dests, total, nil
}

func (r *pgCatalogRepo) SearchDestinations(ctx context.Context, query string, p domain.PaginationParams) ([]domain.Destination, int64, error) {
	dests, total, err := r.listDestinations(ctx, query, p)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.CatalogRepo.SearchDestinations: %w", err)
	}
	return dests, total, nil
}

// listDestinations backs both List and Search. An empty query matches everything.
func (r *pgCatalogRepo) listDestinations(ctx context.Context, query string, p domain.PaginationParams) ([]domain.Destination, int64, error) {
	// strpos matches the query literally, so % and _ are not wildcards.
	const where = `
		WHERE @q = ''
		   OR strpos(lower(name),    lower(@q)) > 0
		   OR strpos(lower(country), lower(@q)) > 0`

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM destinations`+where, pgx.NamedArgs{"q": query}).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}

	q := `SELECT id, name, country, description, created_at FROM destinations` + where + `
		ORDER BY name, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"q": query, "limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	dests := []domain.Destination{}
	for rows.Next() {
		var d domain.Destination
		if err := rows.Scan(&d.ID, &d.Name, &d.Country, &d.Description, &d.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan: %w", err)
		}
		dests = append(dests, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows: %w", err)
	}
	return dests, total, nil
}

func (r *pgCatalogRepo) ListPlaces(ctx context.Context, destinationID string) ([]domain.Place, error) {
	const q = `
		SELECT id, destination_id, name, category, visit_minutes, entrance_fee
		FROM places
		WHERE destination_id = @destination_id
		ORDER BY name, id`

	places, err := collect(ctx, r.db, q, destinationID, func(s scanner) (domain.Place, error) {
		var p domain.Place
		err := s.Scan(&p.ID, &p.DestinationID, &p.Name, &p.Category, &p.VisitMinutes, &p.EntranceFee)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.ListPlaces: %w", err)
	}
	return places, nil
}

func (r *pgCatalogRepo) ListEateries(ctx context.Context, destinationID string) ([]domain.Eatery, error) {
	const q = `
		SELECT id, destination_id, name, cuisine, price_tier
		FROM eateries
		WHERE destination_id = @destination_id
		ORDER BY name, id`

	eateries, err := collect(ctx, r.db, q, destinationID, func(s scanner) (domain.Eatery, error) {
		var e domain.Eatery
		err := s.Scan(&e.ID, &e.DestinationID, &e.Name, &e.Cuisine, &e.PriceTier)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.ListEateries: %w", err)
	}
	return eateries, nil
}

func (r *pgCatalogRepo) ListAccommodations(ctx context.Context, destinationID string) ([]domain.Accommodation, error) {
	const q = `
		SELECT id, destination_id, name, type, nightly_price, amenities
		FROM accommodations
		WHERE destination_id = @destination_id
		ORDER BY nightly_price, id`

	accs, err := collect(ctx, r.db, q, destinationID, func(s scanner) (domain.Accommodation, error) {
		var a domain.Accommodation
		err := s.Scan(&a.ID, &a.DestinationID, &a.Name, &a.Type, &a.NightlyPrice, &a.Amenities)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.ListAccommodations: %w", err)
	}
	return accs, nil
}

// collect runs a per-destination query and maps every row with scan.
// It always returns a non-nil slice on success.
func collect[T any](ctx context.Context, db db, q, destinationID string, scan func(scanner) (T, error)) ([]T, error) {
	rows, err := db.Query(ctx, q, pgx.NamedArgs{"destination_id": destinationID})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}
