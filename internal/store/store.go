// Package store opens the storage backend selected by configuration and
// exposes the goose migrator shared by the API server and the planner CLI.
package store

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/pkordes/trip-planner/backend/internal/repo"
	"github.com/pkordes/trip-planner/backend/internal/repo/mem"
	"github.com/pkordes/trip-planner/backend/migrations"
	"github.com/pkordes/trip-planner/backend/seed"
)

// Stores bundles the repositories a running planner needs.
// Close releases whatever the backend holds open and is never nil.
type Stores struct {
	Catalog repo.CatalogRepo
	Plans   repo.PlanRepo
	Close   func()
}

// OpenPostgres connects to Postgres and verifies the database is reachable
// before returning repositories backed by the pool.
func OpenPostgres(ctx context.Context, dsn string) (Stores, error) {
	// New does not open connections immediately; the ping does.
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return Stores{}, fmt.Errorf("store.OpenPostgres: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return Stores{}, fmt.Errorf("store.OpenPostgres: ping: %w", err)
	}
	return Stores{
		Catalog: repo.NewCatalogRepo(pool),
		Plans:   repo.NewPlanRepo(pool),
		Close:   pool.Close,
	}, nil
}

// OpenMemory builds in-memory repositories. The catalog is read from
// catalogFile, or from the embedded seed when catalogFile is empty.
func OpenMemory(catalogFile string) (Stores, error) {
	catalog, err := LoadCatalog(catalogFile)
	if err != nil {
		return Stores{}, fmt.Errorf("store.OpenMemory: %w", err)
	}
	return Stores{
		Catalog: catalog,
		Plans:   mem.NewPlanStore(),
		Close:   func() {},
	}, nil
}

// LoadCatalog parses a YAML catalog file into an in-memory catalog.
// An empty path selects the embedded seed.
func LoadCatalog(path string) (*mem.Catalog, error) {
	r, closeFn, err := openCatalog(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	return mem.LoadCatalog(r)
}

// ReadCatalog parses a YAML catalog file into import entries.
// An empty path selects the embedded seed.
func ReadCatalog(path string) ([]repo.CatalogEntry, error) {
	r, closeFn, err := openCatalog(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	return mem.ParseSeed(r)
}

func openCatalog(path string) (io.Reader, func(), error) {
	if path == "" {
		return bytes.NewReader(seed.Catalog), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open catalog: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// Migrator applies the embedded goose migrations over a database/sql
// connection using the pgx driver.
type Migrator struct {
	db       *sql.DB
	provider *goose.Provider
}

// NewMigrator opens dsn and prepares a goose provider for the embedded migrations.
// Call Close when done.
func NewMigrator(ctx context.Context, dsn string) (*Migrator, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("store.NewMigrator: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("store.NewMigrator: ping: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store.NewMigrator: create goose provider: %w", err)
	}
	return &Migrator{db: db, provider: provider}, nil
}

// Up applies every pending migration and returns the versions applied.
func (m *Migrator) Up(ctx context.Context) ([]int64, error) {
	results, err := m.provider.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.Migrator.Up: %w", err)
	}
	return versions(results), nil
}

// Down rolls back the most recent migration. It returns the rolled back
// version, or 0 when nothing was applied.
func (m *Migrator) Down(ctx context.Context) (int64, error) {
	result, err := m.provider.Down(ctx)
	if errors.Is(err, goose.ErrNoNextVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("store.Migrator.Down: %w", err)
	}
	if result == nil || result.Source == nil {
		return 0, nil
	}
	return result.Source.Version, nil
}

// MigrationStatus is one row of Migrator.Status.
type MigrationStatus struct {
	Version int64
	Path    string
	Applied bool
}

// Status reports every known migration and whether it has been applied.
func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.Migrator.Status: %w", err)
	}
	out := make([]MigrationStatus, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, MigrationStatus{
			Version: s.Source.Version,
			Path:    s.Source.Path,
			Applied: s.State == goose.StateApplied,
		})
	}
	return out, nil
}

// Close releases the underlying database connection.
func (m *Migrator) Close() error {
	return m.db.Close()
}

func versions(results []*goose.MigrationResult) []int64 {
	out := make([]int64, 0, len(results))
	for _, r := range results {
		if r.Source != nil {
			out = append(out, r.Source.Version)
		}
	}
	return out
}
