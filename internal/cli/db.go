package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/backend/internal/repo"
	"github.com/pkordes/trip-planner/backend/internal/store"
)

var errNoDatabaseURL = errors.New("no database: set DATABASE_URL or pass --database-url")

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "migrate the planner database",
		Long:  `Apply, roll back or inspect the embedded goose migrations.`,
	}
	cmd.PersistentFlags().String("database-url", "", "Postgres connection string (default $DATABASE_URL)")

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: withMigrator(func(cmd *cobra.Command, m *store.Migrator) error {
			applied, err := m.Up(cmd.Context())
			if err != nil {
				return err
			}
			logger(cmd).Info("migrations applied", "count", len(applied), "versions", applied)
			return nil
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE: withMigrator(func(cmd *cobra.Command, m *store.Migrator) error {
			version, err := m.Down(cmd.Context())
			if err != nil {
				return err
			}
			if version == 0 {
				logger(cmd).Info("nothing to roll back")
				return nil
			}
			logger(cmd).Info("migration rolled back", "version", version)
			return nil
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "show which migrations are applied",
		Args:  cobra.NoArgs,
		RunE: withMigrator(func(cmd *cobra.Command, m *store.Migrator) error {
			statuses, err := m.Status(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "VERSION\tSTATE\tFILE")
			for _, s := range statuses {
				state := "pending"
				if s.Applied {
					state = "applied"
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\n", s.Version, state, s.Path)
			}
			return tw.Flush()
		}),
	})
	return cmd
}

// withMigrator opens a Migrator for the command's database and closes it
// once run returns.
func withMigrator(run func(*cobra.Command, *store.Migrator) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		dsn := databaseURL(cmd)
		if dsn == "" {
			return errNoDatabaseURL
		}
		m, err := store.NewMigrator(cmd.Context(), dsn)
		if err != nil {
			return err
		}
		defer m.Close()
		return run(cmd, m)
	}
}

func seedCmd() *cobra.Command {
	var catalogFile string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "import a YAML catalog into Postgres",
		Long: `Insert or replace every destination in the catalog, together with its
places, eateries and accommodations. The import runs in one transaction.`,
		Example: `planner seed --catalog ./catalog.yaml`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dsn := databaseURL(cmd)
			if dsn == "" {
				return errNoDatabaseURL
			}
			entries, err := store.ReadCatalog(catalogFile)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			pool, err := pgxpool.New(ctx, dsn)
			if err != nil {
				return fmt.Errorf("create pool: %w", err)
			}
			defer pool.Close()

			tx, err := pool.Begin(ctx)
			if err != nil {
				return fmt.Errorf("begin: %w", err)
			}
			defer func() { _ = tx.Rollback(ctx) }()

			w := repo.NewCatalogWriter(tx)
			for _, e := range entries {
				if err := w.Upsert(ctx, e); err != nil {
					return err
				}
				logger(cmd).Debug("destination imported", "id", e.Destination.ID,
					"places", len(e.Places), "eateries", len(e.Eateries), "accommodations", len(e.Accommodations))
			}
			if err := tx.Commit(ctx); err != nil {
				return fmt.Errorf("commit: %w", err)
			}

			logger(cmd).Info("catalog imported", "destinations", len(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogFile, "catalog", "", "YAML catalog file (default built-in catalog)")
	cmd.Flags().String("database-url", "", "Postgres connection string (default $DATABASE_URL)")
	return cmd
}
