// Package cli implements the planner command-line tool: offline budget
// estimates and plan generation against a YAML catalog, plus database
// migration and catalog import for the API server's Postgres storage.
package cli

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/backend/internal/config"
)

// NewRootCmd builds the planner command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "planner",
		Short: "plan trips from a destination catalog",
		Long: `planner estimates trip budgets and generates day-by-day itineraries
from a destination catalog. It also migrates and seeds the Postgres
database used by the API server.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return config.LoadDotEnv()
		},
	}

	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(estimateCmd())
	root.AddCommand(generateCmd())
	root.AddCommand(scaleCmd())
	root.AddCommand(destinationsCmd())
	root.AddCommand(migrateCmd())
	root.AddCommand(seedCmd())
	return root
}

// Execute runs the planner and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// logger writes human-readable progress to the command's stderr.
func logger(cmd *cobra.Command) *slog.Logger {
	var level slog.Level
	raw, _ := cmd.Flags().GetString("log-level")
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// databaseURL returns the --database-url flag, falling back to DATABASE_URL.
func databaseURL(cmd *cobra.Command) string {
	if v, _ := cmd.Flags().GetString("database-url"); v != "" {
		return v
	}
	return os.Getenv("DATABASE_URL")
}
