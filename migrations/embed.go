// Package migrations embeds the goose SQL migrations for the catalog and
// saved-plan tables. Tests, the planner CLI and the API server (when
// MIGRATE_ON_START is set) all apply them through goose.NewProvider.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
