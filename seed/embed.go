// Package seed embeds the default destination catalog used by the memory
// storage mode and the planner CLI when no catalog file is given.
package seed

import _ "embed"

// Catalog contains the raw bytes of catalog.yaml, embedded at compile time.
// Parse it with mem.LoadCatalog.
//
//go:embed catalog.yaml
var Catalog []byte
