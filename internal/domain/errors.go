package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrInvalidInput is returned when input fails business rule validation
// (e.g. duration <= 0, party size < 1, unknown budget tier).
// It is reported synchronously and never retried.
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrInvalidInput = errors.New("invalid input")

// ErrDestinationNotFound is returned when a plan is requested for a
// destination id that the catalog does not contain.
// It wraps ErrNotFound, so errors.Is(err, ErrNotFound) also holds.
var ErrDestinationNotFound = fmt.Errorf("destination %w", ErrNotFound)

// ErrRouteGenerationFailed is returned when the catalog data for a
// destination is too sparse to build even a single day (no places or no
// eateries). It is terminal for that destination.
var ErrRouteGenerationFailed = errors.New("route generation failed")
