package mem

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// seedFile is the YAML layout of a catalog seed:
//
//	destinations:
//	  - id: istanbul
//	    name: Istanbul
//	    country: Türkiye
//	    places:         [{id, name, category, visit_minutes, entrance_fee}]
//	    eateries:       [{id, name, cuisine, price_tier}]
//	    accommodations: [{id, name, type, nightly_price, amenities}]
type seedFile struct {
	Destinations []repo.CatalogEntry `yaml:"destinations"`
}

// ParseSeed decodes and validates a YAML catalog seed.
// Unknown fields are rejected so typos in hand-written seeds surface early.
func ParseSeed(r io.Reader) ([]repo.CatalogEntry, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f seedFile
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("mem.ParseSeed: decode: %w", err)
	}

	for i, e := range f.Destinations {
		if err := validateSeed(e); err != nil {
			return nil, fmt.Errorf("mem.ParseSeed: destination #%d: %w", i+1, err)
		}
	}
	return f.Destinations, nil
}

// LoadCatalog parses a YAML catalog seed into a new Catalog.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	entries, err := ParseSeed(r)
	if err != nil {
		return nil, err
	}

	c := NewCatalog()
	for i, e := range entries {
		if err := c.Add(e.Destination, e.Places, e.Eateries, e.Accommodations); err != nil {
			return nil, fmt.Errorf("mem.LoadCatalog: destination #%d: %w", i+1, err)
		}
	}
	return c, nil
}

func validateSeed(e repo.CatalogEntry) error {
	d := e.Destination
	if d.ID == "" {
		return fmt.Errorf("%w: destination without id", domain.ErrInvalidInput)
	}
	if d.Name == "" {
		return fmt.Errorf("%w: destination %q has no name", domain.ErrInvalidInput, d.ID)
	}
	for _, p := range e.Places {
		if p.ID == "" || p.Name == "" {
			return fmt.Errorf("%w: place in %q needs id and name", domain.ErrInvalidInput, d.ID)
		}
		if p.EntranceFee != nil && *p.EntranceFee < 0 {
			return fmt.Errorf("%w: place %q has a negative entrance fee", domain.ErrInvalidInput, p.ID)
		}
	}
	for _, eat := range e.Eateries {
		if eat.ID == "" || eat.Name == "" {
			return fmt.Errorf("%w: eatery in %q needs id and name", domain.ErrInvalidInput, d.ID)
		}
		if eat.PriceTier < 1 || eat.PriceTier > 4 {
			return fmt.Errorf("%w: eatery %q price tier must be 1-4", domain.ErrInvalidInput, eat.ID)
		}
	}
	for _, a := range e.Accommodations {
		if a.ID == "" || a.Name == "" {
			return fmt.Errorf("%w: accommodation in %q needs id and name", domain.ErrInvalidInput, d.ID)
		}
		if a.NightlyPrice < 0 {
			return fmt.Errorf("%w: accommodation %q has a negative nightly price", domain.ErrInvalidInput, a.ID)
		}
	}
	return nil
}
