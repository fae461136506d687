// Package plandiff reports the field-level changes between two versions of
// a plan, such as a saved plan and its copy scaled for a larger party.
package plandiff

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/google/uuid"
	"github.com/r3labs/diff/v3"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// summary is the part of a plan that changelogs talk about.
// The day-by-day itinerary is left out: it is identical across scaling.
type summary struct {
	ID            uuid.UUID         `diff:"id"`
	DestinationID string            `diff:"destination_id"`
	Tier          domain.BudgetTier `diff:"tier"`
	Duration      int               `diff:"duration"`
	PartySize     int               `diff:"party_size"`
	Budget        domain.Budget     `diff:"budget"`
	Total         float64           `diff:"total"`
}

func summarize(p domain.Plan) summary {
	return summary{
		ID:            p.ID,
		DestinationID: p.DestinationID,
		Tier:          p.Tier,
		Duration:      p.Duration,
		PartySize:     p.PartySize,
		Budget:        p.Budget,
		Total:         p.Budget.Total(),
	}
}

// Changes lists what differs between before and after, in field order.
// Paths are dot-separated diff tags, e.g. "budget.food".
func Changes(before, after domain.Plan) ([]domain.PlanChange, error) {
	d, err := diff.NewDiffer(diff.CustomValueDiffers(uuidDiffer{}))
	if err != nil {
		return nil, fmt.Errorf("plandiff.Changes: %w", err)
	}

	cl, err := d.Diff(summarize(before), summarize(after))
	if err != nil {
		return nil, fmt.Errorf("plandiff.Changes: %w", err)
	}

	changes := make([]domain.PlanChange, 0, len(cl))
	for _, c := range cl {
		changes = append(changes, domain.PlanChange{
			Path: strings.Join(c.Path, "."),
			From: c.From,
			To:   c.To,
		})
	}
	return changes, nil
}

var uuidType = reflect.TypeOf(uuid.UUID{})

// uuidDiffer compares UUIDs as single values. Without it the differ walks
// the underlying byte array and reports one change per byte.
type uuidDiffer struct{}

func (uuidDiffer) Match(a, b reflect.Value) bool {
	isUUID := func(v reflect.Value) bool { return v.IsValid() && v.Type() == uuidType }
	return (isUUID(a) && isUUID(b)) ||
		(a.Kind() == reflect.Invalid && isUUID(b)) ||
		(b.Kind() == reflect.Invalid && isUUID(a))
}

func (uuidDiffer) Diff(_ diff.DiffType, _ diff.DiffFunc, cl *diff.Changelog, path []string, a, b reflect.Value, _ interface{}) error {
	if !a.IsValid() || !b.IsValid() {
		if a.IsValid() != b.IsValid() {
			cl.Add(diff.UPDATE, path, valueOrNil(a), valueOrNil(b))
		}
		return nil
	}

	from, to := a.Interface().(uuid.UUID), b.Interface().(uuid.UUID)
	if from != to {
		cl.Add(diff.UPDATE, path, from.String(), to.String())
	}
	return nil
}

// InsertParentDiffer is a no-op: a UUID is a leaf.
func (uuidDiffer) InsertParentDiffer(func(path []string, a, b reflect.Value, p interface{}) error) {}

func valueOrNil(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}
	return v.Interface()
}
