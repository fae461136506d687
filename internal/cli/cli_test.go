package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// run executes the planner with args and returns what it wrote to stdout.
func run(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	if stdin != nil {
		root.SetIn(stdin)
	}
	err := root.Execute()
	return stdout.String(), err
}

func placeIDs(p domain.Plan) [][]string {
	out := make([][]string, len(p.Days))
	for i, d := range p.Days {
		for _, pl := range d.Places {
			out[i] = append(out[i], pl.ID)
		}
	}
	return out
}

// ---- estimate ----

func TestEstimate(t *testing.T) {
	out, err := run(t, nil, "estimate", "--tier", "Economy", "--days", "2", "--party", "3")
	require.NoError(t, err)

	var got estimateOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, domain.TierEconomy, got.Tier)
	assert.Equal(t, 3, got.PartySize)
	assert.Equal(t, 240.0, got.Budget.Food)
	assert.Equal(t, 960.0, got.Total)
}

func TestEstimate_unknownTier(t *testing.T) {
	_, err := run(t, nil, "estimate", "--tier", "backpacker", "--days", "2")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEstimate_daysRequired(t *testing.T) {
	_, err := run(t, nil, "estimate")
	require.ErrorContains(t, err, "days")
}

// ---- generate ----

func TestGenerate_seedIsReproducible(t *testing.T) {
	args := []string{"generate", "--destination", "kyoto", "--days", "3", "--seed", "42", "--start", "2026-05-01"}

	first, err := run(t, nil, args...)
	require.NoError(t, err)
	second, err := run(t, nil, args...)
	require.NoError(t, err)

	var a, b domain.Plan
	require.NoError(t, json.Unmarshal([]byte(first), &a))
	require.NoError(t, json.Unmarshal([]byte(second), &b))

	assert.Equal(t, "kyoto", a.DestinationID)
	assert.Equal(t, domain.TierStandard, a.Tier)
	require.Len(t, a.Days, 3)
	assert.Equal(t, "2026-05-01", a.Days[0].Date.Format(time.DateOnly))
	assert.Equal(t, "2026-05-03", a.Days[2].Date.Format(time.DateOnly))
	assert.Equal(t, placeIDs(a), placeIDs(b))
}

func TestGenerate_unknownDestination(t *testing.T) {
	_, err := run(t, nil, "generate", "--destination", "atlantis", "--days", "2")
	require.ErrorIs(t, err, domain.ErrDestinationNotFound)
}

func TestGenerate_badStartDate(t *testing.T) {
	_, err := run(t, nil, "generate", "--destination", "kyoto", "--days", "2", "--start", "01/05/2026")
	require.ErrorContains(t, err, "--start")
}

// ---- scale ----

func TestScale_fromStdin(t *testing.T) {
	generated, err := run(t, nil, "generate", "--destination", "lisbon", "--tier", "economy", "--days", "2", "--seed", "7")
	require.NoError(t, err)

	out, err := run(t, strings.NewReader(generated), "scale", "--party", "4")
	require.NoError(t, err)

	var before domain.Plan
	require.NoError(t, json.Unmarshal([]byte(generated), &before))
	var got scaleOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, before.ID, got.Plan.ID)
	assert.Equal(t, 4, got.Plan.PartySize)
	assert.InDelta(t, before.Budget.Total()*4, got.Plan.Budget.Total(), 1e-9)
	assert.NotEmpty(t, got.Changes)
}

func TestScale_rejectsBadParty(t *testing.T) {
	generated, err := run(t, nil, "generate", "--destination", "lisbon", "--days", "1", "--seed", "7")
	require.NoError(t, err)

	_, err = run(t, strings.NewReader(generated), "scale", "--party", "0")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ---- destinations ----

func TestDestinations_query(t *testing.T) {
	out, err := run(t, nil, "destinations", "kyo")
	require.NoError(t, err)

	assert.Contains(t, out, "kyoto")
	assert.NotContains(t, out, "lisbon")
}

// ---- migrate / seed ----

func TestMigrate_requiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := run(t, nil, "migrate", "status")
	require.ErrorIs(t, err, errNoDatabaseURL)
}

func TestSeed_requiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := run(t, nil, "seed")
	require.ErrorIs(t, err, errNoDatabaseURL)
}
