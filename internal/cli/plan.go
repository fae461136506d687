package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/itinerary"
	"github.com/pkordes/trip-planner/backend/internal/plandiff"
	"github.com/pkordes/trip-planner/backend/internal/service"
	"github.com/pkordes/trip-planner/backend/internal/store"
)

type estimateOutput struct {
	Tier      domain.BudgetTier `json:"tier"`
	Duration  int               `json:"duration"`
	PartySize int               `json:"party_size"`
	Budget    domain.Budget     `json:"budget"`
	Total     float64           `json:"total"`
}

func estimateCmd() *cobra.Command {
	var (
		tier      string
		days      int
		partySize int
	)

	cmd := &cobra.Command{
		Use:     "estimate",
		Short:   "estimate the budget of a trip",
		Example: `planner estimate --tier luxury --days 5 --party 2`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := domain.ParseBudgetTier(tier)
			if err != nil {
				return err
			}
			b, err := itinerary.EstimateBudget(t, days, partySize)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), estimateOutput{
				Tier: t, Duration: days, PartySize: partySize, Budget: b, Total: b.Total(),
			})
		},
	}

	cmd.Flags().StringVarP(&tier, "tier", "t", string(domain.TierStandard), "budget tier (economy, standard, luxury)")
	cmd.Flags().IntVarP(&days, "days", "d", 0, "trip length in days (required)")
	cmd.Flags().IntVarP(&partySize, "party", "p", 1, "number of travellers")
	_ = cmd.MarkFlagRequired("days")
	return cmd
}

func generateCmd() *cobra.Command {
	var (
		destination string
		tier        string
		days        int
		partySize   int
		seed        uint64
		start       string
		catalogFile string
	)

	cmd := &cobra.Command{
		Use:     "generate",
		Short:   "generate a day-by-day itinerary",
		Long:    `Generate a plan against a YAML catalog (the built-in catalog by default) and print it as JSON.`,
		Example: `planner generate --destination kyoto --tier standard --days 3 --seed 42`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := domain.ParseBudgetTier(tier)
			if err != nil {
				return err
			}
			var startDate time.Time
			if start != "" {
				if startDate, err = time.Parse(time.DateOnly, start); err != nil {
					return fmt.Errorf("--start must be YYYY-MM-DD: %w", err)
				}
			}

			stores, err := store.OpenMemory(catalogFile)
			if err != nil {
				return err
			}
			defer stores.Close()

			var opts []itinerary.Option
			if seed != 0 {
				opts = append(opts, itinerary.WithSeed(seed))
			}
			plans := service.NewPlanService(stores.Catalog, stores.Plans, itinerary.NewSynthesizer(opts...))

			plan, err := plans.Generate(cmd.Context(), service.GenerateInput{
				DestinationID: destination,
				Tier:          t,
				Duration:      days,
				PartySize:     partySize,
				StartDate:     startDate,
			})
			if err != nil {
				return err
			}
			logger(cmd).Debug("plan generated", "destination", destination, "days", len(plan.Days), "total", plan.Budget.Total())
			return writeJSON(cmd.OutOrStdout(), plan)
		},
	}

	cmd.Flags().StringVar(&destination, "destination", "", "destination id (required)")
	cmd.Flags().StringVarP(&tier, "tier", "t", string(domain.TierStandard), "budget tier (economy, standard, luxury)")
	cmd.Flags().IntVarP(&days, "days", "d", 0, "trip length in days (required)")
	cmd.Flags().IntVarP(&partySize, "party", "p", 1, "number of travellers")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for reproducible output (0 picks one)")
	cmd.Flags().StringVar(&start, "start", "", "first day of the trip, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&catalogFile, "catalog", "", "YAML catalog file (default built-in catalog)")
	_ = cmd.MarkFlagRequired("destination")
	_ = cmd.MarkFlagRequired("days")
	return cmd
}

type scaleOutput struct {
	Plan    domain.Plan         `json:"plan"`
	Changes []domain.PlanChange `json:"changes"`
}

func scaleCmd() *cobra.Command {
	var (
		planFile  string
		partySize int
	)

	cmd := &cobra.Command{
		Use:     "scale",
		Short:   "re-budget a generated plan for a larger party",
		Long:    `Read a plan produced by "planner generate" and print it re-budgeted for --party travellers together with the changed fields.`,
		Example: `planner generate --destination lisbon --days 2 | planner scale --party 4`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var r io.Reader = cmd.InOrStdin()
			if planFile != "" && planFile != "-" {
				f, err := os.Open(planFile)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			var plan domain.Plan
			if err := json.NewDecoder(r).Decode(&plan); err != nil {
				return fmt.Errorf("read plan: %w", err)
			}

			scaled, err := itinerary.ScaleForParty(plan, partySize)
			if err != nil {
				return err
			}
			changes, err := plandiff.Changes(plan, scaled)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), scaleOutput{Plan: scaled, Changes: changes})
		},
	}

	cmd.Flags().StringVarP(&planFile, "plan", "f", "-", "plan JSON file, - for stdin")
	cmd.Flags().IntVarP(&partySize, "party", "p", 0, "party size multiplier (required)")
	_ = cmd.MarkFlagRequired("party")
	return cmd
}

func destinationsCmd() *cobra.Command {
	var catalogFile string

	cmd := &cobra.Command{
		Use:     "destinations [query]",
		Short:   "list catalog destinations",
		Example: `planner destinations tür`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stores, err := store.OpenMemory(catalogFile)
			if err != nil {
				return err
			}
			defer stores.Close()

			catalog := service.NewCatalogService(stores.Catalog)
			query := strings.Join(args, " ")
			limit := domain.MaxPageLimit
			dests, _, err := catalog.SearchDestinations(cmd.Context(), query, domain.NewPaginationParams(nil, &limit))
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCOUNTRY")
			for _, d := range dests {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", d.ID, d.Name, d.Country)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&catalogFile, "catalog", "", "YAML catalog file (default built-in catalog)")
	return cmd
}
