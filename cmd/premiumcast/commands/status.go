package commands

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/insurekit/premiumcast/internal/catalog"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show dataset and artifact status",
	Long: `Prints the current state of the stored datasets:
- policy record count, per-state extremes
- monthly view row count
- forecast artifacts (predictions, summaries, growth)
- database pool health

Example:
  go run ./cmd/premiumcast status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("=== PremiumCast Status ===")

	rt, err := initRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	ctx := context.Background()

	count, err := rt.policyRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count policies: %w", err)
	}

	byState, err := rt.policyRepo.CountByState(ctx)
	if err != nil {
		return fmt.Errorf("count policies by state: %w", err)
	}

	monthly, err := rt.monthlyRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list monthly view: %w", err)
	}

	predictions, err := rt.forecastRepo.ListPredictions(ctx, "")
	if err != nil {
		return fmt.Errorf("list predictions: %w", err)
	}

	summaries, err := rt.forecastRepo.ListSummaries(ctx)
	if err != nil {
		return fmt.Errorf("list summaries: %w", err)
	}

	growth, err := rt.forecastRepo.ListGrowth(ctx)
	if err != nil {
		return fmt.Errorf("list growth: %w", err)
	}

	fmt.Println("\nDatasets")
	fmt.Printf("%-22s %10d\n", "Policies:", count)
	fmt.Printf("%-22s %10d\n", "States with policies:", len(byState))
	fmt.Printf("%-22s %10d\n", "Monthly view rows:", len(monthly))

	fmt.Println("\nForecast artifacts")
	fmt.Printf("%-22s %10d\n", "Predictions:", len(predictions))
	fmt.Printf("%-22s %10d\n", "Summaries:", len(summaries))
	fmt.Printf("%-22s %10d\n", "Growth rows:", len(growth))

	if len(byState) > 0 {
		fmt.Println("\nLimited states")
		limited := make([]string, 0, len(catalog.LimitedStates))
		for state := range catalog.LimitedStates {
			limited = append(limited, state)
		}
		sort.Strings(limited)
		for _, state := range limited {
			fmt.Printf("%-22s %10d (cap %d)\n", state+":", byState[state], catalog.LimitedStateCap)
		}

		type stateCount struct {
			state string
			count int64
		}
		counts := make([]stateCount, 0, len(byState))
		for state, n := range byState {
			counts = append(counts, stateCount{state, n})
		}
		sort.Slice(counts, func(i, j int) bool {
			if counts[i].count != counts[j].count {
				return counts[i].count > counts[j].count
			}
			return counts[i].state < counts[j].state
		})

		fmt.Println("\nLargest states")
		for i, sc := range counts {
			if i == 5 {
				break
			}
			fmt.Printf("%-22s %10d\n", sc.state+":", sc.count)
		}
	}

	health, err := rt.db.HealthCheck(ctx)
	if err != nil {
		fmt.Printf("\nDatabase: unhealthy (%s)\n", health.Error)
		return nil
	}
	fmt.Printf("\nDatabase: healthy (%v, %d/%d conns)\n",
		health.ResponseTime, health.Stats.TotalConns, health.Stats.MaxConns)

	return nil
}
