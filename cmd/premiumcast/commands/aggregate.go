package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// aggregateCmd represents the aggregate command
var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Rebuild the monthly premium view",
	Long: `Recomputes the normalized monthly premium view from the stored
policy dataset: filters to active applicant policies inside the
training window, normalizes 6-month terms to an annual figure and
averages per state and month.

Example:
  go run ./cmd/premiumcast aggregate`,
	RunE: runAggregate,
}

func init() {
	rootCmd.AddCommand(aggregateCmd)
}

func runAggregate(cmd *cobra.Command, args []string) error {
	fmt.Println("=== PremiumCast Aggregate ===")

	rt, err := initRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	rows, err := rt.runner.RefreshMonthly(context.Background())
	if err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}

	fmt.Printf("\n✅ Monthly view rebuilt: %d state-month rows\n", rows)
	return nil
}
