package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/insurekit/premiumcast/internal/contracts"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline end to end",
	Long: `Runs the three pipeline stages in order:

  1. generate  - replace the synthetic policy dataset
  2. aggregate - rebuild the monthly premium view
  3. retrain   - forecast, summaries and growth

Example:
  go run ./cmd/premiumcast run`,
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	fmt.Println("=== PremiumCast Pipeline ===")

	rt, err := initRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	ctx := context.Background()

	params := contracts.GenerationParams{
		StartDate: rt.cfg.Generator.StartDate,
		Months:    rt.cfg.Generator.Months,
		Seed:      rt.cfg.Generator.Seed,
	}
	result, err := rt.runner.RunAll(ctx, params)
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	if err := rt.cache.InvalidateDashboard(ctx); err != nil {
		rt.log.WithError(err).Warn("Failed to invalidate dashboard cache")
	}

	fmt.Printf("\n✅ Pipeline complete\n")
	fmt.Printf("   Predictions: %d\n", result.Points)
	fmt.Printf("   Summaries:   %d\n", result.Summaries)
	fmt.Printf("   Growth rows: %d\n", result.Growth)
	fmt.Printf("   Skipped:     %d\n", len(result.Skipped))
	return nil
}
