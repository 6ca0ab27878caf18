package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// forecastCmd represents the forecast command
var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Forecasting service operations",
	Long: `Submits the monthly series to the managed forecasting service
and rebuilds the reporting artifacts, or inspects the stored ones.

Subcommands:
  retrain - train and predict, then rebuild summaries and growth
  show    - print the stored per-state summaries

Example:
  go run ./cmd/premiumcast forecast retrain
  go run ./cmd/premiumcast forecast show`,
}

var forecastRetrainCmd = &cobra.Command{
	Use:   "retrain",
	Short: "Retrain the forecast and rebuild reporting artifacts",
	Long: `Sends the full monthly premium series to the forecasting
service. The service trains per state and returns one prediction per
state per forecast month with confidence bounds. States the service
could not fit are skipped and logged; the rest of the run proceeds.

Predictions, per-state summaries and growth-vs-trailing-12-months are
then atomically replaced.`,
	RunE: runForecastRetrain,
}

var forecastShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored per-state forecast summaries",
	RunE:  runForecastShow,
}

func init() {
	rootCmd.AddCommand(forecastCmd)
	forecastCmd.AddCommand(forecastRetrainCmd)
	forecastCmd.AddCommand(forecastShowCmd)
}

func runForecastRetrain(cmd *cobra.Command, args []string) error {
	fmt.Println("=== PremiumCast Forecast Retrain ===")

	rt, err := initRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	ctx := context.Background()

	result, err := rt.runner.Retrain(ctx)
	if err != nil {
		return fmt.Errorf("retrain: %w", err)
	}

	if err := rt.cache.InvalidateDashboard(ctx); err != nil {
		rt.log.WithError(err).Warn("Failed to invalidate dashboard cache")
	}

	fmt.Printf("\n✅ Retrain complete\n")
	fmt.Printf("   Predictions: %d\n", result.Points)
	fmt.Printf("   Summaries:   %d\n", result.Summaries)
	fmt.Printf("   Growth rows: %d\n", result.Growth)
	if len(result.Skipped) > 0 {
		fmt.Printf("   Skipped states:\n")
		for _, s := range result.Skipped {
			fmt.Printf("     - %s (%s)\n", s.State, s.Reason)
		}
	}
	return nil
}

func runForecastShow(cmd *cobra.Command, args []string) error {
	rt, err := initRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	summaries, err := rt.forecastRepo.ListSummaries(context.Background())
	if err != nil {
		return fmt.Errorf("list summaries: %w", err)
	}

	if len(summaries) == 0 {
		fmt.Println("No forecast summaries stored. Run 'forecast retrain' first.")
		return nil
	}

	fmt.Printf("%-6s %12s %12s %12s %10s %8s\n",
		"STATE", "MEAN", "MIN", "MAX", "STDDEV", "POINTS")
	for _, s := range summaries {
		fmt.Printf("%-6s %12.2f %12.2f %12.2f %10.2f %8d\n",
			s.State, s.MeanPremium, s.MinPremium, s.MaxPremium, s.PremiumStddev, s.Points)
	}
	return nil
}
