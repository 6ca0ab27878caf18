package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/insurekit/premiumcast/internal/contracts"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the synthetic policy dataset",
	Long: `Generates a fresh synthetic policy dataset and replaces the
stored one. Every run rebuilds the dataset from scratch; limited
states (VT, WY) stay sparse to exercise the forecasting service's
skip path downstream.

Example:
  go run ./cmd/premiumcast generate
  go run ./cmd/premiumcast generate --months 72 --start 2020-01-01
  go run ./cmd/premiumcast generate --seed 42`,
	RunE: runGenerate,
}

var (
	genMonths int
	genStart  string
	genSeed   int64
)

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntVar(&genMonths, "months", 0, "months of data to generate (default from config)")
	generateCmd.Flags().StringVar(&genStart, "start", "", "first month, YYYY-MM-DD (default from config)")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "random seed (0 seeds from the clock)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	fmt.Println("=== PremiumCast Generate ===")

	rt, err := initRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	params := contracts.GenerationParams{
		StartDate: rt.cfg.Generator.StartDate,
		Months:    rt.cfg.Generator.Months,
		Seed:      rt.cfg.Generator.Seed,
	}
	if genMonths > 0 {
		params.Months = genMonths
	}
	if genStart != "" {
		start, err := time.Parse("2006-01-02", genStart)
		if err != nil {
			return fmt.Errorf("parse --start: %w", err)
		}
		params.StartDate = start
	}
	if genSeed != 0 {
		params.Seed = genSeed
	}

	records, err := rt.runner.Generate(context.Background(), params)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	fmt.Printf("\n✅ Generated %d policy records (%d months from %s)\n",
		records, params.Months, params.StartDate.Format("2006-01-02"))
	return nil
}
