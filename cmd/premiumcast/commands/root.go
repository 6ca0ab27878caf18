package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "premiumcast",
	Short: "PremiumCast - insurance premium analytics pipeline",
	Long: `PremiumCast Unified CLI

Demonstration analytics pipeline for auto insurance premiums.
Generates a synthetic policy dataset, aggregates it into a monthly
premium series, submits the series to a managed forecasting service
and publishes per-state summaries and growth for the dashboard.

Usage:
  go run ./cmd/premiumcast [command]

Examples:
  go run ./cmd/premiumcast run
  go run ./cmd/premiumcast generate --months 72
  go run ./cmd/premiumcast api
  go run ./cmd/premiumcast scheduler start`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
