package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/insurekit/premiumcast/internal/api"
	"github.com/insurekit/premiumcast/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the REST API server the dashboard consumes.

Endpoints:
  GET  /health                     - Health check
  GET  /api/dashboard/summary      - Per-state forecast summaries
  GET  /api/dashboard/growth       - Per-state growth vs trailing 12 months
  GET  /api/dashboard/predictions  - Raw forecast points (?state=CA)
  GET  /api/dashboard/map          - Choropleth rows (?metric=mean&n=10)
  GET  /api/dashboard/monthly      - Aggregated monthly series (?since=YYYY-MM-DD)
  POST /api/admin/generate         - Regenerate the policy dataset
  POST /api/admin/refresh          - Rebuild the monthly view
  POST /api/admin/retrain          - Retrain the forecast
  GET  /api/admin/status           - Dataset counts and DB health

Example:
  go run ./cmd/premiumcast api
  go run ./cmd/premiumcast api --port 8090`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (default from config)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== PremiumCast API Server ===")

	rt, err := initRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	if apiPort != "" {
		rt.cfg.Port = apiPort
	}

	rt.log.WithFields(map[string]interface{}{
		"port": rt.cfg.Port,
		"env":  rt.cfg.Env,
	}).Info("Initializing API server")

	// Create handlers
	dashboard := handlers.NewDashboardHandler(rt.forecastRepo, rt.monthlyRepo, rt.cache, rt.log)
	admin := handlers.NewAdminHandler(rt.runner, rt.policyRepo, rt.db, rt.cache, rt.cfg, rt.log)

	// Create router and server
	router := api.NewRouter(dashboard, admin, rt.log)
	server := api.New(rt.cfg, rt.log, router)

	// Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			rt.log.WithError(err).Fatal("Failed to start server")
		}
	}()

	rt.log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", rt.cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	rt.log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	rt.log.Info("Server stopped")
	return nil
}
