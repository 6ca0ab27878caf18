package jobs

import (
	"context"
	"fmt"

	"github.com/insurekit/premiumcast/internal/pipeline"
	"github.com/insurekit/premiumcast/pkg/logger"
	"github.com/insurekit/premiumcast/pkg/redis"
)

// RetrainJob submits the monthly series to the forecasting service and
// rebuilds predictions, summaries and growth.
// Schedule: 2 AM daily (after the 1:30 AM view refresh).
type RetrainJob struct {
	runner *pipeline.Runner
	cache  *redis.Cache
	logger *logger.Logger
}

// NewRetrainJob creates a new forecast retrain job
func NewRetrainJob(runner *pipeline.Runner, cache *redis.Cache, log *logger.Logger) *RetrainJob {
	return &RetrainJob{
		runner: runner,
		cache:  cache,
		logger: log,
	}
}

// Name returns the job name
func (j *RetrainJob) Name() string {
	return "forecast_retrain"
}

// Schedule returns the cron schedule (2 AM daily, after the view refresh)
func (j *RetrainJob) Schedule() string {
	return "0 0 2 * * *"
}

// Run executes the retrain
func (j *RetrainJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled forecast retrain")

	result, err := j.runner.Retrain(ctx)
	if err != nil {
		return fmt.Errorf("retrain forecast: %w", err)
	}

	for _, s := range result.Skipped {
		j.logger.WithFields(map[string]interface{}{
			"state":  s.State,
			"reason": s.Reason,
		}).Warn("Series skipped by forecasting service")
	}

	// Dashboard responses are cached; a retrain invalidates them so the
	// fresh artifacts are served immediately.
	if j.cache != nil {
		if err := j.cache.InvalidateDashboard(ctx); err != nil {
			j.logger.WithError(err).Warn("Failed to invalidate dashboard cache")
		}
	}

	j.logger.WithFields(map[string]interface{}{
		"points":    result.Points,
		"skipped":   len(result.Skipped),
		"summaries": result.Summaries,
		"growth":    result.Growth,
	}).Info("Forecast retrain completed")

	return nil
}
