package jobs

import (
	"context"
	"fmt"

	"github.com/insurekit/premiumcast/internal/pipeline"
	"github.com/insurekit/premiumcast/pkg/logger"
)

// RefreshJob rebuilds the monthly premium view from the stored policy
// dataset. Scheduled nightly so the view tracks any regeneration.
type RefreshJob struct {
	runner *pipeline.Runner
	logger *logger.Logger
}

// NewRefreshJob creates a new monthly view refresh job
func NewRefreshJob(runner *pipeline.Runner, log *logger.Logger) *RefreshJob {
	return &RefreshJob{
		runner: runner,
		logger: log,
	}
}

// Name returns the job name
func (j *RefreshJob) Name() string {
	return "monthly_view_refresh"
}

// Schedule returns the cron schedule (1:30 AM daily, with seconds)
func (j *RefreshJob) Schedule() string {
	return "0 30 1 * * *"
}

// Run executes the refresh
func (j *RefreshJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled monthly view refresh")

	rows, err := j.runner.RefreshMonthly(ctx)
	if err != nil {
		return fmt.Errorf("refresh monthly view: %w", err)
	}

	j.logger.WithField("rows", rows).Info("Monthly view refresh completed")
	return nil
}
