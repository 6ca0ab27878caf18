// Package pipeline sequences the batch stages: generate policies,
// refresh the monthly view, retrain the forecast and rebuild the
// reporting artifacts. Each stage consumes the fully materialized
// output of the previous one; there is no shared mutable state.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/insurekit/premiumcast/internal/aggregate"
	"github.com/insurekit/premiumcast/internal/contracts"
	"github.com/insurekit/premiumcast/internal/report"
	"github.com/insurekit/premiumcast/pkg/logger"
)

// PolicyGenerator produces a synthetic dataset for a run.
type PolicyGenerator interface {
	Generate(params contracts.GenerationParams) ([]contracts.PolicyRecord, error)
}

// Runner wires the stages together.
type Runner struct {
	gen        PolicyGenerator
	policies   contracts.PolicyStore
	monthly    contracts.MonthlyStore
	forecaster contracts.Forecaster
	store      contracts.ForecastStore
	agg        *aggregate.Aggregator
	log        *logger.Logger
	horizon    int
	now        func() time.Time
}

// NewRunner creates a pipeline runner
func NewRunner(
	gen PolicyGenerator,
	policies contracts.PolicyStore,
	monthly contracts.MonthlyStore,
	forecaster contracts.Forecaster,
	store contracts.ForecastStore,
	log *logger.Logger,
	horizon int,
) *Runner {
	return &Runner{
		gen:        gen,
		policies:   policies,
		monthly:    monthly,
		forecaster: forecaster,
		store:      store,
		agg:        aggregate.New(),
		log:        log,
		horizon:    horizon,
		now:        time.Now,
	}
}

// WithClock overrides the processing-time source, for tests.
func (r *Runner) WithClock(now func() time.Time) *Runner {
	r.now = now
	return r
}

// Generate materializes a fresh synthetic dataset, replacing any prior
// one. Returns the number of records generated.
func (r *Runner) Generate(ctx context.Context, params contracts.GenerationParams) (int, error) {
	records, err := r.gen.Generate(params)
	if err != nil {
		return 0, fmt.Errorf("generate policies: %w", err)
	}

	if err := r.policies.ReplaceAll(ctx, records); err != nil {
		return 0, fmt.Errorf("replace policy dataset: %w", err)
	}

	return len(records), nil
}

// RefreshMonthly recomputes the normalized monthly view from the
// stored policy set. Returns the number of view rows.
func (r *Runner) RefreshMonthly(ctx context.Context) (int, error) {
	records, err := r.policies.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("load policies: %w", err)
	}

	rows := r.agg.BuildMonthly(records)
	if err := r.monthly.Replace(ctx, rows); err != nil {
		return 0, fmt.Errorf("replace monthly view: %w", err)
	}

	return len(rows), nil
}

// RetrainResult reports what a retrain produced.
type RetrainResult struct {
	Points    int
	Skipped   []contracts.SkippedSeries
	Summaries int
	Growth    int
}

// Retrain submits the monthly series to the external forecaster and
// rebuilds predictions, summaries and growth. States the service
// skipped are logged and absent from all three artifacts.
func (r *Runner) Retrain(ctx context.Context) (*RetrainResult, error) {
	series, err := r.monthly.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load monthly series: %w", err)
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("monthly view is empty; run aggregation first")
	}

	points, skipped, err := r.forecaster.ForecastSeries(ctx, series, r.horizon)
	if err != nil {
		return nil, fmt.Errorf("forecast series: %w", err)
	}

	if err := r.store.ReplacePredictions(ctx, points); err != nil {
		return nil, fmt.Errorf("replace predictions: %w", err)
	}

	summaries := report.BuildSummaries(points)
	if err := r.store.ReplaceSummaries(ctx, summaries); err != nil {
		return nil, fmt.Errorf("replace summaries: %w", err)
	}

	trailing := aggregate.TrailingAverages(series, r.now())
	growth := report.BuildGrowth(summaries, trailing)
	if err := r.store.ReplaceGrowth(ctx, growth); err != nil {
		return nil, fmt.Errorf("replace growth: %w", err)
	}

	r.log.WithFields(map[string]interface{}{
		"points":    len(points),
		"skipped":   len(skipped),
		"summaries": len(summaries),
		"growth":    len(growth),
	}).Info("Forecast retrain completed")

	return &RetrainResult{
		Points:    len(points),
		Skipped:   skipped,
		Summaries: len(summaries),
		Growth:    len(growth),
	}, nil
}

// RunAll executes the full pipeline: generate, refresh, retrain.
func (r *Runner) RunAll(ctx context.Context, params contracts.GenerationParams) (*RetrainResult, error) {
	generated, err := r.Generate(ctx, params)
	if err != nil {
		return nil, err
	}
	r.log.WithField("records", generated).Info("Stage 1/3: generation done")

	rows, err := r.RefreshMonthly(ctx)
	if err != nil {
		return nil, err
	}
	r.log.WithField("rows", rows).Info("Stage 2/3: monthly view refreshed")

	result, err := r.Retrain(ctx)
	if err != nil {
		return nil, err
	}
	r.log.Info("Stage 3/3: retrain done")

	return result, nil
}
