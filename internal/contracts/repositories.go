package contracts

import (
	"context"
	"time"
)

// PolicyStore persists the raw synthetic policy dataset. ReplaceAll
// carries the replace semantics of a generation run: the new dataset
// becomes visible atomically or not at all.
type PolicyStore interface {
	ReplaceAll(ctx context.Context, policies []PolicyRecord) error
	List(ctx context.Context) ([]PolicyRecord, error)
	Count(ctx context.Context) (int64, error)
	CountByState(ctx context.Context) (map[string]int64, error)
}

// MonthlyStore persists the normalized monthly premium view.
type MonthlyStore interface {
	Replace(ctx context.Context, rows []MonthlyPremium) error
	List(ctx context.Context) ([]MonthlyPremium, error)
	// ListSince returns rows with month >= from, ordered by state then month.
	ListSince(ctx context.Context, from time.Time) ([]MonthlyPremium, error)
}

// ForecastStore persists the forecaster output and the derived
// reporting artifacts.
type ForecastStore interface {
	ReplacePredictions(ctx context.Context, points []ForecastPoint) error
	ListPredictions(ctx context.Context, state string) ([]ForecastPoint, error)

	ReplaceSummaries(ctx context.Context, summaries []ForecastSummary) error
	ListSummaries(ctx context.Context) ([]ForecastSummary, error)

	ReplaceGrowth(ctx context.Context, records []GrowthRecord) error
	ListGrowth(ctx context.Context) ([]GrowthRecord, error)
}

// Forecaster is the external managed forecasting service. Training and
// inference are opaque; the call blocks for as long as the service
// needs and honors ctx cancellation on the transport only.
type Forecaster interface {
	// ForecastSeries submits the monthly series and returns one point
	// per state per forecasted month, plus the states the service
	// skipped under its "skip" error mode.
	ForecastSeries(ctx context.Context, series []MonthlyPremium, horizon int) ([]ForecastPoint, []SkippedSeries, error)
}

// SkippedSeries names a state the forecasting service failed on,
// isolated from the rest of the run.
type SkippedSeries struct {
	State  string `json:"series"`
	Reason string `json:"reason"`
}
