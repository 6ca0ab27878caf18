package contracts

import "time"

// ForecastPoint is one predicted month for one state, as returned by
// the external forecasting service. Consumed read-only.
type ForecastPoint struct {
	State      string    `json:"state"`
	Timestamp  time.Time `json:"ts"`
	Forecast   float64   `json:"forecast"`
	LowerBound float64   `json:"lower_bound"`
	UpperBound float64   `json:"upper_bound"`
}

// ForecastSummary is one row per state of descriptive statistics over
// that state's forecast points.
type ForecastSummary struct {
	State         string    `json:"state"`
	WindowStart   time.Time `json:"window_start"` // earliest forecast timestamp
	WindowEnd     time.Time `json:"window_end"`   // latest forecast timestamp
	MeanPremium   float64   `json:"mean_premium"`
	MinPremium    float64   `json:"min_premium"`
	MaxPremium    float64   `json:"max_premium"`
	PremiumStddev float64   `json:"premium_stddev"` // sample stddev (n-1), 0 when n==1
	AvgLowerBound float64   `json:"avg_lower_bound"`
	AvgUpperBound float64   `json:"avg_upper_bound"`
	Points        int       `json:"points"`
}

// GrowthRecord pairs a state's trailing 12-month historical average
// against its forecast mean. GrowthPct is nil when the state has no
// historical baseline or the baseline averages to zero; it is never
// computed as a division by zero.
type GrowthRecord struct {
	State         string   `json:"state"`
	HistoricalAvg *float64 `json:"historical_avg,omitempty"`
	ForecastAvg   float64  `json:"forecast_avg"`
	GrowthPct     *float64 `json:"yoy_growth_pct,omitempty"`
}

// MapRow is one dashboard map entry: the summary enriched with the
// derived metrics the front end plots. Growth defaults to 0 when the
// growth artifact is unavailable, matching how the map degrades.
type MapRow struct {
	State         string  `json:"state"`
	MeanPremium   float64 `json:"mean_premium"`
	MinPremium    float64 `json:"min_premium"`
	MaxPremium    float64 `json:"max_premium"`
	PremiumStddev float64 `json:"premium_stddev"`
	PriceRange    float64 `json:"price_range"` // max - min
	Volatility    float64 `json:"volatility"`  // stddev / mean * 100
	GrowthPct     float64 `json:"yoy_growth_pct"`
	HasGrowth     bool    `json:"has_growth"`
}
