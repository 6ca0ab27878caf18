package forecast

// Wire types for the managed forecasting service. The service is a
// black box: it trains whatever ensemble it likes on the submitted
// series and returns predictions with confidence bounds.

// forecastRequest is the body of a forecast call.
type forecastRequest struct {
	Model   string      `json:"model"`
	Input   inputSpec   `json:"input"`
	Config  trainConfig `json:"config"`
	Horizon int         `json:"horizon_months"`
	Series  string      `json:"series,omitempty"` // optional single-series filter
}

// inputSpec names the columns of the submitted rows and carries the
// rows themselves.
type inputSpec struct {
	SeriesColumn    string      `json:"series_column"`
	TimestampColumn string      `json:"timestamp_column"`
	TargetColumn    string      `json:"target_column"`
	Rows            []seriesRow `json:"rows"`
}

// seriesRow is one observation of one series.
type seriesRow struct {
	Series    string  `json:"series"`
	Timestamp string  `json:"ts"` // YYYY-MM-DD
	Value     float64 `json:"value"`
}

// trainConfig is the small configuration record of the forecast call.
type trainConfig struct {
	Algorithm string `json:"algorithm"`
	ErrorMode string `json:"on_error"` // "skip" or "fail"
	Evaluate  bool   `json:"evaluate"`
}

// forecastResponse is the service reply.
type forecastResponse struct {
	Rows    []predictionRow `json:"rows"`
	Skipped []skippedRow    `json:"skipped,omitempty"`
}

// predictionRow is one forecasted month of one series.
type predictionRow struct {
	Series     string  `json:"series"`
	Timestamp  string  `json:"ts"` // YYYY-MM-DD
	Forecast   float64 `json:"forecast"`
	LowerBound float64 `json:"lower_bound"`
	UpperBound float64 `json:"upper_bound"`
}

// skippedRow names a series the service failed on under "skip" mode.
type skippedRow struct {
	Series string `json:"series"`
	Reason string `json:"reason"`
}
