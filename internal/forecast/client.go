// Package forecast talks to the external managed forecasting service
// and stores its output. Model training, ensemble selection and
// confidence-interval computation all happen on the service side; this
// package only submits series and consumes predictions.
package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/insurekit/premiumcast/internal/contracts"
	"github.com/insurekit/premiumcast/pkg/config"
	"github.com/insurekit/premiumcast/pkg/httputil"
	"github.com/insurekit/premiumcast/pkg/logger"
)

const dateLayout = "2006-01-02"

// Client calls the managed forecasting service.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	cfg        config.ForecastConfig
}

// NewClient creates a new forecasting service client
func NewClient(httpClient *httputil.Client, cfg config.ForecastConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		cfg:        cfg,
	}
}

// ForecastSeries submits the monthly premium series and returns the
// predicted points for the configured horizon. Training runs for
// minutes on the service side; the call blocks until it completes.
// Under error mode "skip" a failing state is reported in the skipped
// list and absent from the rows, never fatal for the run.
func (c *Client) ForecastSeries(ctx context.Context, series []contracts.MonthlyPremium, horizon int) ([]contracts.ForecastPoint, []contracts.SkippedSeries, error) {
	if len(series) == 0 {
		return nil, nil, fmt.Errorf("no input series to forecast")
	}
	if horizon <= 0 {
		horizon = c.cfg.Horizon
	}

	rows := make([]seriesRow, 0, len(series))
	for _, m := range series {
		rows = append(rows, seriesRow{
			Series:    m.State,
			Timestamp: m.Month.Format(dateLayout),
			Value:     m.AvgPremium,
		})
	}

	req := forecastRequest{
		Model: c.cfg.Model,
		Input: inputSpec{
			SeriesColumn:    "state",
			TimestampColumn: "month",
			TargetColumn:    "avg_premium",
			Rows:            rows,
		},
		Config: trainConfig{
			Algorithm: c.cfg.Algorithm,
			ErrorMode: c.cfg.ErrorMode,
			Evaluate:  c.cfg.Evaluate,
		},
		Horizon: horizon,
	}

	url := fmt.Sprintf("%s/v1/models/%s/forecast", c.cfg.BaseURL, c.cfg.Model)

	start := time.Now()
	resp, err := c.httpClient.PostJSON(ctx, url, req)
	if err != nil {
		return nil, nil, fmt.Errorf("forecast request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, nil, fmt.Errorf("forecast service returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, nil, fmt.Errorf("decode forecast response: %w", err)
	}

	points := make([]contracts.ForecastPoint, 0, len(parsed.Rows))
	for _, row := range parsed.Rows {
		ts, err := time.Parse(dateLayout, row.Timestamp)
		if err != nil {
			return nil, nil, fmt.Errorf("bad timestamp %q in forecast response: %w", row.Timestamp, err)
		}
		points = append(points, contracts.ForecastPoint{
			State:      row.Series,
			Timestamp:  ts,
			Forecast:   row.Forecast,
			LowerBound: row.LowerBound,
			UpperBound: row.UpperBound,
		})
	}

	skipped := make([]contracts.SkippedSeries, 0, len(parsed.Skipped))
	for _, s := range parsed.Skipped {
		skipped = append(skipped, contracts.SkippedSeries{State: s.Series, Reason: s.Reason})
		c.logger.WithFields(map[string]interface{}{
			"state":  s.Series,
			"reason": s.Reason,
		}).Warn("Forecasting service skipped series")
	}

	c.logger.WithFields(map[string]interface{}{
		"input_rows": len(rows),
		"points":     len(points),
		"skipped":    len(skipped),
		"horizon":    horizon,
		"duration":   time.Since(start),
	}).Info("Forecast call completed")

	return points, skipped, nil
}
