package forecast

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/insurekit/premiumcast/internal/contracts"
)

// Repository persists forecast predictions and the derived summary and
// growth artifacts. Each artifact is replaced as a whole per retrain;
// between retrains it is immutable.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new forecast repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ReplacePredictions swaps in a fresh prediction set in one transaction.
func (r *Repository) ReplacePredictions(ctx context.Context, points []contracts.ForecastPoint) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE insurance.premium_predictions`); err != nil {
		return fmt.Errorf("truncate predictions: %w", err)
	}

	if len(points) > 0 {
		batch := &pgx.Batch{}
		query := `
			INSERT INTO insurance.premium_predictions (state, ts, forecast, lower_bound, upper_bound)
			VALUES ($1, $2, $3, $4, $5)`

		for _, p := range points {
			batch.Queue(query, p.State, p.Timestamp, p.Forecast, p.LowerBound, p.UpperBound)
		}

		br := tx.SendBatch(ctx, batch)
		for range points {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("insert prediction: %w", err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("close batch: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// ListPredictions returns predictions ordered by state then timestamp,
// optionally filtered to one state.
func (r *Repository) ListPredictions(ctx context.Context, state string) ([]contracts.ForecastPoint, error) {
	query := `
		SELECT state, ts, forecast, lower_bound, upper_bound
		FROM insurance.premium_predictions`
	var args []interface{}
	if state != "" {
		query += ` WHERE state = $1`
		args = append(args, state)
	}
	query += ` ORDER BY state, ts`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []contracts.ForecastPoint
	for rows.Next() {
		var p contracts.ForecastPoint
		if err := rows.Scan(&p.State, &p.Timestamp, &p.Forecast, &p.LowerBound, &p.UpperBound); err != nil {
			return nil, err
		}
		points = append(points, p)
	}

	return points, rows.Err()
}

// ReplaceSummaries swaps in a fresh summary set in one transaction.
func (r *Repository) ReplaceSummaries(ctx context.Context, summaries []contracts.ForecastSummary) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE insurance.forecast_summary`); err != nil {
		return fmt.Errorf("truncate summary: %w", err)
	}

	if len(summaries) > 0 {
		batch := &pgx.Batch{}
		query := `
			INSERT INTO insurance.forecast_summary
				(state, window_start, window_end, mean_premium, min_premium, max_premium,
				 premium_stddev, avg_lower_bound, avg_upper_bound, points)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

		for _, s := range summaries {
			batch.Queue(query, s.State, s.WindowStart, s.WindowEnd,
				s.MeanPremium, s.MinPremium, s.MaxPremium, s.PremiumStddev,
				s.AvgLowerBound, s.AvgUpperBound, s.Points)
		}

		br := tx.SendBatch(ctx, batch)
		for range summaries {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("insert summary: %w", err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("close batch: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// ListSummaries returns summaries ordered by state.
func (r *Repository) ListSummaries(ctx context.Context) ([]contracts.ForecastSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT state, window_start, window_end, mean_premium, min_premium, max_premium,
			   premium_stddev, avg_lower_bound, avg_upper_bound, points
		FROM insurance.forecast_summary
		ORDER BY state`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []contracts.ForecastSummary
	for rows.Next() {
		var s contracts.ForecastSummary
		if err := rows.Scan(
			&s.State, &s.WindowStart, &s.WindowEnd, &s.MeanPremium, &s.MinPremium,
			&s.MaxPremium, &s.PremiumStddev, &s.AvgLowerBound, &s.AvgUpperBound, &s.Points,
		); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

// ReplaceGrowth swaps in a fresh growth set in one transaction. A nil
// GrowthPct persists as NULL, never as zero.
func (r *Repository) ReplaceGrowth(ctx context.Context, records []contracts.GrowthRecord) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE insurance.yoy_growth`); err != nil {
		return fmt.Errorf("truncate growth: %w", err)
	}

	if len(records) > 0 {
		batch := &pgx.Batch{}
		query := `
			INSERT INTO insurance.yoy_growth (state, historical_avg, forecast_avg, yoy_growth_pct)
			VALUES ($1, $2, $3, $4)`

		for _, g := range records {
			batch.Queue(query, g.State, g.HistoricalAvg, g.ForecastAvg, g.GrowthPct)
		}

		br := tx.SendBatch(ctx, batch)
		for range records {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("insert growth record: %w", err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("close batch: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// ListGrowth returns growth records ordered by state.
func (r *Repository) ListGrowth(ctx context.Context) ([]contracts.GrowthRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT state, historical_avg, forecast_avg, yoy_growth_pct
		FROM insurance.yoy_growth
		ORDER BY state`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []contracts.GrowthRecord
	for rows.Next() {
		var g contracts.GrowthRecord
		if err := rows.Scan(&g.State, &g.HistoricalAvg, &g.ForecastAvg, &g.GrowthPct); err != nil {
			return nil, err
		}
		records = append(records, g)
	}

	return records, rows.Err()
}
