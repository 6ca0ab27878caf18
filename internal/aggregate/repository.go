package aggregate

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/insurekit/premiumcast/internal/contracts"
)

// Repository persists the normalized monthly premium view.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new monthly view repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Replace swaps in a freshly computed view in one transaction.
func (r *Repository) Replace(ctx context.Context, rows []contracts.MonthlyPremium) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE insurance.monthly_premiums`); err != nil {
		return fmt.Errorf("truncate monthly view: %w", err)
	}

	if len(rows) > 0 {
		batch := &pgx.Batch{}
		query := `
			INSERT INTO insurance.monthly_premiums (state, month, avg_premium)
			VALUES ($1, $2, $3)`

		for _, row := range rows {
			batch.Queue(query, row.State, row.Month, row.AvgPremium)
		}

		br := tx.SendBatch(ctx, batch)
		for range rows {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("insert monthly row: %w", err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("close batch: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// List returns the full view ordered by state then month.
func (r *Repository) List(ctx context.Context) ([]contracts.MonthlyPremium, error) {
	return r.list(ctx, `
		SELECT state, month, avg_premium
		FROM insurance.monthly_premiums
		ORDER BY state, month`)
}

// ListSince returns rows with month >= from, ordered by state then month.
func (r *Repository) ListSince(ctx context.Context, from time.Time) ([]contracts.MonthlyPremium, error) {
	return r.list(ctx, `
		SELECT state, month, avg_premium
		FROM insurance.monthly_premiums
		WHERE month >= $1
		ORDER BY state, month`, from)
}

func (r *Repository) list(ctx context.Context, query string, args ...interface{}) ([]contracts.MonthlyPremium, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []contracts.MonthlyPremium
	for rows.Next() {
		var m contracts.MonthlyPremium
		if err := rows.Scan(&m.State, &m.Month, &m.AvgPremium); err != nil {
			return nil, err
		}
		result = append(result, m)
	}

	return result, rows.Err()
}
