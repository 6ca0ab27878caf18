package generator

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/insurekit/premiumcast/internal/contracts"
)

// Repository persists synthetic policy records.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new policy repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ReplaceAll swaps in a freshly generated dataset. Truncate and insert
// run in one transaction so a failed run never leaves a partially
// populated table visible to downstream stages.
func (r *Repository) ReplaceAll(ctx context.Context, policies []contracts.PolicyRecord) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE insurance.policies`); err != nil {
		return fmt.Errorf("truncate policies: %w", err)
	}

	if len(policies) > 0 {
		batch := &pgx.Batch{}
		query := `
			INSERT INTO insurance.policies
				(id, state, carrier, effective_date, term_months, business_line, is_applicant, premium, cancel_date, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

		for _, p := range policies {
			batch.Queue(query, p.ID, p.State, p.Carrier, p.EffectiveDate,
				p.TermMonths, p.BusinessLine, p.IsApplicant, p.Premium,
				p.CancelDate, p.CreatedAt)
		}

		br := tx.SendBatch(ctx, batch)
		for range policies {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("insert policy: %w", err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("close batch: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// List returns all policy records ordered by id.
func (r *Repository) List(ctx context.Context) ([]contracts.PolicyRecord, error) {
	query := `
		SELECT id, state, carrier, effective_date, term_months, business_line,
			   is_applicant, premium, cancel_date, created_at
		FROM insurance.policies
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var policies []contracts.PolicyRecord
	for rows.Next() {
		var p contracts.PolicyRecord
		if err := rows.Scan(
			&p.ID, &p.State, &p.Carrier, &p.EffectiveDate, &p.TermMonths,
			&p.BusinessLine, &p.IsApplicant, &p.Premium, &p.CancelDate, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}

	return policies, rows.Err()
}

// Count returns the total number of policy records.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM insurance.policies`).Scan(&count)
	return count, err
}

// CountByState returns per-state record counts.
func (r *Repository) CountByState(ctx context.Context) (map[string]int64, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT state, COUNT(*)
		FROM insurance.policies
		GROUP BY state
		ORDER BY state`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var state string
		var count int64
		if err := rows.Scan(&state, &count); err != nil {
			return nil, err
		}
		counts[state] = count
	}

	return counts, rows.Err()
}
