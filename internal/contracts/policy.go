package contracts

import (
	"fmt"
	"time"
)

// PolicyRecord is one synthetic auto policy row.
type PolicyRecord struct {
	ID            int64      `json:"id"`
	State         string     `json:"state"`
	Carrier       string     `json:"carrier"`
	EffectiveDate time.Time  `json:"effective_date"`
	TermMonths    int        `json:"term_months"` // 6 or 12
	BusinessLine  string     `json:"business_line"`
	IsApplicant   bool       `json:"is_applicant"`
	Premium       float64    `json:"premium"`
	CancelDate    *time.Time `json:"cancel_date,omitempty"` // nil when never cancelled
	CreatedAt     time.Time  `json:"created_at"`
}

// Cancelled reports whether the policy carries a cancellation date.
func (p PolicyRecord) Cancelled() bool {
	return p.CancelDate != nil
}

// MonthlyPremium is one row of the normalized monthly view: the
// average annualized premium for a (state, month) pair. 6-month terms
// are doubled to their 12-month equivalent before averaging.
type MonthlyPremium struct {
	State      string    `json:"state"`
	Month      time.Time `json:"month"` // truncated to the first of the month, UTC
	AvgPremium float64   `json:"avg_premium"`
}

// GenerationParams controls a synthetic generation run.
type GenerationParams struct {
	StartDate time.Time `json:"start_date"`
	Months    int       `json:"months"`
	Seed      int64     `json:"seed"` // 0 seeds from the clock
}

// Validate rejects malformed generation parameters before any data is
// produced.
func (p GenerationParams) Validate() error {
	if p.StartDate.IsZero() {
		return fmt.Errorf("start date is required")
	}
	if p.Months <= 0 {
		return fmt.Errorf("months must be positive, got %d", p.Months)
	}
	return nil
}

// DefaultGenerationParams returns the standard 72-month run starting
// 2020-01-01.
func DefaultGenerationParams() GenerationParams {
	return GenerationParams{
		StartDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Months:    72,
	}
}

// MonthAnchor truncates t to the first of its month in UTC.
func MonthAnchor(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
