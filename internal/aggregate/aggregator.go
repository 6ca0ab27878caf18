// Package aggregate derives the normalized monthly premium view that
// feeds the external forecaster. The transform is pure: the same
// policy set always yields the same rows.
package aggregate

import (
	"sort"
	"time"

	"github.com/insurekit/premiumcast/internal/catalog"
	"github.com/insurekit/premiumcast/internal/contracts"
)

// Training window: policies effective outside it never reach the view.
// A default 72-month run starting 2020-01-01 keeps its first 48 months.
var (
	WindowStart = time.Date(2012, 1, 1, 0, 0, 0, 0, time.UTC)
	WindowEnd   = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) // exclusive
)

// Aggregator collapses policy records into one average annualized
// premium per (state, month).
type Aggregator struct{}

// New creates an aggregator
func New() *Aggregator {
	return &Aggregator{}
}

// Include is the row filter. Every condition must hold for a policy to
// contribute to the monthly view.
func (a *Aggregator) Include(p contracts.PolicyRecord) bool {
	if p.EffectiveDate.Before(WindowStart) || !p.EffectiveDate.Before(WindowEnd) {
		return false
	}
	if p.TermMonths != 6 && p.TermMonths != 12 {
		return false
	}
	if p.State == "" || catalog.SentinelStates[p.State] {
		return false
	}
	if p.BusinessLine != catalog.BusinessLine {
		return false
	}
	// A cancellation dated on or before the effective date marks a
	// record that never took effect.
	if p.CancelDate != nil && !p.CancelDate.After(p.EffectiveDate) {
		return false
	}
	if !p.IsApplicant {
		return false
	}
	if p.Carrier == catalog.ExcludedCarrier {
		return false
	}
	return true
}

// NormalizedPremium annualizes a 6-month policy by doubling its
// premium; 12-month policies pass through.
func NormalizedPremium(p contracts.PolicyRecord) float64 {
	if p.TermMonths == 6 {
		return p.Premium * 2
	}
	return p.Premium
}

// BuildMonthly groups surviving records by (state, effective month)
// and averages their normalized premiums. Groups with no survivors
// produce no row. Output is sorted by state then month.
func (a *Aggregator) BuildMonthly(policies []contracts.PolicyRecord) []contracts.MonthlyPremium {
	type key struct {
		state string
		month time.Time
	}
	type acc struct {
		sum   float64
		count int
	}

	groups := make(map[key]*acc)
	for _, p := range policies {
		if !a.Include(p) {
			continue
		}
		k := key{state: p.State, month: contracts.MonthAnchor(p.EffectiveDate)}
		g, ok := groups[k]
		if !ok {
			g = &acc{}
			groups[k] = g
		}
		g.sum += NormalizedPremium(p)
		g.count++
	}

	rows := make([]contracts.MonthlyPremium, 0, len(groups))
	for k, g := range groups {
		rows = append(rows, contracts.MonthlyPremium{
			State:      k.state,
			Month:      k.month,
			AvgPremium: g.sum / float64(g.count),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].State != rows[j].State {
			return rows[i].State < rows[j].State
		}
		return rows[i].Month.Before(rows[j].Month)
	})

	return rows
}

// TrailingAverages computes each state's average monthly premium over
// the 12 calendar months preceding asOf. States with no rows in the
// window are absent from the result.
func TrailingAverages(rows []contracts.MonthlyPremium, asOf time.Time) map[string]float64 {
	from := contracts.MonthAnchor(asOf).AddDate(0, -12, 0)
	to := contracts.MonthAnchor(asOf) // exclusive

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range rows {
		if r.Month.Before(from) || !r.Month.Before(to) {
			continue
		}
		sums[r.State] += r.AvgPremium
		counts[r.State]++
	}

	avgs := make(map[string]float64, len(sums))
	for state, sum := range sums {
		avgs[state] = sum / float64(counts[state])
	}
	return avgs
}
