package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insurekit/premiumcast/internal/catalog"
	"github.com/insurekit/premiumcast/internal/contracts"
)

func policy(state string, effective time.Time, term int, premium float64) contracts.PolicyRecord {
	return contracts.PolicyRecord{
		State:         state,
		Carrier:       "Granite Mutual",
		EffectiveDate: effective,
		TermMonths:    term,
		BusinessLine:  catalog.BusinessLine,
		IsApplicant:   true,
		Premium:       premium,
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIncludeFilter(t *testing.T) {
	a := New()
	base := policy("CA", date(2020, 3, 15), 12, 800)

	assert.True(t, a.Include(base))

	tests := []struct {
		name   string
		mutate func(p contracts.PolicyRecord) contracts.PolicyRecord
	}{
		{"before training window", func(p contracts.PolicyRecord) contracts.PolicyRecord {
			p.EffectiveDate = date(2011, 12, 31)
			return p
		}},
		{"on window end", func(p contracts.PolicyRecord) contracts.PolicyRecord {
			p.EffectiveDate = date(2024, 1, 1)
			return p
		}},
		{"after training window", func(p contracts.PolicyRecord) contracts.PolicyRecord {
			p.EffectiveDate = date(2025, 6, 1)
			return p
		}},
		{"bad term", func(p contracts.PolicyRecord) contracts.PolicyRecord {
			p.TermMonths = 9
			return p
		}},
		{"empty state", func(p contracts.PolicyRecord) contracts.PolicyRecord {
			p.State = ""
			return p
		}},
		{"sentinel state", func(p contracts.PolicyRecord) contracts.PolicyRecord {
			p.State = "XX"
			return p
		}},
		{"wrong business line", func(p contracts.PolicyRecord) contracts.PolicyRecord {
			p.BusinessLine = "Homeowners"
			return p
		}},
		{"cancelled before effective", func(p contracts.PolicyRecord) contracts.PolicyRecord {
			c := p.EffectiveDate.AddDate(0, 0, -1)
			p.CancelDate = &c
			return p
		}},
		{"cancelled on effective date", func(p contracts.PolicyRecord) contracts.PolicyRecord {
			c := p.EffectiveDate
			p.CancelDate = &c
			return p
		}},
		{"non applicant", func(p contracts.PolicyRecord) contracts.PolicyRecord {
			p.IsApplicant = false
			return p
		}},
		{"excluded carrier", func(p contracts.PolicyRecord) contracts.PolicyRecord {
			p.Carrier = catalog.ExcludedCarrier
			return p
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, a.Include(tt.mutate(base)))
		})
	}

	// Cancellation after the effective date is fine
	withCancel := base
	c := base.EffectiveDate.AddDate(0, 0, 90)
	withCancel.CancelDate = &c
	assert.True(t, a.Include(withCancel))
}

func TestNormalizedPremium(t *testing.T) {
	p6 := policy("CA", date(2020, 3, 1), 6, 400)
	p12 := policy("CA", date(2020, 3, 1), 12, 800)

	assert.Equal(t, 800.0, NormalizedPremium(p6), "6-month premium doubles")
	assert.Equal(t, 800.0, NormalizedPremium(p12), "12-month premium passes through")
}

func TestBuildMonthlyAveragesNormalizedPremiums(t *testing.T) {
	a := New()

	policies := []contracts.PolicyRecord{
		policy("CA", date(2020, 3, 5), 12, 900),
		policy("CA", date(2020, 3, 20), 6, 400), // normalizes to 800
		policy("CA", date(2020, 4, 2), 12, 880),
		policy("TX", date(2020, 3, 9), 12, 700),
	}

	rows := a.BuildMonthly(policies)
	require.Len(t, rows, 3)

	// Sorted by state then month
	assert.Equal(t, "CA", rows[0].State)
	assert.Equal(t, date(2020, 3, 1), rows[0].Month)
	assert.InDelta(t, 850.0, rows[0].AvgPremium, 1e-9) // (900 + 800) / 2

	assert.Equal(t, "CA", rows[1].State)
	assert.Equal(t, date(2020, 4, 1), rows[1].Month)
	assert.InDelta(t, 880.0, rows[1].AvgPremium, 1e-9)

	assert.Equal(t, "TX", rows[2].State)
	assert.InDelta(t, 700.0, rows[2].AvgPremium, 1e-9)
}

func TestBuildMonthlyOmitsEmptyGroups(t *testing.T) {
	a := New()

	// The only WY record fails the filter, so WY must simply be absent
	// rather than appear as a zero row.
	bad := policy("WY", date(2020, 5, 10), 12, 600)
	bad.IsApplicant = false

	rows := a.BuildMonthly([]contracts.PolicyRecord{
		bad,
		policy("CA", date(2020, 5, 3), 12, 850),
	})

	require.Len(t, rows, 1)
	assert.Equal(t, "CA", rows[0].State)
}

func TestBuildMonthlyIdempotent(t *testing.T) {
	a := New()
	policies := []contracts.PolicyRecord{
		policy("CA", date(2020, 3, 5), 12, 900),
		policy("CA", date(2020, 3, 20), 6, 400),
		policy("NY", date(2021, 7, 11), 12, 910),
		policy("TX", date(2020, 3, 9), 6, 350),
	}

	first := a.BuildMonthly(policies)
	second := a.BuildMonthly(policies)
	assert.Equal(t, first, second, "unchanged input must yield identical output")
}

func TestTrailingAverages(t *testing.T) {
	asOf := date(2026, 1, 15)
	rows := []contracts.MonthlyPremium{
		{State: "CA", Month: date(2025, 1, 1), AvgPremium: 1000}, // in window
		{State: "CA", Month: date(2025, 12, 1), AvgPremium: 1100}, // in window
		{State: "CA", Month: date(2024, 12, 1), AvgPremium: 500}, // too old
		{State: "CA", Month: date(2026, 1, 1), AvgPremium: 9000}, // current month, excluded
		{State: "TX", Month: date(2023, 6, 1), AvgPremium: 700},  // too old
	}

	avgs := TrailingAverages(rows, asOf)

	require.Contains(t, avgs, "CA")
	assert.InDelta(t, 1050.0, avgs["CA"], 1e-9)

	_, ok := avgs["TX"]
	assert.False(t, ok, "state with no rows in the window is absent")
}
