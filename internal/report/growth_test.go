package report

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insurekit/premiumcast/internal/contracts"
)

func summary(state string, mean float64) contracts.ForecastSummary {
	return contracts.ForecastSummary{State: state, MeanPremium: mean}
}

func TestBuildGrowth(t *testing.T) {
	summaries := []contracts.ForecastSummary{
		summary("CA", 1100),
		summary("TX", 700),
	}
	trailing := map[string]float64{
		"CA": 1000,
		"TX": 700,
	}

	records := BuildGrowth(summaries, trailing)
	require.Len(t, records, 2)

	ca := records[0]
	assert.Equal(t, "CA", ca.State)
	require.NotNil(t, ca.HistoricalAvg)
	assert.Equal(t, 1000.0, *ca.HistoricalAvg)
	require.NotNil(t, ca.GrowthPct)
	assert.InDelta(t, 10.0, *ca.GrowthPct, 1e-9)

	tx := records[1]
	require.NotNil(t, tx.GrowthPct)
	assert.InDelta(t, 0.0, *tx.GrowthPct, 1e-9)
}

func TestBuildGrowthMissingBaseline(t *testing.T) {
	records := BuildGrowth([]contracts.ForecastSummary{summary("WY", 620)}, map[string]float64{})
	require.Len(t, records, 1)

	assert.Nil(t, records[0].HistoricalAvg, "no baseline means no historical average")
	assert.Nil(t, records[0].GrowthPct, "growth is absent, not computed")
	assert.Equal(t, 620.0, records[0].ForecastAvg)
}

func TestBuildGrowthZeroBaseline(t *testing.T) {
	records := BuildGrowth(
		[]contracts.ForecastSummary{summary("VT", 580)},
		map[string]float64{"VT": 0},
	)
	require.Len(t, records, 1)

	rec := records[0]
	require.NotNil(t, rec.HistoricalAvg)
	assert.Zero(t, *rec.HistoricalAvg)
	assert.Nil(t, rec.GrowthPct, "zero baseline must never divide")
}

func TestBuildGrowthNeverProducesInf(t *testing.T) {
	trailing := map[string]float64{"CA": 0}
	records := BuildGrowth([]contracts.ForecastSummary{summary("CA", 1000)}, trailing)

	for _, rec := range records {
		if rec.GrowthPct != nil {
			assert.False(t, math.IsInf(*rec.GrowthPct, 0))
			assert.False(t, math.IsNaN(*rec.GrowthPct))
		}
	}
}
