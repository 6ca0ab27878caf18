package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insurekit/premiumcast/internal/contracts"
)

func mapSummary(state string, mean, min, max, stddev float64) contracts.ForecastSummary {
	return contracts.ForecastSummary{
		State:         state,
		MeanPremium:   mean,
		MinPremium:    min,
		MaxPremium:    max,
		PremiumStddev: stddev,
	}
}

func growthRec(state string, pct float64) contracts.GrowthRecord {
	return contracts.GrowthRecord{State: state, GrowthPct: &pct}
}

func TestBuildMapRows(t *testing.T) {
	summaries := []contracts.ForecastSummary{
		mapSummary("CA", 1000, 900, 1100, 50),
		mapSummary("TX", 700, 650, 780, 35),
	}
	growth := []contracts.GrowthRecord{
		growthRec("CA", 8.5),
	}

	rows := BuildMapRows(summaries, growth)
	require.Len(t, rows, 2)

	ca := rows[0]
	assert.Equal(t, 200.0, ca.PriceRange)
	assert.InDelta(t, 5.0, ca.Volatility, 1e-9) // 50/1000*100
	assert.Equal(t, 8.5, ca.GrowthPct)
	assert.True(t, ca.HasGrowth)

	// TX has no growth record: degrades to 0, feature flagged off
	tx := rows[1]
	assert.Zero(t, tx.GrowthPct)
	assert.False(t, tx.HasGrowth)
}

func TestBuildMapRowsNilGrowthTable(t *testing.T) {
	rows := BuildMapRows([]contracts.ForecastSummary{mapSummary("CA", 1000, 900, 1100, 50)}, nil)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].HasGrowth, "missing growth artifact hides the feature")
}

func TestBuildMapRowsDropsInvalidStateCodes(t *testing.T) {
	summaries := []contracts.ForecastSummary{
		mapSummary("CA", 1000, 900, 1100, 50),
		mapSummary("CAL", 1000, 900, 1100, 50),
		mapSummary("", 1000, 900, 1100, 50),
		mapSummary("c1", 1000, 900, 1100, 50),
	}

	rows := BuildMapRows(summaries, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, "CA", rows[0].State)
}

func TestBuildMapRowsZeroMeanVolatility(t *testing.T) {
	rows := BuildMapRows([]contracts.ForecastSummary{mapSummary("CA", 0, 0, 0, 10)}, nil)
	require.Len(t, rows, 1)
	assert.Zero(t, rows[0].Volatility, "zero mean must not divide")
}

func TestTopAndBottomStates(t *testing.T) {
	rows := BuildMapRows([]contracts.ForecastSummary{
		mapSummary("CA", 1000, 900, 1100, 50),
		mapSummary("TX", 700, 650, 780, 35),
		mapSummary("OH", 550, 500, 620, 20),
	}, nil)

	top, err := TopStates(rows, MetricMean, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "CA", top[0].State)
	assert.Equal(t, "TX", top[1].State)

	bottom, err := BottomStates(rows, MetricMean, 2)
	require.NoError(t, err)
	assert.Equal(t, "OH", bottom[0].State)

	// n larger than the row count is clamped
	all, err := TopStates(rows, MetricRange, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = TopStates(rows, "bogus", 2)
	assert.Error(t, err)
}

func TestRankingNegativeN(t *testing.T) {
	rows := BuildMapRows([]contracts.ForecastSummary{
		mapSummary("CA", 1000, 900, 1100, 50),
		mapSummary("TX", 700, 650, 780, 35),
	}, nil)

	top, err := TopStates(rows, MetricMean, -1)
	require.NoError(t, err)
	assert.Empty(t, top)

	bottom, err := BottomStates(rows, MetricMean, -3)
	require.NoError(t, err)
	assert.Empty(t, bottom)
}

func TestMetricValue(t *testing.T) {
	row := contracts.MapRow{MeanPremium: 1, GrowthPct: 2, Volatility: 3, PriceRange: 4}

	for metric, want := range map[string]float64{
		MetricMean:       1,
		MetricGrowth:     2,
		MetricVolatility: 3,
		MetricRange:      4,
	} {
		v, err := MetricValue(row, metric)
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}

	_, err := MetricValue(row, "nope")
	assert.Error(t, err)
}
