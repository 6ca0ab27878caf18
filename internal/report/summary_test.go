package report

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insurekit/premiumcast/internal/contracts"
)

func point(state string, y int, m time.Month, forecast, lower, upper float64) contracts.ForecastPoint {
	return contracts.ForecastPoint{
		State:      state,
		Timestamp:  time.Date(y, m, 1, 0, 0, 0, 0, time.UTC),
		Forecast:   forecast,
		LowerBound: lower,
		UpperBound: upper,
	}
}

func TestBuildSummaries(t *testing.T) {
	points := []contracts.ForecastPoint{
		point("CA", 2026, 2, 1200, 1100, 1300),
		point("CA", 2026, 1, 1000, 950, 1050),
		point("CA", 2026, 3, 1100, 1000, 1200),
		point("TX", 2026, 1, 700, 650, 750),
	}

	summaries := BuildSummaries(points)
	require.Len(t, summaries, 2)

	ca := summaries[0]
	assert.Equal(t, "CA", ca.State)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), ca.WindowStart)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), ca.WindowEnd)
	assert.InDelta(t, 1100.0, ca.MeanPremium, 1e-9)
	assert.Equal(t, 1000.0, ca.MinPremium)
	assert.Equal(t, 1200.0, ca.MaxPremium)
	assert.InDelta(t, (950.0+1100+1000)/3, ca.AvgLowerBound, 1e-9)
	assert.InDelta(t, (1050.0+1300+1200)/3, ca.AvgUpperBound, 1e-9)
	assert.Equal(t, 3, ca.Points)

	// Sample stddev of {1000, 1200, 1100} around mean 1100 is 100
	assert.InDelta(t, 100.0, ca.PremiumStddev, 1e-9)

	tx := summaries[1]
	assert.Equal(t, "TX", tx.State)
	assert.Equal(t, 1, tx.Points)
}

func TestBuildSummariesSinglePointStddevZero(t *testing.T) {
	summaries := BuildSummaries([]contracts.ForecastPoint{
		point("WY", 2026, 1, 600, 550, 650),
	})
	require.Len(t, summaries, 1)
	assert.Zero(t, summaries[0].PremiumStddev)
	assert.False(t, math.IsNaN(summaries[0].PremiumStddev))
}

func TestBuildSummariesEmptyInput(t *testing.T) {
	summaries := BuildSummaries(nil)
	assert.Empty(t, summaries, "a state the forecaster skipped has no summary row")
}

func TestBuildSummariesSortedByState(t *testing.T) {
	points := []contracts.ForecastPoint{
		point("TX", 2026, 1, 700, 650, 750),
		point("AL", 2026, 1, 500, 450, 550),
		point("CA", 2026, 1, 1000, 950, 1050),
	}

	summaries := BuildSummaries(points)
	require.Len(t, summaries, 3)
	assert.Equal(t, "AL", summaries[0].State)
	assert.Equal(t, "CA", summaries[1].State)
	assert.Equal(t, "TX", summaries[2].State)
}
