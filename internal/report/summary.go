// Package report derives the per-state reporting artifacts from the
// forecaster's output: descriptive summaries, YoY growth and the rows
// the dashboard map plots. All transforms here are pure, single-pass
// aggregations over already-materialized tables.
package report

import (
	"math"
	"sort"

	"github.com/insurekit/premiumcast/internal/contracts"
)

// BuildSummaries groups forecast points by state and computes the
// descriptive statistics row per state. The standard deviation is the
// sample formula (n-1); a single-point state reports 0. A state with
// no forecast points simply has no row.
func BuildSummaries(points []contracts.ForecastPoint) []contracts.ForecastSummary {
	byState := make(map[string][]contracts.ForecastPoint)
	for _, p := range points {
		byState[p.State] = append(byState[p.State], p)
	}

	summaries := make([]contracts.ForecastSummary, 0, len(byState))
	for state, pts := range byState {
		s := contracts.ForecastSummary{
			State:       state,
			WindowStart: pts[0].Timestamp,
			WindowEnd:   pts[0].Timestamp,
			MinPremium:  pts[0].Forecast,
			MaxPremium:  pts[0].Forecast,
			Points:      len(pts),
		}

		var sum, lowerSum, upperSum float64
		for _, p := range pts {
			if p.Timestamp.Before(s.WindowStart) {
				s.WindowStart = p.Timestamp
			}
			if p.Timestamp.After(s.WindowEnd) {
				s.WindowEnd = p.Timestamp
			}
			if p.Forecast < s.MinPremium {
				s.MinPremium = p.Forecast
			}
			if p.Forecast > s.MaxPremium {
				s.MaxPremium = p.Forecast
			}
			sum += p.Forecast
			lowerSum += p.LowerBound
			upperSum += p.UpperBound
		}

		n := float64(len(pts))
		s.MeanPremium = sum / n
		s.AvgLowerBound = lowerSum / n
		s.AvgUpperBound = upperSum / n
		s.PremiumStddev = sampleStddev(pts, s.MeanPremium)

		summaries = append(summaries, s)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].State < summaries[j].State
	})

	return summaries
}

// sampleStddev computes the sample (n-1) standard deviation of the
// forecast values. Returns 0 for fewer than two points.
func sampleStddev(pts []contracts.ForecastPoint, mean float64) float64 {
	if len(pts) < 2 {
		return 0
	}
	var sumSq float64
	for _, p := range pts {
		d := p.Forecast - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(pts)-1))
}
