package report

import (
	"github.com/insurekit/premiumcast/internal/contracts"
)

// BuildGrowth pairs each state's forecast mean against its trailing
// 12-month historical average. A state with no historical baseline, or
// a baseline averaging to zero, gets a nil growth percentage; the
// division is never attempted against zero.
func BuildGrowth(summaries []contracts.ForecastSummary, trailing map[string]float64) []contracts.GrowthRecord {
	records := make([]contracts.GrowthRecord, 0, len(summaries))

	for _, s := range summaries {
		rec := contracts.GrowthRecord{
			State:       s.State,
			ForecastAvg: s.MeanPremium,
		}

		if hist, ok := trailing[s.State]; ok {
			h := hist
			rec.HistoricalAvg = &h
			if h != 0 {
				pct := (s.MeanPremium - h) / h * 100
				rec.GrowthPct = &pct
			}
		}

		records = append(records, rec)
	}

	return records
}
