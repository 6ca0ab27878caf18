package report

import (
	"fmt"
	"sort"

	"github.com/insurekit/premiumcast/internal/catalog"
	"github.com/insurekit/premiumcast/internal/contracts"
)

// Map metrics the dashboard can color states by.
const (
	MetricMean       = "mean"
	MetricGrowth     = "growth"
	MetricVolatility = "volatility"
	MetricRange      = "range"
)

// ValidMetric reports whether the dashboard knows the metric.
func ValidMetric(metric string) bool {
	switch metric {
	case MetricMean, MetricGrowth, MetricVolatility, MetricRange:
		return true
	}
	return false
}

// BuildMapRows merges summaries with growth records into the rows the
// dashboard map consumes. A missing growth artifact degrades to a 0%
// growth column rather than failing; states without a shape-valid
// 2-letter code are dropped.
func BuildMapRows(summaries []contracts.ForecastSummary, growth []contracts.GrowthRecord) []contracts.MapRow {
	growthByState := make(map[string]*contracts.GrowthRecord, len(growth))
	for i := range growth {
		growthByState[growth[i].State] = &growth[i]
	}

	rows := make([]contracts.MapRow, 0, len(summaries))
	for _, s := range summaries {
		if !catalog.IsValidStateCode(s.State) {
			continue
		}

		row := contracts.MapRow{
			State:         s.State,
			MeanPremium:   s.MeanPremium,
			MinPremium:    s.MinPremium,
			MaxPremium:    s.MaxPremium,
			PremiumStddev: s.PremiumStddev,
			PriceRange:    s.MaxPremium - s.MinPremium,
		}

		if s.MeanPremium != 0 {
			row.Volatility = s.PremiumStddev / s.MeanPremium * 100
		}

		if g, ok := growthByState[s.State]; ok && g.GrowthPct != nil {
			row.GrowthPct = *g.GrowthPct
			row.HasGrowth = true
		}

		rows = append(rows, row)
	}

	return rows
}

// MetricValue extracts the requested metric from a map row.
func MetricValue(row contracts.MapRow, metric string) (float64, error) {
	switch metric {
	case MetricMean:
		return row.MeanPremium, nil
	case MetricGrowth:
		return row.GrowthPct, nil
	case MetricVolatility:
		return row.Volatility, nil
	case MetricRange:
		return row.PriceRange, nil
	}
	return 0, fmt.Errorf("unknown map metric %q", metric)
}

// TopStates returns the n rows with the highest metric value,
// descending. Ties break by state code for stable output.
func TopStates(rows []contracts.MapRow, metric string, n int) ([]contracts.MapRow, error) {
	return rankStates(rows, metric, n, true)
}

// BottomStates returns the n rows with the lowest metric value,
// ascending.
func BottomStates(rows []contracts.MapRow, metric string, n int) ([]contracts.MapRow, error) {
	return rankStates(rows, metric, n, false)
}

func rankStates(rows []contracts.MapRow, metric string, n int, descending bool) ([]contracts.MapRow, error) {
	if !ValidMetric(metric) {
		return nil, fmt.Errorf("unknown map metric %q", metric)
	}

	ranked := make([]contracts.MapRow, len(rows))
	copy(ranked, rows)

	sort.Slice(ranked, func(i, j int) bool {
		vi, _ := MetricValue(ranked[i], metric)
		vj, _ := MetricValue(ranked[j], metric)
		if vi != vj {
			if descending {
				return vi > vj
			}
			return vi < vj
		}
		return ranked[i].State < ranked[j].State
	})

	if n < 0 {
		n = 0
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n], nil
}
