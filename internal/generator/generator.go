// Package generator produces the synthetic policy dataset: one
// candidate record per (month, state, carrier) combination, thinned by
// state-dependent sampling and priced by state tier with a linear
// monthly drift.
package generator

import (
	"math"
	"math/rand"
	"time"

	"github.com/insurekit/premiumcast/internal/catalog"
	"github.com/insurekit/premiumcast/internal/contracts"
	"github.com/insurekit/premiumcast/pkg/logger"
)

const (
	cancelProbability = 0.15
	cancelMinDays     = 30
	cancelMaxDays     = 330
	maxDayOffset      = 27
)

// Generator builds synthetic policy records. The random source is
// injected so runs are reproducible under a fixed seed.
type Generator struct {
	rng *rand.Rand
	log *logger.Logger
}

// New creates a generator. A zero seed falls back to the clock.
func New(log *logger.Logger, seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		log: log,
	}
}

// Generate materializes the full synthetic dataset for the run. It
// iterates months ascending, then states and carriers in catalog
// order; record IDs follow that order, which is also the documented
// tie-break for the limited-state cap (first LimitedStateCap records
// in generation order survive).
func (g *Generator) Generate(params contracts.GenerationParams) ([]contracts.PolicyRecord, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	start := contracts.MonthAnchor(params.StartDate)
	now := time.Now().UTC()

	var records []contracts.PolicyRecord
	limitedCounts := make(map[string]int)
	var nextID int64 = 1

	for monthIdx := 0; monthIdx < params.Months; monthIdx++ {
		anchor := start.AddDate(0, monthIdx, 0)

		for _, state := range catalog.States {
			limited := catalog.IsLimited(state)

			for _, carrier := range catalog.Carriers {
				// Sampling: sparse markets retain far fewer candidates.
				retention := catalog.RetentionNormal
				if limited {
					retention = catalog.RetentionLimited
				}
				if g.rng.Float64() >= retention {
					continue
				}

				// Hard cap per limited state across the whole run.
				if limited {
					if limitedCounts[state] >= catalog.LimitedStateCap {
						continue
					}
					limitedCounts[state]++
				}

				rec := contracts.PolicyRecord{
					ID:            nextID,
					State:         state,
					Carrier:       carrier,
					EffectiveDate: anchor.AddDate(0, 0, g.rng.Intn(maxDayOffset+1)),
					TermMonths:    g.drawTerm(),
					BusinessLine:  catalog.BusinessLine,
					IsApplicant:   true,
					Premium:       g.price(state, monthIdx),
					CreatedAt:     now,
				}
				nextID++

				if g.rng.Float64() < cancelProbability {
					offset := cancelMinDays + g.rng.Intn(cancelMaxDays-cancelMinDays+1)
					cancel := rec.EffectiveDate.AddDate(0, 0, offset)
					rec.CancelDate = &cancel
				}

				records = append(records, rec)
			}
		}
	}

	g.log.WithFields(map[string]interface{}{
		"months":   params.Months,
		"start":    start.Format("2006-01-02"),
		"records":  len(records),
		"vt_count": limitedCounts["VT"],
		"wy_count": limitedCounts["WY"],
	}).Info("Synthetic policy generation completed")

	return records, nil
}

// price computes the premium for a state at a given elapsed month:
// tier base + drift per elapsed month + uniform noise, rounded to
// cents.
func (g *Generator) price(state string, monthIdx int) float64 {
	tier := catalog.TierFor(state)
	noise := tier.NoiseMin + g.rng.Float64()*(tier.NoiseMax-tier.NoiseMin)
	premium := tier.Base + tier.Drift*float64(monthIdx) + noise
	return math.Round(premium*100) / 100
}

// drawTerm picks a 6 or 12 month policy term, 50/50.
func (g *Generator) drawTerm() int {
	if g.rng.Intn(2) == 0 {
		return 6
	}
	return 12
}
