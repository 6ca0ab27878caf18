// Package catalog holds the static reference data the synthetic
// pipeline is built on: state codes, carrier names, pricing tiers and
// the filter sentinels. Everything here is fixed at compile time.
package catalog

// States lists the 50 two-letter state codes, in the order the
// generator iterates them.
var States = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA",
	"HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD",
	"MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ",
	"NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC",
	"SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
}

// Carriers lists the 10 synthetic carrier names.
var Carriers = []string{
	"Granite Mutual",
	"Keystone National",
	"Blue Harbor Insurance",
	"Summit Assurance",
	"Pioneer General",
	"Lakeside Casualty",
	"Redwood Indemnity",
	"Atlas Shield",
	"Meridian Underwriters",
	"Frontier Standard",
}

// BusinessLine is the only line of business in the synthetic dataset.
const BusinessLine = "Personal Auto"

// LimitedStates are the deliberately sparse markets: sampled at a much
// lower retention rate and hard-capped at LimitedStateCap records.
var LimitedStates = map[string]bool{
	"VT": true,
	"WY": true,
}

// LimitedStateCap is the maximum number of records a limited state may
// carry across a full generation run.
const LimitedStateCap = 17

// Sampling retention probabilities per candidate (month, state,
// carrier) combination.
const (
	RetentionNormal  = 0.70
	RetentionLimited = 0.03
)

// Tier is a pricing bracket grouping states by baseline premium level
// and monthly drift rate.
type Tier struct {
	Name     string
	Base     float64 // baseline annual premium
	Drift    float64 // premium increase per elapsed month
	NoiseMin float64 // uniform noise lower bound
	NoiseMax float64 // uniform noise upper bound
}

var (
	// TierA covers the high-cost states.
	TierA = Tier{Name: "A", Base: 800, Drift: 8, NoiseMin: -100, NoiseMax: 150}
	// TierB covers the mid-cost states.
	TierB = Tier{Name: "B", Base: 650, Drift: 6.5, NoiseMin: -80, NoiseMax: 120}
	// TierC covers the remaining 44 states.
	TierC = Tier{Name: "C", Base: 550, Drift: 5, NoiseMin: -60, NoiseMax: 100}
)

var tierAStates = map[string]bool{"CA": true, "NY": true, "FL": true}
var tierBStates = map[string]bool{"TX": true, "NJ": true, "PA": true}

// TierFor returns the pricing tier for a state.
func TierFor(state string) Tier {
	switch {
	case tierAStates[state]:
		return TierA
	case tierBStates[state]:
		return TierB
	default:
		return TierC
	}
}

// IsLimited reports whether a state is a limited (sparse) market.
func IsLimited(state string) bool {
	return LimitedStates[state]
}

// SentinelStates are known-bad state codes that occasionally show up
// in upstream policy feeds and must never reach the monthly view.
var SentinelStates = map[string]bool{
	"XX": true,
	"ZZ": true,
	"NA": true,
	"UN": true,
}

// ExcludedCarrier is dropped by the monthly aggregation filter. It is
// a book-transfer shell that reports premiums inconsistently.
const ExcludedCarrier = "Frontier Standard"

// IsKnownState reports whether the code is one of the 50 catalog states.
func IsKnownState(state string) bool {
	for _, s := range States {
		if s == state {
			return true
		}
	}
	return false
}

// IsValidStateCode reports whether a code is a plausible 2-letter
// uppercase state code, the shape the dashboard map accepts.
func IsValidStateCode(code string) bool {
	if len(code) != 2 {
		return false
	}
	for i := 0; i < 2; i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}
