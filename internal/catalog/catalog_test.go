package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogSizes(t *testing.T) {
	assert.Len(t, States, 50)
	assert.Len(t, Carriers, 10)
	assert.Len(t, LimitedStates, 2)

	// No duplicate state codes
	seen := make(map[string]bool)
	for _, s := range States {
		assert.False(t, seen[s], "duplicate state code %s", s)
		seen[s] = true
	}
}

func TestLimitedStatesAreKnown(t *testing.T) {
	for s := range LimitedStates {
		assert.True(t, IsKnownState(s), "limited state %s must be in the catalog", s)
	}
	assert.True(t, IsLimited("WY"))
	assert.True(t, IsLimited("VT"))
	assert.False(t, IsLimited("CA"))
}

func TestTierFor(t *testing.T) {
	assert.Equal(t, "A", TierFor("CA").Name)
	assert.Equal(t, "A", TierFor("NY").Name)
	assert.Equal(t, "A", TierFor("FL").Name)
	assert.Equal(t, "B", TierFor("TX").Name)
	assert.Equal(t, "C", TierFor("OH").Name)
	assert.Equal(t, "C", TierFor("WY").Name)

	// Tier counts: 3 + 3 + 44
	var a, b, c int
	for _, s := range States {
		switch TierFor(s).Name {
		case "A":
			a++
		case "B":
			b++
		default:
			c++
		}
	}
	assert.Equal(t, 3, a)
	assert.Equal(t, 3, b)
	assert.Equal(t, 44, c)
}

func TestExcludedCarrierIsInCatalog(t *testing.T) {
	found := false
	for _, c := range Carriers {
		if c == ExcludedCarrier {
			found = true
		}
	}
	assert.True(t, found, "excluded carrier must be a real catalog carrier for the filter to matter")
}

func TestSentinelStatesNotInCatalog(t *testing.T) {
	assert.Len(t, SentinelStates, 4)
	for s := range SentinelStates {
		assert.False(t, IsKnownState(s), "sentinel %s must not be a real state", s)
	}
}

func TestIsValidStateCode(t *testing.T) {
	assert.True(t, IsValidStateCode("CA"))
	assert.True(t, IsValidStateCode("ZZ")) // shape-valid, filtered elsewhere
	assert.False(t, IsValidStateCode("C"))
	assert.False(t, IsValidStateCode("CAL"))
	assert.False(t, IsValidStateCode("c a"))
	assert.False(t, IsValidStateCode("c1"))
	assert.False(t, IsValidStateCode(""))
}
