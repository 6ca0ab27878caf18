package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Metric string `json:"metric"`
	Count  int    `json:"count"`
}

// degradedClient is enabled but points at a closed port, so every
// write fails the way a down Redis would.
func degradedClient(t *testing.T) *Client {
	t.Helper()
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { rdb.Close() })
	return &Client{rdb: rdb, enabled: true}
}

func TestCacheKeyGenerators(t *testing.T) {
	assert.Equal(t, "forecast:summary", SummaryKey())
	assert.Equal(t, "forecast:predictions:CA", PredictionsKey("CA"))
	assert.Equal(t, "forecast:predictions:ALL", PredictionsKey(""))

	// The map payload varies by both metric and ranking size, so the
	// key must too. A shared key would serve one request's rankings
	// to every later n.
	assert.NotEqual(t, MapDataKey("mean", 3), MapDataKey("mean", 10))
	assert.NotEqual(t, MapDataKey("mean", 10), MapDataKey("growth", 10))
	assert.Equal(t, "forecast:map:mean:10", MapDataKey("mean", 10))
}

func TestGetOrSetDisabledClient(t *testing.T) {
	cache := NewCache(&Client{enabled: false}, "test")

	var dest samplePayload
	err := cache.GetOrSet(context.Background(), "k", &dest, TTLShort, func() (interface{}, error) {
		return samplePayload{Metric: "mean", Count: 3}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "mean", dest.Metric)
	assert.Equal(t, 3, dest.Count)
}

func TestGetOrSetPopulatesDestWhenSetFails(t *testing.T) {
	cache := NewCache(degradedClient(t), "test")

	var dest samplePayload
	err := cache.GetOrSet(context.Background(), "k", &dest, TTLShort, func() (interface{}, error) {
		return samplePayload{Metric: "volatility", Count: 7}, nil
	})
	require.NoError(t, err, "a degraded cache must not fail the read")
	assert.Equal(t, "volatility", dest.Metric, "dest is populated even when the cache write fails")
	assert.Equal(t, 7, dest.Count)
}

func TestGetOrSetPropagatesFnError(t *testing.T) {
	cache := NewCache(&Client{enabled: false}, "test")

	var dest samplePayload
	err := cache.GetOrSet(context.Background(), "k", &dest, TTLShort, func() (interface{}, error) {
		return nil, fmt.Errorf("artifact unavailable")
	})
	assert.Error(t, err)
}
