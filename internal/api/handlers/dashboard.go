package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/insurekit/premiumcast/internal/catalog"
	"github.com/insurekit/premiumcast/internal/contracts"
	"github.com/insurekit/premiumcast/internal/report"
	"github.com/insurekit/premiumcast/pkg/logger"
	"github.com/insurekit/premiumcast/pkg/redis"
)

// DashboardHandler serves the read endpoints the dashboard consumes.
// Every endpoint degrades gracefully: a missing artifact produces an
// empty payload with available=false, never a 5xx, so one failed
// retrain cannot blank the whole dashboard.
type DashboardHandler struct {
	store   contracts.ForecastStore
	monthly contracts.MonthlyStore
	cache   *redis.Cache
	logger  *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	store contracts.ForecastStore,
	monthly contracts.MonthlyStore,
	cache *redis.Cache,
	log *logger.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		store:   store,
		monthly: monthly,
		cache:   cache,
		logger:  log,
	}
}

// SummaryResponse is the per-state forecast summary payload.
type SummaryResponse struct {
	Available bool                        `json:"available"`
	Summaries []contracts.ForecastSummary `json:"summaries"`
}

// GetSummary returns the per-state forecast summaries
// GET /api/dashboard/summary
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var resp SummaryResponse
	err := h.cache.GetOrSet(ctx, redis.SummaryKey(), &resp, redis.TTLDaily, func() (interface{}, error) {
		summaries, err := h.store.ListSummaries(ctx)
		if err != nil {
			return nil, err
		}
		return SummaryResponse{
			Available: len(summaries) > 0,
			Summaries: emptyIfNilSummaries(summaries),
		}, nil
	})
	if err != nil {
		h.logger.WithError(err).Error("Failed to get forecast summaries")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve forecast summaries")
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// GrowthResponse is the per-state growth payload.
type GrowthResponse struct {
	Available bool                     `json:"available"`
	Growth    []contracts.GrowthRecord `json:"growth"`
}

// GetGrowth returns the per-state growth records
// GET /api/dashboard/growth
func (h *DashboardHandler) GetGrowth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var resp GrowthResponse
	err := h.cache.GetOrSet(ctx, redis.GrowthKey(), &resp, redis.TTLDaily, func() (interface{}, error) {
		growth, err := h.store.ListGrowth(ctx)
		if err != nil {
			return nil, err
		}
		return GrowthResponse{
			Available: len(growth) > 0,
			Growth:    emptyIfNilGrowth(growth),
		}, nil
	})
	if err != nil {
		h.logger.WithError(err).Error("Failed to get growth records")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve growth records")
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// PredictionsResponse is the raw forecast points payload.
type PredictionsResponse struct {
	Available bool                      `json:"available"`
	State     string                    `json:"state,omitempty"`
	Points    []contracts.ForecastPoint `json:"points"`
}

// GetPredictions returns forecast points, optionally for one state
// GET /api/dashboard/predictions?state=CA
func (h *DashboardHandler) GetPredictions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	state := r.URL.Query().Get("state")
	if state != "" && !catalog.IsValidStateCode(state) {
		respondError(w, http.StatusBadRequest, "state must be a 2-letter code")
		return
	}

	var resp PredictionsResponse
	err := h.cache.GetOrSet(ctx, redis.PredictionsKey(state), &resp, redis.TTLDaily, func() (interface{}, error) {
		points, err := h.store.ListPredictions(ctx, state)
		if err != nil {
			return nil, err
		}
		return PredictionsResponse{
			Available: len(points) > 0,
			State:     state,
			Points:    emptyIfNilPoints(points),
		}, nil
	})
	if err != nil {
		h.logger.WithError(err).Error("Failed to get predictions")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve predictions")
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// MapResponse is the choropleth payload: one row per state plus the
// top/bottom rankings for the requested metric.
type MapResponse struct {
	Available bool               `json:"available"`
	Metric    string             `json:"metric"`
	Rows      []contracts.MapRow `json:"rows"`
	Top       []contracts.MapRow `json:"top"`
	Bottom    []contracts.MapRow `json:"bottom"`
}

// GetMapData returns the map rows colored by the requested metric
// GET /api/dashboard/map?metric=mean&n=10
func (h *DashboardHandler) GetMapData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	metric := r.URL.Query().Get("metric")
	if metric == "" {
		metric = report.MetricMean
	}
	if !report.ValidMetric(metric) {
		respondError(w, http.StatusBadRequest, "unknown metric (want mean, growth, volatility or range)")
		return
	}

	n := 10
	if nStr := r.URL.Query().Get("n"); nStr != "" {
		parsed, err := strconv.Atoi(nStr)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "n must be a positive integer")
			return
		}
		n = parsed
	}

	var resp MapResponse
	err := h.cache.GetOrSet(ctx, redis.MapDataKey(metric, n), &resp, redis.TTLDaily, func() (interface{}, error) {
		summaries, err := h.store.ListSummaries(ctx)
		if err != nil {
			return nil, err
		}

		// The growth artifact is optional for the map: without it the
		// rows carry has_growth=false and the ranking still works.
		growth, err := h.store.ListGrowth(ctx)
		if err != nil {
			h.logger.WithError(err).Warn("Growth artifact unavailable, map degrades")
			growth = nil
		}

		rows := report.BuildMapRows(summaries, growth)
		top, _ := report.TopStates(rows, metric, n)
		bottom, _ := report.BottomStates(rows, metric, n)

		return MapResponse{
			Available: len(rows) > 0,
			Metric:    metric,
			Rows:      rows,
			Top:       top,
			Bottom:    bottom,
		}, nil
	})
	if err != nil {
		h.logger.WithError(err).Error("Failed to build map data")
		respondError(w, http.StatusInternalServerError, "Failed to build map data")
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// MonthlyResponse is the historical monthly series payload.
type MonthlyResponse struct {
	Available bool                       `json:"available"`
	Rows      []contracts.MonthlyPremium `json:"rows"`
}

// GetMonthly returns the aggregated monthly series
// GET /api/dashboard/monthly?since=2024-01-01
func (h *DashboardHandler) GetMonthly(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var rows []contracts.MonthlyPremium
	var err error

	if sinceStr := r.URL.Query().Get("since"); sinceStr != "" {
		since, parseErr := time.Parse("2006-01-02", sinceStr)
		if parseErr != nil {
			respondError(w, http.StatusBadRequest, "Invalid 'since' date format (expected YYYY-MM-DD)")
			return
		}
		rows, err = h.monthly.ListSince(ctx, since)
	} else {
		rows, err = h.monthly.List(ctx)
	}

	if err != nil {
		h.logger.WithError(err).Error("Failed to get monthly series")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve monthly series")
		return
	}

	respondJSON(w, http.StatusOK, MonthlyResponse{
		Available: len(rows) > 0,
		Rows:      emptyIfNilMonthly(rows),
	})
}

// JSON arrays, not null, even when empty

func emptyIfNilSummaries(s []contracts.ForecastSummary) []contracts.ForecastSummary {
	if s == nil {
		return []contracts.ForecastSummary{}
	}
	return s
}

func emptyIfNilGrowth(g []contracts.GrowthRecord) []contracts.GrowthRecord {
	if g == nil {
		return []contracts.GrowthRecord{}
	}
	return g
}

func emptyIfNilPoints(p []contracts.ForecastPoint) []contracts.ForecastPoint {
	if p == nil {
		return []contracts.ForecastPoint{}
	}
	return p
}

func emptyIfNilMonthly(m []contracts.MonthlyPremium) []contracts.MonthlyPremium {
	if m == nil {
		return []contracts.MonthlyPremium{}
	}
	return m
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
