package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/insurekit/premiumcast/internal/contracts"
	"github.com/insurekit/premiumcast/internal/pipeline"
	"github.com/insurekit/premiumcast/pkg/config"
	"github.com/insurekit/premiumcast/pkg/database"
	"github.com/insurekit/premiumcast/pkg/logger"
	"github.com/insurekit/premiumcast/pkg/redis"
)

// AdminHandler exposes the pipeline stages over HTTP and reports
// dataset status. Triggers run synchronously; the caller waits for the
// stage to finish.
type AdminHandler struct {
	runner   *pipeline.Runner
	policies contracts.PolicyStore
	db       *database.DB
	cache    *redis.Cache
	cfg      *config.Config
	logger   *logger.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	runner *pipeline.Runner,
	policies contracts.PolicyStore,
	db *database.DB,
	cache *redis.Cache,
	cfg *config.Config,
	log *logger.Logger,
) *AdminHandler {
	return &AdminHandler{
		runner:   runner,
		policies: policies,
		db:       db,
		cache:    cache,
		cfg:      cfg,
		logger:   log,
	}
}

// GenerateRequest overrides the configured generation parameters.
type GenerateRequest struct {
	StartDate string `json:"start_date"` // Optional: YYYY-MM-DD
	Months    int    `json:"months"`     // Optional: months of data
	Seed      int64  `json:"seed"`       // Optional: 0 seeds from the clock
}

// Generate regenerates the synthetic policy dataset
// POST /api/admin/generate
func (h *AdminHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params := contracts.GenerationParams{
		StartDate: h.cfg.Generator.StartDate,
		Months:    h.cfg.Generator.Months,
		Seed:      h.cfg.Generator.Seed,
	}

	if r.Body != nil && r.ContentLength > 0 {
		var req GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.StartDate != "" {
			start, err := time.Parse("2006-01-02", req.StartDate)
			if err != nil {
				respondError(w, http.StatusBadRequest, "Invalid 'start_date' format (expected YYYY-MM-DD)")
				return
			}
			params.StartDate = start
		}
		if req.Months != 0 {
			params.Months = req.Months
		}
		if req.Seed != 0 {
			params.Seed = req.Seed
		}
	}

	if err := params.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := h.runner.Generate(ctx, params)
	if err != nil {
		h.logger.WithError(err).Error("Generation failed")
		respondError(w, http.StatusInternalServerError, "Generation failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"records":    records,
		"start_date": params.StartDate.Format("2006-01-02"),
		"months":     params.Months,
	})
}

// Refresh rebuilds the monthly premium view
// POST /api/admin/refresh
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	rows, err := h.runner.RefreshMonthly(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Monthly view refresh failed")
		respondError(w, http.StatusInternalServerError, "Monthly view refresh failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"rows": rows,
	})
}

// Retrain submits the series to the forecasting service and rebuilds
// the reporting artifacts
// POST /api/admin/retrain
func (h *AdminHandler) Retrain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.runner.Retrain(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Retrain failed")
		respondError(w, http.StatusInternalServerError, "Retrain failed")
		return
	}

	if err := h.cache.InvalidateDashboard(ctx); err != nil {
		h.logger.WithError(err).Warn("Failed to invalidate dashboard cache")
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"points":    result.Points,
		"skipped":   result.Skipped,
		"summaries": result.Summaries,
		"growth":    result.Growth,
	})
}

// GetStatus reports dataset counts and database health
// GET /api/admin/status
func (h *AdminHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	count, err := h.policies.Count(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to count policies")
		respondError(w, http.StatusInternalServerError, "Failed to count policies")
		return
	}

	byState, err := h.policies.CountByState(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to count policies by state")
		respondError(w, http.StatusInternalServerError, "Failed to count policies by state")
		return
	}

	health, _ := h.db.HealthCheck(ctx)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"policies":          count,
		"policies_by_state": byState,
		"database":          health,
		"generated_at":      time.Now().UTC().Format(time.RFC3339),
	})
}
