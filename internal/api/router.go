package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/insurekit/premiumcast/internal/api/handlers"
	"github.com/insurekit/premiumcast/pkg/logger"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	dashboard *handlers.DashboardHandler,
	admin *handlers.AdminHandler,
	log *logger.Logger,
) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// API v1
	api := r.PathPrefix("/api").Subrouter()

	// Dashboard endpoints
	api.HandleFunc("/dashboard/summary", dashboard.GetSummary).Methods("GET")
	api.HandleFunc("/dashboard/growth", dashboard.GetGrowth).Methods("GET")
	api.HandleFunc("/dashboard/predictions", dashboard.GetPredictions).Methods("GET")
	api.HandleFunc("/dashboard/map", dashboard.GetMapData).Methods("GET")
	api.HandleFunc("/dashboard/monthly", dashboard.GetMonthly).Methods("GET")

	// Admin endpoints
	api.HandleFunc("/admin/generate", admin.Generate).Methods("POST")
	api.HandleFunc("/admin/refresh", admin.Refresh).Methods("POST")
	api.HandleFunc("/admin/retrain", admin.Retrain).Methods("POST")
	api.HandleFunc("/admin/status", admin.GetStatus).Methods("GET")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "premiumcast-api",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
