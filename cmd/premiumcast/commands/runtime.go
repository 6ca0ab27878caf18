package commands

import (
	"fmt"

	"github.com/insurekit/premiumcast/internal/aggregate"
	"github.com/insurekit/premiumcast/internal/forecast"
	"github.com/insurekit/premiumcast/internal/generator"
	"github.com/insurekit/premiumcast/internal/pipeline"
	"github.com/insurekit/premiumcast/pkg/config"
	"github.com/insurekit/premiumcast/pkg/database"
	"github.com/insurekit/premiumcast/pkg/httputil"
	"github.com/insurekit/premiumcast/pkg/logger"
	"github.com/insurekit/premiumcast/pkg/redis"
)

// runtime holds the wired dependencies the commands share.
type runtime struct {
	cfg    *config.Config
	log    *logger.Logger
	db     *database.DB
	redis  *redis.Client
	cache  *redis.Cache
	runner *pipeline.Runner

	policyRepo   *generator.Repository
	monthlyRepo  *aggregate.Repository
	forecastRepo *forecast.Repository
}

// initRuntime loads config and connects everything the pipeline needs.
// The caller owns the returned runtime and must call close().
func initRuntime() (*runtime, error) {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// 4. Connect to Redis (no-op client when disabled)
	redisClient, err := redis.New(cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	cache := redis.NewCache(redisClient, "premiumcast")

	// 5. Create repositories
	policyRepo := generator.NewRepository(db.Pool)
	monthlyRepo := aggregate.NewRepository(db.Pool)
	forecastRepo := forecast.NewRepository(db.Pool)

	// 6. Create forecasting service client, rate limited per config
	httpClient := httputil.NewWithTimeout(log, cfg.Forecast.Timeout).
		WithRateLimit(cfg.Forecast.RateRPS, 1)
	forecaster := forecast.NewClient(httpClient, cfg.Forecast, log)

	// 7. Create generator and pipeline runner
	gen := generator.New(log, cfg.Generator.Seed)
	runner := pipeline.NewRunner(
		gen,
		policyRepo,
		monthlyRepo,
		forecaster,
		forecastRepo,
		log,
		cfg.Forecast.Horizon,
	)

	return &runtime{
		cfg:          cfg,
		log:          log,
		db:           db,
		redis:        redisClient,
		cache:        cache,
		runner:       runner,
		policyRepo:   policyRepo,
		monthlyRepo:  monthlyRepo,
		forecastRepo: forecastRepo,
	}, nil
}

// close releases the runtime's connections.
func (rt *runtime) close() {
	rt.db.Close()
	rt.redis.Close()
}
