package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"hirepulse-backend/internal/embedding"
	"hirepulse-backend/internal/health"
	"hirepulse-backend/internal/inference"
	"hirepulse-backend/internal/jobs"
	"hirepulse-backend/internal/prediction"
	"hirepulse-backend/internal/profile"
	"hirepulse-backend/internal/shared/config"
	"hirepulse-backend/internal/shared/server"
	"hirepulse-backend/internal/shared/storage/db"
	"hirepulse-backend/internal/shared/storage/redisdb"
	"hirepulse-backend/internal/shared/telemetry"
	"hirepulse-backend/internal/whatif"
)

// App holds shared dependencies.
type App struct {
	Config            config.Config
	Router            *gin.Engine
	DB                *sql.DB
	Redis             *redisdb.Client
	Profiles          profile.Store
	Jobs              jobs.Store
	PredictionRepo    prediction.Repo
	WhatIfRepo        whatif.Repo
	Classifier        inference.Classifier
	Embeddings        *embedding.Engine
	PredictionService *prediction.Service
	Simulator         *whatif.Simulator
	PredictionHandler *prediction.Handler
	WhatIfHandler     *whatif.Handler
	HealthHandler     *health.Handler
}

// Build prepares shared dependencies and wires routes.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	rdb := buildRedis(ctx, cfg)

	classifier, err := buildClassifier(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:     cfg,
		DB:         sqlDB,
		Redis:      rdb,
		Classifier: classifier,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            cfg,
		PredictionHandler: app.PredictionHandler,
		WhatIfHandler:     app.WhatIfHandler,
		HealthHandler:     app.HealthHandler,
	})
	return app, nil
}

// Close releases held connections.
func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.db", map[string]any{"msg": "DATABASE_URL empty; using in-memory repositories"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.DefaultServerOptions())
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.db", map[string]any{"msg": "database connect failed; using in-memory repositories", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildRedis(ctx context.Context, cfg config.Config) *redisdb.Client {
	if strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	rdb := redisdb.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := rdb.Ping(ctx); err != nil {
		// The embedding store is an optimization; local computation covers it.
		telemetry.Warn("bootstrap.redis", map[string]any{"msg": "redis unreachable; running without shared embedding store", "error": err.Error()})
		rdb.Close()
		return nil
	}
	return rdb
}

// buildClassifier selects the classifier once at startup. Strict mode
// requires a reachable model service and fails predictions when it is not;
// degraded mode uses the documented linear fallback and flags every result.
func buildClassifier(cfg config.Config) (inference.Classifier, error) {
	if cfg.ModelMode == inference.ModeDegraded {
		return inference.LinearFallback{}, nil
	}
	return inference.NewHTTPClient(cfg.ModelServiceURL, cfg.ModelTimeout)
}

func buildServices(app *App) {
	if app.DB != nil {
		app.Profiles = &profile.PGStore{DB: app.DB}
		app.Jobs = &jobs.PGStore{DB: app.DB}
		app.PredictionRepo = &prediction.PGRepo{DB: app.DB}
		app.WhatIfRepo = &whatif.PGRepo{DB: app.DB}
	} else {
		app.Profiles = profile.NewMemoryStore()
		app.Jobs = jobs.NewMemoryStore()
		app.PredictionRepo = prediction.NewMemoryRepo()
		app.WhatIfRepo = whatif.NewMemoryRepo()
	}

	if app.Redis != nil {
		app.Embeddings = embedding.NewEngine(app.Redis.Client)
	} else {
		app.Embeddings = embedding.NewEngine(nil)
	}

	app.PredictionService = &prediction.Service{
		Profiles:         app.Profiles,
		Jobs:             app.Jobs,
		Classifier:       app.Classifier,
		Embeddings:       app.Embeddings,
		Repo:             app.PredictionRepo,
		BatchConcurrency: app.Config.BatchConcurrency,
	}
	app.Simulator = &whatif.Simulator{
		Profiles:    app.Profiles,
		Jobs:        app.Jobs,
		Predictions: app.PredictionService,
		Repo:        app.WhatIfRepo,
	}

	app.PredictionHandler = prediction.NewHandler(app.PredictionService)
	app.WhatIfHandler = whatif.NewHandler(app.Simulator)
	app.HealthHandler = &health.Handler{
		DB:        app.DB,
		Redis:     app.Redis,
		ModelMode: app.Config.ModelMode,
	}
}
