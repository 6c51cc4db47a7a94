package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/kojoasante/estimates-backend/api/controllers"
	"github.com/kojoasante/estimates-backend/api/routes"
	"github.com/kojoasante/estimates-backend/internal/estimates"
	"github.com/kojoasante/estimates-backend/internal/materials"
	"github.com/kojoasante/estimates-backend/internal/profiles"
	"github.com/kojoasante/estimates-backend/internal/render"
	"github.com/kojoasante/estimates-backend/pkg/config"
	"github.com/kojoasante/estimates-backend/pkg/db"
	"github.com/kojoasante/estimates-backend/pkg/logger"
	"github.com/kojoasante/estimates-backend/pkg/metrics"
	"github.com/kojoasante/estimates-backend/pkg/migrate"
	"github.com/kojoasante/estimates-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	}

	profileRepo := profiles.NewRepository(dbClient.DB())
	materialRepo := materials.NewRepository(dbClient.DB())
	estimateRepo := estimates.NewRepository(dbClient.DB())

	profileService, err := profiles.NewService(profileRepo, dbClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create profile service", err)
		os.Exit(1)
	}
	materialService, err := materials.NewService(materialRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create material service", err)
		os.Exit(1)
	}
	renderer := render.NewService(cfg.Render, logg)
	estimateService, err := estimates.NewService(estimateRepo, profileRepo, materialRepo, renderer, dbClient, nil, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create estimate service", err)
		os.Exit(1)
	}

	if cfg.FeatureFlags.SeedMaterials {
		if _, err := materialService.Seed(context.Background()); err != nil {
			logg.Error(context.Background(), "failed to seed material catalog", err)
			os.Exit(1)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	var cache controllers.Pinger
	var idempotencyStore redis.IdempotencyStore
	if redisClient != nil {
		cache = redisClient
		idempotencyStore = redisClient
	}

	httpMetrics := metrics.NewHTTPMetrics()
	handler := routes.NewRouter(
		cfg,
		logg,
		dbClient,
		cache,
		idempotencyStore,
		httpMetrics,
		profileService,
		materialService,
		estimateService,
	)

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
