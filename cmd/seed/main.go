package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/kojoasante/estimates-backend/internal/materials"
	"github.com/kojoasante/estimates-backend/pkg/config"
	"github.com/kojoasante/estimates-backend/pkg/db"
	"github.com/kojoasante/estimates-backend/pkg/logger"
)

// Loads the default material catalog into the database. Safe to run
// repeatedly: names that already exist are skipped.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	svc, err := materials.NewService(materials.NewRepository(dbClient.DB()), logg)
	requireResource(ctx, logg, "material service", err)

	result, err := svc.Seed(ctx)
	requireResource(ctx, logg, "material seed", err)

	fmt.Printf("material catalog seeded: %d added, %d skipped\n", result.Added, result.Skipped)
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
