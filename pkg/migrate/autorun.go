package migrate

import (
	"context"
	"fmt"

	"github.com/kojoasante/estimates-backend/pkg/config"
	"github.com/kojoasante/estimates-backend/pkg/db"
	"github.com/kojoasante/estimates-backend/pkg/db/models"
	"github.com/kojoasante/estimates-backend/pkg/logger"
)

// MaybeRunDev executes migrations automatically when the app runs in dev mode
// with the feature flag enabled. SQLite dev databases have no goose history,
// so they auto-migrate from the models instead.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	if cfg.FeatureFlags.UseSQLite || cfg.DB.Driver == config.DriverSQLite {
		logg.Info(ctx, "auto-migrating sqlite schema from models")
		return AutoMigrateModels(client)
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	meta := map[string]any{"env": cfg.App.Env, "dir": DefaultDir}
	ctx = logg.WithFields(ctx, meta)
	logg.Info(ctx, "running Goose migrations (dev auto-run)")

	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "Goose migrations completed")
	return nil
}

// AutoMigrateModels creates the schema straight from the gorm models.
func AutoMigrateModels(client *db.Client) error {
	return client.DB().AutoMigrate(
		&models.UserProfile{},
		&models.BusinessProfile{},
		&models.MaterialDescription{},
		&models.Estimate{},
		&models.EstimateItem{},
	)
}
