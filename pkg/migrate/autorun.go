package migrate

import (
	"context"
	"fmt"

	"github.com/eonite/portal-backend/pkg/config"
	"github.com/eonite/portal-backend/pkg/db"
	"github.com/eonite/portal-backend/pkg/logger"
)

// MaybeRunDev applies pending migrations at boot when running in dev with
// auto-migrate enabled. The sqlite driver is skipped since the SQL targets Postgres.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "dir": DefaultDir})
	if cfg.DB.IsSQLite() {
		logg.Warn(ctx, "skipping goose migrations for sqlite driver")
		return nil
	}

	sqlDB, err := client.SQL()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}
	runner, err := NewRunner(sqlDB, DefaultDir, client.Dialect())
	if err != nil {
		return err
	}

	logg.Info(ctx, "running goose migrations (dev auto-run)")
	if err := runner.Run(ctx, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}
	logg.Info(ctx, "goose migrations completed")
	return nil
}
