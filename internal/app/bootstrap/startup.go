// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	settingsstore "github.com/dalemusser/cohortsync/internal/app/store/settings"
	"github.com/dalemusser/cohortsync/internal/app/system/timeouts"
	"github.com/dalemusser/cohortsync/internal/domain/models"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Short: appCfg.TimeoutShort,
		Long:  appCfg.TimeoutLong,
	})

	if err := seedSettings(ctx, deps, appCfg.PreserveManualMembers, logger); err != nil {
		return err
	}

	return nil
}

// seedSettings writes the initial settings document on first startup.
// An existing document is left alone so operator changes survive
// restarts and redeploys.
func seedSettings(ctx context.Context, deps DBDeps, preserveManual bool, logger *zap.Logger) error {
	store := settingsstore.New(deps.MongoDatabase)

	exists, err := store.Exists(ctx)
	if err != nil {
		return fmt.Errorf("check settings: %w", err)
	}
	if exists {
		return nil
	}

	now := time.Now().UTC()
	settings := models.SyncSettings{
		ID:                    models.SyncSettingsID,
		PreserveManualMembers: preserveManual,
		UpdatedAt:             &now,
	}
	if err := store.Save(ctx, settings); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}

	logger.Info("seeded sync settings",
		zap.Bool("preserve_manual_members", preserveManual))
	return nil
}
