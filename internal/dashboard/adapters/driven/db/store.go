package db

import (
	"context"
	"fmt"

	"shuttle-admin/internal/config"
	"shuttle-admin/internal/dashboard/core/ports/driven"
	"shuttle-admin/internal/mylogger"
)

// Start opens the settings store selected by SETTINGS_DRIVER.
func Start(ctx context.Context, cfg *config.Config, mylog mylogger.Logger) (driven.ISettingsStore, error) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		return NewPostgresStore(ctx, cfg.DB, mylog)
	case config.StoreSQLite:
		return NewSQLiteStore(ctx, cfg.Store.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown settings driver %q", cfg.Store.Driver)
	}
}
