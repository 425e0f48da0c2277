package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/jhoicas/meustock-api/pkg/config"
	"github.com/jhoicas/meustock-api/pkg/logger"
)

// MaybeRun aplica las migraciones pendientes al arrancar cuando DB_AUTO_MIGRATE está activo.
func MaybeRun(ctx context.Context, cfg *config.Config, log *logger.Logger, db *sql.DB, fsys fs.FS) error {
	if !cfg.DB.AutoMigrate || cfg.DB.Driver != config.StoreDriverPostgres {
		return nil
	}
	log.Info().Str("env", cfg.App.Env).Msg("running goose migrations (auto-migrate)")
	if err := Run(ctx, db, fsys, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}
	log.Info().Msg("goose migrations completed")
	return nil
}
