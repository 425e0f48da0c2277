package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/meustock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/meustock-api/internal/infrastructure/postgres/migrations"
	"github.com/jhoicas/meustock-api/pkg/config"
	"github.com/jhoicas/meustock-api/pkg/logger"
	"github.com/jhoicas/meustock-api/pkg/migrate"
)

func main() {
	cmd := flag.String("cmd", "up", "migration command: up|down|status|version|redo|reset|validate")
	flag.Parse()

	// validate no necesita DB ni configuración
	if *cmd == "validate" {
		if err := migrate.Validate(migrations.FS); err != nil {
			fmt.Fprintf(os.Stderr, "migration validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("migration validation passed")
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).WithComponent("migrate")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	db := postgres.SQLDB(pool)
	defer db.Close()

	log.Info().Str("cmd", *cmd).Msg("ejecutando migraciones")
	if err := migrate.Run(ctx, db, migrations.FS, *cmd, flag.Args()...); err != nil {
		log.Error().Err(err).Msg("migración fallida")
		os.Exit(1)
	}
	log.Info().Str("cmd", *cmd).Msg("migraciones completadas")
}
