// seed importa el catálogo de productos de una tienda desde una planilla CSV (';').
//
// Uso: go run ./cmd/seed -email dono@loja.com -file produtos.csv [-charset latin1]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/meustock-api/internal/application/dto"
	"github.com/jhoicas/meustock-api/internal/application/usecase"
	"github.com/jhoicas/meustock-api/internal/application/validation"
	"github.com/jhoicas/meustock-api/internal/domain"
	"github.com/jhoicas/meustock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/meustock-api/pkg/config"
	"github.com/jhoicas/meustock-api/pkg/logger"
)

func main() {
	email := flag.String("email", "", "e-mail del dueño del catálogo")
	file := flag.String("file", "produtos.csv", "planilla CSV separada por ';'")
	charset := flag.String("charset", "utf-8", "utf-8 | latin1 | windows-1252")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "falta -email")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if cfg.DB.Driver != config.StoreDriverPostgres {
		fmt.Fprintln(os.Stderr, "seed requiere STORE_DRIVER=postgres")
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).WithComponent("seed")

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir planilla")
	}
	defer f.Close()

	r, err := catalogReader(f, *charset)
	if err != nil {
		log.Fatal().Err(err).Msg("charset")
	}
	products, parseErr := parseCatalog(r)
	if parseErr != nil {
		log.Warn().Err(parseErr).Msg("filas ignoradas")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	owner, err := userRepo.GetByEmail(ctx, dto.NormalizeEmail(*email))
	if err != nil {
		log.Fatal().Err(err).Msg("buscar dueño")
	}
	if owner == nil {
		log.Fatal().Str("email", *email).Msg("usuario no encontrado")
	}

	productUC := usecase.NewProductUseCase(postgres.NewProductRepository(pool))
	created, skipped := 0, 0
	for _, p := range products {
		if err := validation.Struct(&p); err != nil {
			skipped++
			log.Warn().Err(err).Str("code", p.Code).Msg("producto inválido")
			continue
		}
		_, err := productUC.Create(ctx, owner.ID, p)
		switch {
		case err == nil:
			created++
		case errors.Is(err, domain.ErrDuplicate):
			skipped++
			log.Warn().Err(err).Str("code", p.Code).Msg("producto omitido")
		default:
			log.Fatal().Err(err).Str("code", p.Code).Msg("crear producto")
		}
	}
	log.Info().Int("created", created).Int("skipped", skipped).Msg("catálogo importado")
}
