package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/meustock-api/internal/application/auth"
	"github.com/jhoicas/meustock-api/internal/application/sales"
	"github.com/jhoicas/meustock-api/internal/application/usecase"
	"github.com/jhoicas/meustock-api/internal/domain/repository"
	"github.com/jhoicas/meustock-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/meustock-api/internal/infrastructure/pdf"
	"github.com/jhoicas/meustock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/meustock-api/internal/infrastructure/postgres/migrations"
	httpRouter "github.com/jhoicas/meustock-api/internal/interfaces/http"
	"github.com/jhoicas/meustock-api/pkg/config"
	"github.com/jhoicas/meustock-api/pkg/jwt"
	"github.com/jhoicas/meustock-api/pkg/logger"
	"github.com/jhoicas/meustock-api/pkg/metrics"
	"github.com/jhoicas/meustock-api/pkg/migrate"
)

const swaggerFile = "./docs/swagger.json"

// stores repos y runner transaccional del driver elegido.
type stores struct {
	users    repository.UserRepository
	products repository.ProductRepository
	sales    repository.SaleRepository
	tx       sales.TxRunner
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.DB.Driver).
		Msg("iniciando aplicación")

	// Montos como números JSON (24.5) y no strings.
	decimal.MarshalJSONWithoutQuotes = true

	tokens, err := jwt.NewService(cfg.JWT.Secret, cfg.JWT.Issuer)
	if err != nil {
		log.Fatal().Err(err).Msg("servicio JWT")
	}

	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(registry)

	authUC := auth.NewAuthUseCase(st.users, tokens)
	userUC := usecase.NewUserUseCase(st.users)
	productUC := usecase.NewProductUseCase(st.products)
	dashboardUC := usecase.NewDashboardUseCase(st.products, st.sales, cfg.Sales.LowStockThreshold)
	saleUC := sales.NewSaleUseCase(st.tx, st.sales, sales.Config{
		VerifyTotals:   cfg.Sales.VerifyTotals,
		DecrementStock: cfg.Sales.DecrementStock,
	}, sales.WithRecorder(m))
	receiptUC := sales.NewReceiptUseCase(st.sales, st.users, infrapdf.NewReceiptGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	// stack trace de panics solo en desarrollo.
	app.Use(recover.New(recover.Config{EnableStackTrace: cfg.App.IsDev()}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "MeuStock API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler(registry)))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		ProductUC:   productUC,
		DashboardUC: dashboardUC,
		SaleUC:      saleUC,
		ReceiptUC:   receiptUC,
		Tokens:      tokens,
		Logger:      log.WithComponent("http"),
		Metrics:     m,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.DB.Driver == config.StoreDriverMemory {
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		mem := memory.New()
		return &stores{
			users:    mem.Users(),
			products: mem.Products(),
			sales:    mem.Sales(),
			tx:       mem,
			close:    func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	db := postgres.SQLDB(pool)
	if err := migrate.MaybeRun(ctx, cfg, log, db, migrations.FS); err != nil {
		_ = db.Close()
		pool.Close()
		return nil, err
	}
	return &stores{
		users:    postgres.NewUserRepository(pool),
		products: postgres.NewProductRepository(pool),
		sales:    postgres.NewSaleRepository(pool),
		tx:       postgres.NewTxRunner(pool),
		close: func() {
			_ = db.Close()
			pool.Close()
		},
	}, nil
}
