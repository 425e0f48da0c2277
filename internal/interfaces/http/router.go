package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/meustock-api/internal/application/auth"
	"github.com/jhoicas/meustock-api/internal/application/sales"
	"github.com/jhoicas/meustock-api/internal/application/usecase"
	"github.com/jhoicas/meustock-api/pkg/logger"
	"github.com/jhoicas/meustock-api/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	ProductUC   *usecase.ProductUseCase
	DashboardUC *usecase.DashboardUseCase
	SaleUC      *sales.SaleUseCase
	ReceiptUC   *sales.ReceiptUseCase
	Tokens      TokenVerifier
	Logger      *logger.Logger
	Metrics     *metrics.Metrics // opcional
}

// Router registra middlewares de petición y las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	app.Use(RequestLogger(log))
	if deps.Metrics != nil {
		app.Use(MetricsMiddleware(deps.Metrics))
	}

	requireAuth := AuthMiddleware(deps.Tokens)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	app.Post("/login", authHandler.Login)

	// Users: alta pública, resto protegido
	userHandler := NewUserHandler(deps.UserUC)
	users := app.Group("/users")
	users.Post("/", userHandler.Create)
	users.Get("/", requireAuth, userHandler.List)
	users.Get("/:id", requireAuth, userHandler.GetByID)
	users.Put("/:id", requireAuth, userHandler.Update)
	users.Delete("/:id", requireAuth, userHandler.Delete)
	app.Get("/me", requireAuth, userHandler.Me)

	// Products (protegido)
	productHandler := NewProductHandler(deps.ProductUC)
	products := app.Group("/products", requireAuth)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/code/:code", productHandler.GetByCode)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Sales (protegido)
	saleHandler := NewSaleHandler(deps.SaleUC, deps.ReceiptUC)
	salesGroup := app.Group("/sales", requireAuth)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Delete("/:id", saleHandler.Delete)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	app.Get("/dashboard", requireAuth, dashboardHandler.Get)
}
