package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/meustock-api/internal/application/dto"
	"github.com/jhoicas/meustock-api/internal/application/usecase"
)

// DashboardHandler resumen de la tienda del usuario autenticado.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get godoc
// @Summary      Resumo da loja
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope  "products, sales, revenue, low_stock"
// @Router       /dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err, errMessages{internal: "Erro ao obter o resumo"})
	}
	return c.JSON(dto.OK(out))
}
