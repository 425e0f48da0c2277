package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/meustock-api/internal/application/auth"
	"github.com/jhoicas/meustock-api/internal/application/dto"
)

// AuthHandler maneja el login.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.Envelope  "success + token"
// @Failure      400   {object}  dto.Envelope
// @Router       /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := bindAndValidate(c, &in); err != nil {
		return writeError(c, err, errMessages{internal: "Erro ao realizar login"})
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, err, errMessages{internal: "Erro ao realizar login"})
	}
	return c.JSON(dto.Envelope{Success: true, Token: out.Token})
}
