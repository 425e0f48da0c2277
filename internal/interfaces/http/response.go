package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/meustock-api/internal/application/dto"
	"github.com/jhoicas/meustock-api/internal/application/validation"
	"github.com/jhoicas/meustock-api/internal/domain"
	"github.com/jhoicas/meustock-api/pkg/jwt"
)

// errMessages textos por operación para 404 y 500.
type errMessages struct {
	notFound string
	internal string
}

// writeError traduce errores de dominio a status + envelope. Los 500 se loguean y no exponen la causa.
func writeError(c *fiber.Ctx, err error, msgs errMessages) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Envelope{Success: false, Errors: verr.Fields})
	case errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Usuário não encontrado"))
	case errors.Is(err, domain.ErrInvalidPassword):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Senha incorreta"))
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, jwt.ErrAuth):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(msgUnauthenticated))
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail("Acesso negado"))
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail(msgs.notFound))
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("E-mail já cadastrado"))
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("Já existe um produto com este código"))
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("Estoque insuficiente"))
	}
	LoggerFrom(c).Error().Err(err).Str("path", c.Path()).Msg(msgs.internal)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(msgs.internal))
}

// bindAndValidate parsea el body JSON en out y lo valida.
func bindAndValidate(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return domain.NewValidationError("body", "Corpo da requisição inválido")
	}
	return validation.Struct(out)
}
