package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/meustock-api/internal/application/dto"
	"github.com/jhoicas/meustock-api/pkg/jwt"
)

// LocalIdentity key de c.Locals con la identidad verificada.
const LocalIdentity = "identity"

// Mensajes 401 del gate.
const (
	msgUnauthenticated = "Usuário não autenticado"
	msgTokenInvalid    = "Token inválido"
	msgTokenExpired    = "Token expirado"
)

// TokenVerifier verifica un token y devuelve la identidad que contiene.
type TokenVerifier interface {
	Verify(token string) (jwt.Identity, error)
}

// AuthMiddleware valida el Bearer Token y deja la identidad en c.Locals y en c.UserContext().
// Si rechaza, el handler protegido no se ejecuta.
func AuthMiddleware(tokens TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, msgUnauthenticated)
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthorized(c, msgTokenInvalid)
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return unauthorized(c, msgTokenInvalid)
		}
		id, err := tokens.Verify(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return unauthorized(c, msgTokenExpired)
			}
			return unauthorized(c, msgTokenInvalid)
		}
		c.Locals(LocalIdentity, id)
		c.SetUserContext(jwt.WithIdentity(c.UserContext(), id))
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(msg))
}

// IdentityFrom devuelve la identidad del llamador (después del middleware de auth).
func IdentityFrom(c *fiber.Ctx) (jwt.Identity, bool) {
	id, ok := c.Locals(LocalIdentity).(jwt.Identity)
	if ok && id.ID != "" {
		return id, true
	}
	return jwt.IdentityFromContext(c.UserContext())
}

// GetUserID devuelve el ID del usuario autenticado o "".
func GetUserID(c *fiber.Ctx) string {
	id, _ := IdentityFrom(c)
	return id.ID
}
