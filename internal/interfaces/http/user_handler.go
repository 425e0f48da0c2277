package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/meustock-api/internal/application/dto"
	"github.com/jhoicas/meustock-api/internal/application/usecase"
)

// UserHandler maneja las peticiones HTTP para User.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

const userNotFound = "Usuário não encontrado"

// Create godoc
// @Summary      Cadastrar usuário (público)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "name, store_name, email, password"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	msgs := errMessages{internal: "Erro ao criar usuário"}
	var in dto.CreateUserRequest
	if err := bindAndValidate(c, &in); err != nil {
		return writeError(c, err, msgs)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err, msgs)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// List godoc
// @Summary      Listar usuários
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.Envelope
// @Router       /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return writeError(c, err, errMessages{internal: "Erro ao obter usuários"})
	}
	return c.JSON(dto.OK(out))
}

// GetByID godoc
// @Summary      Obter usuário por ID
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do usuário"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err, errMessages{notFound: userNotFound, internal: "Erro ao obter usuário"})
	}
	return c.JSON(dto.OK(out))
}

// Me godoc
// @Summary      Usuário da sessão
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err, errMessages{notFound: userNotFound, internal: "Erro ao obter usuário"})
	}
	return c.JSON(dto.OK(out))
}

// Update godoc
// @Summary      Atualizar o próprio usuário
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do usuário"
// @Param        body  body  dto.UpdateUserRequest  true  "password opcional"
// @Success      200   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	msgs := errMessages{notFound: userNotFound, internal: "Erro ao atualizar usuário"}
	var in dto.UpdateUserRequest
	if err := bindAndValidate(c, &in); err != nil {
		return writeError(c, err, msgs)
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err, msgs)
	}
	return c.JSON(dto.OK(out))
}

// Delete godoc
// @Summary      Excluir o próprio usuário
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do usuário"
// @Success      200  {object}  dto.Envelope
// @Failure      403  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err, errMessages{notFound: userNotFound, internal: "Erro ao deletar usuário"})
	}
	return c.JSON(dto.Envelope{Success: true})
}
