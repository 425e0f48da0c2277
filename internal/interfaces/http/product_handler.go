package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/meustock-api/internal/application/dto"
	"github.com/jhoicas/meustock-api/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP para Product (protegido, acotado al dueño).
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

const productNotFound = "Produto não encontrado"

// Create godoc
// @Summary      Criar produto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductRequest  true  "Dados do produto"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	msgs := errMessages{internal: "Erro ao criar produto"}
	var in dto.ProductRequest
	if err := bindAndValidate(c, &in); err != nil {
		return writeError(c, err, msgs)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err, msgs)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// List godoc
// @Summary      Listar produtos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int     false  "Límite"  default(50)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Param        search  query  string  false  "Prefixo do código ou parte do nome"
// @Success      200     {object}  dto.Envelope
// @Router       /products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetUserID(c),
		c.QueryInt("limit", 50), c.QueryInt("offset", 0), c.Query("search"))
	if err != nil {
		return writeError(c, err, errMessages{internal: "Erro ao obter produtos"})
	}
	return c.JSON(dto.OK(out))
}

// GetByID godoc
// @Summary      Obter produto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do produto"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err, errMessages{notFound: productNotFound, internal: "Erro ao obter produto"})
	}
	return c.JSON(dto.OK(out))
}

// GetByCode godoc
// @Summary      Obter produto pelo código de barras
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código (13 dígitos)"
// @Success      200   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /products/code/{code} [get]
func (h *ProductHandler) GetByCode(c *fiber.Ctx) error {
	out, err := h.uc.GetByCode(c.UserContext(), GetUserID(c), c.Params("code"))
	if err != nil {
		return writeError(c, err, errMessages{notFound: productNotFound, internal: "Erro ao obter produto"})
	}
	return c.JSON(dto.OK(out))
}

// Update godoc
// @Summary      Atualizar produto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do produto"
// @Param        body  body  dto.ProductRequest  true  "Dados do produto"
// @Success      200   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	msgs := errMessages{notFound: productNotFound, internal: "Erro ao atualizar produto"}
	var in dto.ProductRequest
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
// @Summary      Excluir produto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do produto"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err, errMessages{notFound: productNotFound, internal: "Erro ao excluir produto"})
	}
	return c.JSON(dto.Envelope{Success: true, Message: "Produto excluído com sucesso"})
}
