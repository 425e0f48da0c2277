package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/meustock-api/internal/application/dto"
	"github.com/jhoicas/meustock-api/internal/application/sales"
)

// SaleHandler maneja las peticiones HTTP para ventas.
type SaleHandler struct {
	uc      *sales.SaleUseCase
	receipt *sales.ReceiptUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SaleUseCase, receipt *sales.ReceiptUseCase) *SaleHandler {
	return &SaleHandler{uc: uc, receipt: receipt}
}

const saleNotFound = "Venda não encontrada"

// Create godoc
// @Summary      Registrar venda
// @Description  Grava cabeçalho e itens numa transação; desconta estoque dos produtos com o mesmo código.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Itens, totais e forma de pagamento"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	msgs := errMessages{internal: "Erro ao registrar a venda"}
	var in dto.CreateSaleRequest
	if err := bindAndValidate(c, &in); err != nil {
		return writeError(c, err, msgs)
	}
	out, err := h.uc.CreateSale(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err, msgs)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// List godoc
// @Summary      Listar vendas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.Envelope
// @Router       /sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListSales(c.UserContext(), GetUserID(c), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return writeError(c, err, errMessages{internal: "Erro ao listar vendas"})
	}
	return c.JSON(dto.OK(out))
}

// GetByID godoc
// @Summary      Obter venda com itens
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da venda"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetSale(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err, errMessages{notFound: saleNotFound, internal: "Erro ao buscar a venda"})
	}
	return c.JSON(dto.OK(out))
}

// Delete godoc
// @Summary      Excluir venda
// @Description  Remove itens e cabeçalho numa transação. O estoque não é reposto.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da venda"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /sales/{id} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.DeleteSale(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err, errMessages{notFound: saleNotFound, internal: "Erro ao excluir a venda"})
	}
	return c.JSON(dto.Envelope{Success: true, Message: "Venda excluída com sucesso", Data: out})
}

// Receipt godoc
// @Summary      Comprovante da venda em PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID da venda"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.Envelope
// @Router       /sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	pdf, filename, err := h.receipt.DownloadReceipt(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err, errMessages{notFound: saleNotFound, internal: "Erro ao gerar o comprovante"})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}
