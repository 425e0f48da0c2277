package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta tal como la envía el cliente.
type SaleItemRequest struct {
	Order       int             `json:"order" validate:"gt=0,lte=2147483647"`
	Cod         string          `json:"cod" validate:"required,len=13"`
	NameProduct string          `json:"name_product" validate:"required,max=100"`
	UnitValue   decimal.Decimal `json:"unit_value" validate:"gt=0,money"`
	Quantity    int             `json:"quantity" validate:"gt=0,lte=2147483647"`
	Total       decimal.Decimal `json:"total" validate:"gt=0,money"`
}

// CreateSaleRequest entrada para registrar una venta.
type CreateSaleRequest struct {
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
	SubTotal      decimal.Decimal   `json:"sub_total" validate:"gt=0,money"`
	Discounts     *decimal.Decimal  `json:"discounts" validate:"omitempty,gte=0,money"`
	Total         decimal.Decimal   `json:"total" validate:"gt=0,money"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=card money pix"`
}

// SaleItemResponse salida de una línea de venta.
type SaleItemResponse struct {
	ID          string          `json:"id"`
	SaleID      string          `json:"id_sale"`
	Order       int             `json:"order"`
	Cod         string          `json:"cod"`
	NameProduct string          `json:"name_product"`
	UnitValue   decimal.Decimal `json:"unit_value"`
	Quantity    int             `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
}

// SaleResponse salida de una venta con sus ítems.
type SaleResponse struct {
	ID            string             `json:"id"`
	UserID        string             `json:"id_user"`
	SubTotal      decimal.Decimal    `json:"sub_total"`
	Discounts     *decimal.Decimal   `json:"discounts"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	CreatedAt     time.Time          `json:"createdAt"`
	Items         []SaleItemResponse `json:"items"`
}
