package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest entrada para crear o reemplazar un producto.
type ProductRequest struct {
	Code        string          `json:"code" validate:"required,len=13"`
	Name        string          `json:"name" validate:"required,min=2,max=100"`
	Description string          `json:"description" validate:"required,min=10,max=255"`
	Price       decimal.Decimal `json:"price" validate:"gt=0,money"`
	Quantity    int             `json:"quantity" validate:"gte=1,lte=2147483647"`
	URLImage    *string         `json:"url_image" validate:"omitempty,url,max=2048"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"id_user"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	URLImage    string          `json:"url_image"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
