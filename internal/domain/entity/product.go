package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductCodeLength largo fijo del código de catálogo (EAN-13).
const ProductCodeLength = 13

// Product producto del catálogo de un usuario.
type Product struct {
	ID          string
	UserID      string // dueño
	Code        string // único por catálogo del dueño
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int // stock disponible
	URLImage    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
