package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados.
const (
	PaymentCard  = "card"
	PaymentMoney = "money"
	PaymentPix   = "pix"
)

// ValidPaymentMethod indica si m es un método de pago aceptado.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCard, PaymentMoney, PaymentPix:
		return true
	}
	return false
}

// Sale cabecera de una venta. Inmutable salvo borrado.
type Sale struct {
	ID            string
	UserID        string
	SubTotal      decimal.Decimal
	Discounts     *decimal.Decimal // opcional
	Total         decimal.Decimal
	PaymentMethod string
	CreatedAt     time.Time
	Items         []*Item
}

// DiscountOrZero devuelve el descuento o cero si no se informó.
func (s *Sale) DiscountOrZero() decimal.Decimal {
	if s.Discounts == nil {
		return decimal.Zero
	}
	return *s.Discounts
}

// Item línea de una venta: copia del producto al momento de la venta, sin vínculo con products.
type Item struct {
	ID          string
	SaleID      string
	Order       int // posición 1-based dentro de la venta
	Cod         string
	NameProduct string
	UnitValue   decimal.Decimal
	Quantity    int
	Total       decimal.Decimal
}
