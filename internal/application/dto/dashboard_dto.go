package dto

import "github.com/shopspring/decimal"

// DashboardResponse resumen de la tienda para la pantalla de inicio.
type DashboardResponse struct {
	Products int             `json:"products"`
	Sales    int             `json:"sales"`
	Revenue  decimal.Decimal `json:"revenue"`
	LowStock int             `json:"low_stock"`
}
