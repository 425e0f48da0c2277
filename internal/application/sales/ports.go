package sales

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/meustock-api/internal/domain/entity"
	"github.com/jhoicas/meustock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye los repos de ventas y productos.
// Si fn devuelve error no queda nada persistido.
type TxRunner interface {
	RunSales(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// ReceiptGenerator genera la representación gráfica (PDF) de una venta.
type ReceiptGenerator interface {
	GenerateSaleReceipt(ctx context.Context, store *entity.User, sale *entity.Sale) ([]byte, error)
}

// Recorder recibe eventos de ventas confirmadas (métricas).
type Recorder interface {
	SaleCreated(paymentMethod string, items int, total decimal.Decimal)
	SaleDeleted()
}

type nopRecorder struct{}

func (nopRecorder) SaleCreated(string, int, decimal.Decimal) {}
func (nopRecorder) SaleDeleted()                              {}
