package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/meustock-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale y sus ítems.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateItem(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, userID, id string) (*entity.Sale, error)
	GetItemsBySaleID(ctx context.Context, saleID string) ([]*entity.Item, error)
	List(ctx context.Context, userID string, limit, offset int) ([]*entity.Sale, error)
	DeleteItems(ctx context.Context, saleID string) (int, error)
	Delete(ctx context.Context, userID, id string) (bool, error)
	// Summary devuelve cantidad de ventas y suma de total del usuario.
	Summary(ctx context.Context, userID string) (int, decimal.Decimal, error)
}
