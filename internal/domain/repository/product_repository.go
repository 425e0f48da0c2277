package repository

import (
	"context"

	"github.com/jhoicas/meustock-api/internal/domain/entity"
)

// ProductFilter filtros de listado; Search compara contra código y nombre.
type ProductFilter struct {
	Search string
	Limit  int
	Offset int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Todas las lecturas y escrituras van acotadas al dueño.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, userID, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, userID, code string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// DecrementStock resta qty solo si hay stock suficiente; devuelve false si no lo había.
	DecrementStock(ctx context.Context, userID, id string, qty int) (bool, error)
	List(ctx context.Context, userID string, filter ProductFilter) ([]*entity.Product, error)
	Count(ctx context.Context, userID string) (int, error)
	CountLowStock(ctx context.Context, userID string, threshold int) (int, error)
	Delete(ctx context.Context, userID, id string) (bool, error)
}
