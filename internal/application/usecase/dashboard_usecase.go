package usecase

import (
	"context"

	"github.com/jhoicas/meustock-api/internal/application/dto"
	"github.com/jhoicas/meustock-api/internal/domain/repository"
)

// DashboardUseCase resumen de la tienda del usuario.
type DashboardUseCase struct {
	productRepo       repository.ProductRepository
	saleRepo          repository.SaleRepository
	lowStockThreshold int
}

// NewDashboardUseCase construye el caso de uso. lowStockThreshold: quantity <= umbral cuenta como stock bajo.
func NewDashboardUseCase(productRepo repository.ProductRepository, saleRepo repository.SaleRepository, lowStockThreshold int) *DashboardUseCase {
	return &DashboardUseCase{productRepo: productRepo, saleRepo: saleRepo, lowStockThreshold: lowStockThreshold}
}

// Get calcula productos, ventas, facturación y productos con stock bajo.
func (uc *DashboardUseCase) Get(ctx context.Context, ownerID string) (*dto.DashboardResponse, error) {
	products, err := uc.productRepo.Count(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.productRepo.CountLowStock(ctx, ownerID, uc.lowStockThreshold)
	if err != nil {
		return nil, err
	}
	sales, revenue, err := uc.saleRepo.Summary(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		Products: products,
		Sales:    sales,
		Revenue:  revenue,
		LowStock: lowStock,
	}, nil
}
