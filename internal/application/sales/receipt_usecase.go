package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/meustock-api/internal/application/validation"
	"github.com/jhoicas/meustock-api/internal/domain"
	"github.com/jhoicas/meustock-api/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante PDF de una venta.
type ReceiptUseCase struct {
	saleRepo  repository.SaleRepository
	userRepo  repository.UserRepository
	generator ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso inyectando sus dependencias.
func NewReceiptUseCase(saleRepo repository.SaleRepository, userRepo repository.UserRepository, generator ReceiptGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{saleRepo: saleRepo, userRepo: userRepo, generator: generator}
}

// DownloadReceipt devuelve (pdfBytes, filename, nil); domain.ErrNotFound si la venta no es del dueño.
func (uc *ReceiptUseCase) DownloadReceipt(ctx context.Context, ownerID, saleID string) ([]byte, string, error) {
	if err := validation.ID(saleID); err != nil {
		return nil, "", err
	}
	sale, err := uc.saleRepo.GetByID(ctx, ownerID, saleID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: obtener venta: %w", err)
	}
	if sale == nil {
		return nil, "", domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItemsBySaleID(ctx, sale.ID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: obtener ítems: %w", err)
	}
	sale.Items = items

	store, err := uc.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: obtener tienda: %w", err)
	}
	if store == nil {
		return nil, "", domain.ErrNotFound
	}

	pdf, err := uc.generator.GenerateSaleReceipt(ctx, store, sale)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: generación fallida: %w", err)
	}
	short := sale.ID
	if len(short) > 8 {
		short = short[:8]
	}
	return pdf, fmt.Sprintf("recibo_%s.pdf", short), nil
}
