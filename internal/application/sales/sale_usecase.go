package sales

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/meustock-api/internal/application/dto"
	"github.com/jhoicas/meustock-api/internal/application/validation"
	"github.com/jhoicas/meustock-api/internal/domain"
	"github.com/jhoicas/meustock-api/internal/domain/entity"
	"github.com/jhoicas/meustock-api/internal/domain/repository"
)

// Config reglas de negocio de la venta.
type Config struct {
	VerifyTotals   bool // recalcula total de ítems, subtotal y total
	DecrementStock bool // descuenta stock de productos con el mismo código
}

// Option configura el SaleUseCase.
type Option func(*SaleUseCase)

// WithRecorder registra eventos de venta (métricas).
func WithRecorder(r Recorder) Option {
	return func(uc *SaleUseCase) {
		if r != nil {
			uc.recorder = r
		}
	}
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *SaleUseCase) { uc.now = now }
}

// SaleUseCase registra y elimina ventas con sus ítems en una sola transacción.
type SaleUseCase struct {
	txRunner TxRunner
	saleRepo repository.SaleRepository
	cfg      Config
	recorder Recorder
	now      func() time.Time
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(txRunner TxRunner, saleRepo repository.SaleRepository, cfg Config, opts ...Option) *SaleUseCase {
	uc := &SaleUseCase{
		txRunner: txRunner,
		saleRepo: saleRepo,
		cfg:      cfg,
		recorder: nopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// CreateSale valida la venta, guarda cabecera e ítems y descuenta stock; todo o nada.
func (uc *SaleUseCase) CreateSale(ctx context.Context, ownerID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}
	if verr := uc.checkItems(in); verr.HasErrors() {
		return nil, verr
	}

	now := uc.now().UTC()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		UserID:        ownerID,
		SubTotal:      in.SubTotal,
		Discounts:     in.Discounts,
		Total:         in.Total,
		PaymentMethod: in.PaymentMethod,
		CreatedAt:     now,
		Items:         make([]*entity.Item, 0, len(in.Items)),
	}
	for _, it := range in.Items {
		sale.Items = append(sale.Items, &entity.Item{
			ID:          uuid.New().String(),
			SaleID:      sale.ID,
			Order:       it.Order,
			Cod:         it.Cod,
			NameProduct: it.NameProduct,
			UnitValue:   it.UnitValue,
			Quantity:    it.Quantity,
			Total:       it.Total,
		})
	}
	sort.SliceStable(sale.Items, func(i, j int) bool { return sale.Items[i].Order < sale.Items[j].Order })

	err := uc.txRunner.RunSales(ctx, func(saleRepo repository.SaleRepository, productRepo repository.ProductRepository) error {
		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		for _, item := range sale.Items {
			if err := saleRepo.CreateItem(ctx, item); err != nil {
				return err
			}
		}
		if !uc.cfg.DecrementStock {
			return nil
		}
		for _, item := range sale.Items {
			product, err := productRepo.GetByCode(ctx, ownerID, item.Cod)
			if err != nil {
				return err
			}
			if product == nil {
				continue // ítem libre, sin producto en el catálogo
			}
			ok, err := productRepo.DecrementStock(ctx, ownerID, product.ID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %s (%s)", domain.ErrInsufficientStock, product.Name, product.Code)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.SaleCreated(sale.PaymentMethod, len(sale.Items), sale.Total)
	return toResponse(sale), nil
}

// checkItems detecta órdenes repetidas y, si está activo, agregados que no cuadran.
func (uc *SaleUseCase) checkItems(in dto.CreateSaleRequest) *domain.ValidationError {
	verr := &domain.ValidationError{}
	seen := make(map[int]bool, len(in.Items))
	sum := decimal.Zero
	for i, it := range in.Items {
		if seen[it.Order] {
			verr.Add(fmt.Sprintf("items.%d.order", i), "A ordem do item está repetida")
		}
		seen[it.Order] = true
		if uc.cfg.VerifyTotals {
			expected := it.UnitValue.Mul(decimal.NewFromInt(int64(it.Quantity)))
			if !expected.Equal(it.Total) {
				verr.Add(fmt.Sprintf("items.%d.total", i), "O total do item deve ser valor unitário × quantidade")
			}
		}
		sum = sum.Add(it.Total)
	}
	if !uc.cfg.VerifyTotals {
		return verr
	}
	if !sum.Equal(in.SubTotal) {
		verr.Add("sub_total", "O subtotal deve ser a soma dos totais dos itens")
	}
	discount := decimal.Zero
	if in.Discounts != nil {
		discount = *in.Discounts
	}
	if !in.SubTotal.Sub(discount).Equal(in.Total) {
		verr.Add("total", "O total deve ser o subtotal menos os descontos")
	}
	return verr
}

// DeleteSale elimina ítems y cabecera en una transacción y devuelve la venta eliminada.
// El stock descontado no se repone.
func (uc *SaleUseCase) DeleteSale(ctx context.Context, ownerID, saleID string) (*dto.SaleResponse, error) {
	if err := validation.ID(saleID); err != nil {
		return nil, err
	}
	var deleted *entity.Sale
	err := uc.txRunner.RunSales(ctx, func(saleRepo repository.SaleRepository, _ repository.ProductRepository) error {
		sale, err := saleRepo.GetByID(ctx, ownerID, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		items, err := saleRepo.GetItemsBySaleID(ctx, sale.ID)
		if err != nil {
			return err
		}
		sale.Items = items
		if _, err := saleRepo.DeleteItems(ctx, sale.ID); err != nil {
			return err
		}
		ok, err := saleRepo.Delete(ctx, ownerID, sale.ID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound
		}
		deleted = sale
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.recorder.SaleDeleted()
	return toResponse(deleted), nil
}

// GetSale obtiene una venta del dueño con sus ítems.
func (uc *SaleUseCase) GetSale(ctx context.Context, ownerID, saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.load(ctx, ownerID, saleID)
	if err != nil {
		return nil, err
	}
	return toResponse(sale), nil
}

func (uc *SaleUseCase) load(ctx context.Context, ownerID, saleID string) (*entity.Sale, error) {
	if err := validation.ID(saleID); err != nil {
		return nil, err
	}
	sale, err := uc.saleRepo.GetByID(ctx, ownerID, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItemsBySaleID(ctx, sale.ID)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return sale, nil
}

// ListSales lista las ventas del dueño con sus ítems.
func (uc *SaleUseCase) ListSales(ctx context.Context, ownerID string, limit, offset int) ([]*dto.SaleResponse, error) {
	page := dto.NewPage(limit, offset)
	list, err := uc.saleRepo.List(ctx, ownerID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items, err := uc.saleRepo.GetItemsBySaleID(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		s.Items = items
		out = append(out, toResponse(s))
	}
	return out, nil
}

func toResponse(s *entity.Sale) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            s.ID,
		UserID:        s.UserID,
		SubTotal:      s.SubTotal,
		Discounts:     s.Discounts,
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		CreatedAt:     s.CreatedAt,
		Items:         make([]dto.SaleItemResponse, 0, len(s.Items)),
	}
	for _, it := range s.Items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:          it.ID,
			SaleID:      it.SaleID,
			Order:       it.Order,
			Cod:         it.Cod,
			NameProduct: it.NameProduct,
			UnitValue:   it.UnitValue,
			Quantity:    it.Quantity,
			Total:       it.Total,
		})
	}
	return resp
}
