package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/meustock-api/internal/application/dto"
	"github.com/jhoicas/meustock-api/internal/application/validation"
	"github.com/jhoicas/meustock-api/internal/domain"
	"github.com/jhoicas/meustock-api/internal/domain/entity"
	"github.com/jhoicas/meustock-api/internal/domain/repository"
)

// ProductUseCase aplica reglas de negocio para productos. Todo va acotado al dueño.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso con el puerto de persistencia.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto en el catálogo del dueño. ErrDuplicate si el código ya existe.
// in llega ya normalizado y validado (validation.Struct).
func (uc *ProductUseCase) Create(ctx context.Context, ownerID string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	now := time.Now().UTC()
	p := &entity.Product{
		ID:        uuid.New().String(),
		UserID:    ownerID,
		CreatedAt: now,
	}
	apply(p, in, now)
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return entityToProductResponse(p), nil
}

func apply(p *entity.Product, in dto.ProductRequest, now time.Time) {
	p.Code = in.Code
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Quantity = in.Quantity
	p.URLImage = ""
	if in.URLImage != nil {
		p.URLImage = *in.URLImage
	}
	p.UpdatedAt = now
}

// GetByID obtiene un producto del dueño.
func (uc *ProductUseCase) GetByID(ctx context.Context, ownerID, id string) (*dto.ProductResponse, error) {
	if err := validation.ID(id); err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return entityToProductResponse(p), nil
}

// GetByCode obtiene un producto del dueño por código (lector de código de barras).
func (uc *ProductUseCase) GetByCode(ctx context.Context, ownerID, code string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByCode(ctx, ownerID, strings.TrimSpace(code))
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return entityToProductResponse(p), nil
}

// List lista productos del dueño con paginación y búsqueda opcional.
func (uc *ProductUseCase) List(ctx context.Context, ownerID string, limit, offset int, search string) ([]*dto.ProductResponse, error) {
	page := dto.NewPage(limit, offset)
	list, err := uc.repo.List(ctx, ownerID, repository.ProductFilter{
		Search: search,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, entityToProductResponse(p))
	}
	return out, nil
}

// Update reemplaza los campos editables de un producto del dueño.
func (uc *ProductUseCase) Update(ctx context.Context, ownerID, id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := validation.ID(id); err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	apply(p, in, time.Now().UTC())
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return entityToProductResponse(p), nil
}

// Delete elimina un producto del dueño.
func (uc *ProductUseCase) Delete(ctx context.Context, ownerID, id string) error {
	if err := validation.ID(id); err != nil {
		return err
	}
	ok, err := uc.repo.Delete(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func entityToProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		URLImage:    p.URLImage,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
