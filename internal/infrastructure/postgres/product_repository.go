package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/meustock-api/internal/domain"
	"github.com/jhoicas/meustock-api/internal/domain/entity"
	"github.com/jhoicas/meustock-api/internal/domain/repository"
	"github.com/jhoicas/meustock-api/pkg/textnorm"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, user_id, code, name, description, price, quantity, url_image, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.UserID, p.Code, p.Name, p.Description, p.Price, p.Quantity, p.URLImage, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.UserID, &p.Code, &p.Name, &p.Description, &p.Price, &p.Quantity,
		&p.URLImage, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID obtiene un producto del dueño por ID.
func (r *ProductRepo) GetByID(ctx context.Context, userID, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND user_id = $2`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByCode obtiene un producto del dueño por código.
func (r *ProductRepo) GetByCode(ctx context.Context, userID, code string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE user_id = $1 AND code = $2`
	p, err := scanProduct(r.q.QueryRow(ctx, query, userID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by code: %w", err)
	}
	return p, nil
}

// Update reemplaza los campos editables del producto del dueño.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET code = $3, name = $4, description = $5, price = $6, quantity = $7, url_image = $8, updated_at = $9
		WHERE id = $1 AND user_id = $2`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.UserID, p.Code, p.Name, p.Description, p.Price, p.Quantity, p.URLImage, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DecrementStock resta qty de forma condicional; dos ventas concurrentes no pueden dejar stock negativo.
func (r *ProductRepo) DecrementStock(ctx context.Context, userID, id string, qty int) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET quantity = quantity - $3, updated_at = now()
		 WHERE id = $1 AND user_id = $2 AND quantity >= $3`,
		id, userID, qty,
	)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// List lista productos del dueño; Search filtra por prefijo de código o parte del nombre.
func (r *ProductRepo) List(ctx context.Context, userID string, f repository.ProductFilter) ([]*entity.Product, error) {
	args := []any{userID}
	query := `SELECT ` + productColumns + ` FROM products WHERE user_id = $1`
	if term := textnorm.Fold(f.Search); term != "" {
		args = append(args, prefixPattern(term), likePattern(term))
		query += ` AND (code LIKE $2 OR lower(name) LIKE $3)`
	}
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Count cantidad de productos del dueño.
func (r *ProductRepo) Count(ctx context.Context, userID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products WHERE user_id = $1`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// CountLowStock cantidad de productos con quantity <= threshold.
func (r *ProductRepo) CountLowStock(ctx context.Context, userID string, threshold int) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM products WHERE user_id = $1 AND quantity <= $2`, userID, threshold,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return n, nil
}

// Delete elimina un producto del dueño. Devuelve false si no existía.
func (r *ProductRepo) Delete(ctx context.Context, userID, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
