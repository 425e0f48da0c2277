package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/meustock-api/internal/domain/entity"
	"github.com/jhoicas/meustock-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const (
	saleColumns = `id, user_id, sub_total, discounts, total, payment_method, created_at`
	itemColumns = `id, sale_id, "order", cod, name_product, unit_value, quantity, total`
)

// SaleRepo implementación del puerto SaleRepository (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el repositorio de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de la venta.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `INSERT INTO sales (` + saleColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.UserID, s.SubTotal, s.Discounts, s.Total, s.PaymentMethod, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de la venta.
func (r *SaleRepo) CreateItem(ctx context.Context, it *entity.Item) error {
	query := `INSERT INTO items (` + itemColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.SaleID, it.Order, it.Cod, it.NameProduct, it.UnitValue, it.Quantity, it.Total,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var discounts decimal.NullDecimal
	if err := row.Scan(&s.ID, &s.UserID, &s.SubTotal, &discounts, &s.Total, &s.PaymentMethod, &s.CreatedAt); err != nil {
		return nil, err
	}
	if discounts.Valid {
		d := discounts.Decimal
		s.Discounts = &d
	}
	return &s, nil
}

// GetByID obtiene la cabecera de una venta del dueño (sin ítems).
func (r *SaleRepo) GetByID(ctx context.Context, userID, id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1 AND user_id = $2`
	s, err := scanSale(r.q.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// GetItemsBySaleID devuelve los ítems ordenados por su posición en la venta.
func (r *SaleRepo) GetItemsBySaleID(ctx context.Context, saleID string) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE sale_id = $1 ORDER BY "order"`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Item, 0)
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.ID, &it.SaleID, &it.Order, &it.Cod, &it.NameProduct,
			&it.UnitValue, &it.Quantity, &it.Total); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// List lista cabeceras de ventas del dueño, más recientes primero.
func (r *SaleRepo) List(ctx context.Context, userID string, limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Sale, 0)
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// DeleteItems elimina todos los ítems de una venta y devuelve cuántos borró.
func (r *SaleRepo) DeleteItems(ctx context.Context, saleID string) (int, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM items WHERE sale_id = $1`, saleID)
	if err != nil {
		return 0, fmt.Errorf("delete sale items: %w", err)
	}
	return int(cmd.RowsAffected()), nil
}

// Delete elimina la cabecera de la venta del dueño.
func (r *SaleRepo) Delete(ctx context.Context, userID, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete sale: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// Summary cantidad de ventas y suma de total del dueño.
func (r *SaleRepo) Summary(ctx context.Context, userID string) (int, decimal.Decimal, error) {
	var n int
	var revenue decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT count(*), COALESCE(SUM(total), 0) FROM sales WHERE user_id = $1`, userID,
	).Scan(&n, &revenue)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("sales summary: %w", err)
	}
	return n, revenue, nil
}
