// Package memory implementa los repositorios en memoria para desarrollo (STORE_DRIVER=memory) y tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/meustock-api/internal/application/sales"
	"github.com/jhoicas/meustock-api/internal/domain"
	"github.com/jhoicas/meustock-api/internal/domain/entity"
	"github.com/jhoicas/meustock-api/internal/domain/repository"
	"github.com/jhoicas/meustock-api/pkg/textnorm"
)

// Store base de datos en memoria. Las escrituras de RunSales se aplican todas o ninguna.
type Store struct {
	mu    sync.Mutex
	data  *tables
	calls atomic.Int64
}

type tables struct {
	users    map[string]entity.User
	products map[string]entity.Product
	sales    map[string]entity.Sale
	items    map[string]entity.Item
}

func newTables() *tables {
	return &tables{
		users:    make(map[string]entity.User),
		products: make(map[string]entity.Product),
		sales:    make(map[string]entity.Sale),
		items:    make(map[string]entity.Item),
	}
}

func (t *tables) clone() *tables {
	c := newTables()
	for k, v := range t.users {
		c.users[k] = v
	}
	for k, v := range t.products {
		c.products[k] = v
	}
	for k, v := range t.sales {
		c.sales[k] = v
	}
	for k, v := range t.items {
		c.items[k] = v
	}
	return c
}

// New crea un store vacío.
func New() *Store {
	return &Store{data: newTables()}
}

var _ sales.TxRunner = (*Store)(nil)

// Calls cantidad de operaciones de repositorio ejecutadas.
func (s *Store) Calls() int64 {
	return s.calls.Load()
}

// Users repositorio de usuarios sobre el store.
func (s *Store) Users() *UserRepo { return &UserRepo{v: s.view()} }

// Products repositorio de productos sobre el store.
func (s *Store) Products() *ProductRepo { return &ProductRepo{v: s.view()} }

// Sales repositorio de ventas sobre el store.
func (s *Store) Sales() *SaleRepo { return &SaleRepo{v: s.view()} }

func (s *Store) view() *view {
	return &view{
		lock: func() *tables {
			s.mu.Lock()
			return s.data
		},
		unlock: s.mu.Unlock,
		calls:  &s.calls,
	}
}

// RunSales ejecuta fn sobre una copia de las tablas y la publica sólo si fn no falla.
// Mantiene el lock durante toda la transacción.
func (s *Store) RunSales(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	v := &view{
		lock:   func() *tables { return snapshot },
		unlock: func() {},
		calls:  &s.calls,
	}
	if err := fn(&SaleRepo{v: v}, &ProductRepo{v: v}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.data = snapshot
	return nil
}

// view acceso a las tablas: directo con lock, o a una copia dentro de una transacción.
type view struct {
	lock   func() *tables
	unlock func()
	calls  *atomic.Int64
}

func (v *view) acquire() *tables {
	v.calls.Add(1)
	return v.lock()
}

func window[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

// --- UserRepository ---

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria.
type UserRepo struct{ v *view }

// Create guarda el usuario; ErrEmailAlreadyExists si el e-mail ya existe (sin distinguir mayúsculas).
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	t := r.v.acquire()
	defer r.v.unlock()
	for _, u := range t.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	t.users[user.ID] = *user
	return nil
}

// GetByID devuelve nil, nil si el usuario no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	t := r.v.acquire()
	defer r.v.unlock()
	u, ok := t.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// GetByEmail busca sin distinguir mayúsculas; nil, nil si no hay coincidencia.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	t := r.v.acquire()
	defer r.v.unlock()
	for _, u := range t.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

// Update reemplaza el usuario. ErrNotFound si no existe, ErrEmailAlreadyExists si otro usa el e-mail.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	t := r.v.acquire()
	defer r.v.unlock()
	if _, ok := t.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, u := range t.users {
		if id != user.ID && strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	t.users[user.ID] = *user
	return nil
}

// List usuarios del más reciente al más antiguo, paginados.
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	t := r.v.acquire()
	defer r.v.unlock()
	list := make([]*entity.User, 0, len(t.users))
	for _, u := range t.users {
		u := u
		list = append(list, &u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return window(list, limit, offset), nil
}

// Delete elimina el usuario junto con sus productos, ventas e ítems.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	t := r.v.acquire()
	defer r.v.unlock()
	if _, ok := t.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(t.users, id)
	for pid, p := range t.products {
		if p.UserID == id {
			delete(t.products, pid)
		}
	}
	for sid, s := range t.sales {
		if s.UserID != id {
			continue
		}
		delete(t.sales, sid)
		for iid, it := range t.items {
			if it.SaleID == sid {
				delete(t.items, iid)
			}
		}
	}
	return nil
}

// --- ProductRepository ---

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria, acotados al dueño.
type ProductRepo struct{ v *view }

func codeTaken(t *tables, p *entity.Product) bool {
	for id, other := range t.products {
		if id != p.ID && other.UserID == p.UserID && other.Code == p.Code {
			return true
		}
	}
	return false
}

// Create guarda el producto; ErrDuplicate si el dueño ya tiene ese código.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	t := r.v.acquire()
	defer r.v.unlock()
	if codeTaken(t, p) {
		return domain.ErrDuplicate
	}
	t.products[p.ID] = *p
	return nil
}

// GetByID devuelve nil, nil si no existe o es de otro dueño.
func (r *ProductRepo) GetByID(ctx context.Context, userID, id string) (*entity.Product, error) {
	t := r.v.acquire()
	defer r.v.unlock()
	p, ok := t.products[id]
	if !ok || p.UserID != userID {
		return nil, nil
	}
	return &p, nil
}

// GetByCode busca por código exacto dentro del catálogo del dueño.
func (r *ProductRepo) GetByCode(ctx context.Context, userID, code string) (*entity.Product, error) {
	t := r.v.acquire()
	defer r.v.unlock()
	for _, p := range t.products {
		if p.UserID == userID && p.Code == code {
			return &p, nil
		}
	}
	return nil, nil
}

// Update reemplaza el producto. ErrNotFound si no es del dueño, ErrDuplicate si el código choca.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	t := r.v.acquire()
	defer r.v.unlock()
	cur, ok := t.products[p.ID]
	if !ok || cur.UserID != p.UserID {
		return domain.ErrNotFound
	}
	if codeTaken(t, p) {
		return domain.ErrDuplicate
	}
	t.products[p.ID] = *p
	return nil
}

// DecrementStock resta qty del stock; false si no existe o no alcanza.
func (r *ProductRepo) DecrementStock(ctx context.Context, userID, id string, qty int) (bool, error) {
	t := r.v.acquire()
	defer r.v.unlock()
	p, ok := t.products[id]
	if !ok || p.UserID != userID || p.Quantity < qty {
		return false, nil
	}
	p.Quantity -= qty
	t.products[id] = p
	return true, nil
}

// List filtra por prefijo de código o nombre (sin acentos) y pagina, más recientes primero.
func (r *ProductRepo) List(ctx context.Context, userID string, f repository.ProductFilter) ([]*entity.Product, error) {
	t := r.v.acquire()
	defer r.v.unlock()
	term := textnorm.Fold(f.Search)
	list := make([]*entity.Product, 0)
	for _, p := range t.products {
		if p.UserID != userID {
			continue
		}
		if term != "" && !strings.HasPrefix(p.Code, term) && !textnorm.Matches(p.Name, term) {
			continue
		}
		p := p
		list = append(list, &p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return window(list, f.Limit, f.Offset), nil
}

// Count total de productos del dueño.
func (r *ProductRepo) Count(ctx context.Context, userID string) (int, error) {
	t := r.v.acquire()
	defer r.v.unlock()
	n := 0
	for _, p := range t.products {
		if p.UserID == userID {
			n++
		}
	}
	return n, nil
}

// CountLowStock productos del dueño con cantidad <= threshold.
func (r *ProductRepo) CountLowStock(ctx context.Context, userID string, threshold int) (int, error) {
	t := r.v.acquire()
	defer r.v.unlock()
	n := 0
	for _, p := range t.products {
		if p.UserID == userID && p.Quantity <= threshold {
			n++
		}
	}
	return n, nil
}

// Delete false si el producto no existe o es de otro dueño.
func (r *ProductRepo) Delete(ctx context.Context, userID, id string) (bool, error) {
	t := r.v.acquire()
	defer r.v.unlock()
	p, ok := t.products[id]
	if !ok || p.UserID != userID {
		return false, nil
	}
	delete(t.products, id)
	return true, nil
}

// --- SaleRepository ---

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas e ítems en memoria.
type SaleRepo struct{ v *view }

// Create guarda solo la cabecera; los ítems van por CreateItem.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	t := r.v.acquire()
	defer r.v.unlock()
	header := *s
	header.Items = nil
	t.sales[s.ID] = header
	return nil
}

// CreateItem ErrNotFound si la venta no existe, ErrDuplicate si el orden se repite.
func (r *SaleRepo) CreateItem(ctx context.Context, it *entity.Item) error {
	t := r.v.acquire()
	defer r.v.unlock()
	if _, ok := t.sales[it.SaleID]; !ok {
		return domain.ErrNotFound
	}
	for _, other := range t.items {
		if other.SaleID == it.SaleID && other.Order == it.Order {
			return domain.ErrDuplicate
		}
	}
	t.items[it.ID] = *it
	return nil
}

// GetByID cabecera de la venta, nil, nil si no existe o es de otro dueño.
func (r *SaleRepo) GetByID(ctx context.Context, userID, id string) (*entity.Sale, error) {
	t := r.v.acquire()
	defer r.v.unlock()
	s, ok := t.sales[id]
	if !ok || s.UserID != userID {
		return nil, nil
	}
	return &s, nil
}

// GetItemsBySaleID ítems ordenados por order.
func (r *SaleRepo) GetItemsBySaleID(ctx context.Context, saleID string) ([]*entity.Item, error) {
	t := r.v.acquire()
	defer r.v.unlock()
	list := make([]*entity.Item, 0)
	for _, it := range t.items {
		if it.SaleID == saleID {
			it := it
			list = append(list, &it)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Order < list[j].Order })
	return list, nil
}

// List cabeceras del dueño, más recientes primero.
func (r *SaleRepo) List(ctx context.Context, userID string, limit, offset int) ([]*entity.Sale, error) {
	t := r.v.acquire()
	defer r.v.unlock()
	list := make([]*entity.Sale, 0)
	for _, s := range t.sales {
		if s.UserID == userID {
			s := s
			list = append(list, &s)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return window(list, limit, offset), nil
}

// DeleteItems borra los ítems de la venta y devuelve cuántos había.
func (r *SaleRepo) DeleteItems(ctx context.Context, saleID string) (int, error) {
	t := r.v.acquire()
	defer r.v.unlock()
	n := 0
	for id, it := range t.items {
		if it.SaleID == saleID {
			delete(t.items, id)
			n++
		}
	}
	return n, nil
}

// Delete false si la venta no existe o es de otro dueño.
func (r *SaleRepo) Delete(ctx context.Context, userID, id string) (bool, error) {
	t := r.v.acquire()
	defer r.v.unlock()
	s, ok := t.sales[id]
	if !ok || s.UserID != userID {
		return false, nil
	}
	delete(t.sales, id)
	return true, nil
}

// Summary cantidad de ventas y suma de sus totales.
func (r *SaleRepo) Summary(ctx context.Context, userID string) (int, decimal.Decimal, error) {
	t := r.v.acquire()
	defer r.v.unlock()
	n := 0
	revenue := decimal.Zero
	for _, s := range t.sales {
		if s.UserID == userID {
			n++
			revenue = revenue.Add(s.Total)
		}
	}
	return n, revenue, nil
}
