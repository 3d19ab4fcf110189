package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var (
	_ repository.CustomerRepository      = (*CustomerRepo)(nil)
	_ repository.ProductRepository       = (*ProductRepo)(nil)
	_ repository.StockMovementRepository = (*StockMovementRepo)(nil)
)

// newestFirst devuelve una copia ordenada por CreatedAt desc; en empates gana el último insertado.
func newestFirst[T any](list []T, createdAt func(T) time.Time) []T {
	out := slices.Clone(list)
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b T) int { return createdAt(b).Compare(createdAt(a)) })
	return out
}

// CustomerRepo clientes en memoria.
type CustomerRepo struct{ a access }

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	return r.a.write(func(st *state) error {
		st.customers = append(st.customers, *c)
		return nil
	})
}

func (r *CustomerRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Customer, error) {
	var out *entity.Customer
	r.a.read(func(st *state) {
		for _, c := range st.customers {
			if c.ID == id && c.TenantID == tenantID {
				out = &c
				return
			}
		}
	})
	return out, nil
}

func (r *CustomerRepo) Update(_ context.Context, c *entity.Customer) (bool, error) {
	found := false
	err := r.a.write(func(st *state) error {
		for i := range st.customers {
			if st.customers[i].ID == c.ID && st.customers[i].TenantID == c.TenantID {
				st.customers[i].Name = c.Name
				st.customers[i].Phone = c.Phone
				st.customers[i].Email = c.Email
				st.customers[i].UpdatedAt = c.UpdatedAt
				found = true
				return nil
			}
		}
		return nil
	})
	return found, err
}

func (r *CustomerRepo) Delete(_ context.Context, tenantID, id string) (bool, error) {
	found := false
	err := r.a.write(func(st *state) error {
		st.customers = slices.DeleteFunc(st.customers, func(c entity.Customer) bool {
			match := c.ID == id && c.TenantID == tenantID
			found = found || match
			return match
		})
		return nil
	})
	return found, err
}

func (r *CustomerRepo) ListByTenant(_ context.Context, tenantID string) ([]*entity.Customer, error) {
	out := make([]*entity.Customer, 0)
	r.a.read(func(st *state) {
		for _, c := range newestFirst(st.customers, func(c entity.Customer) time.Time { return c.CreatedAt }) {
			if c.TenantID == tenantID {
				out = append(out, &c)
			}
		}
	})
	return out, nil
}

// ProductRepo productos en memoria. El stock nunca queda negativo.
type ProductRepo struct{ a access }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.a.write(func(st *state) error {
		st.products = append(st.products, *p)
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Product, error) {
	var out *entity.Product
	r.a.read(func(st *state) {
		if i := productIndex(st, tenantID, id); i >= 0 {
			p := st.products[i]
			out = &p
		}
	})
	return out, nil
}

// GetForUpdate en memoria equivale a GetByID: la transacción ya es exclusiva.
func (r *ProductRepo) GetForUpdate(ctx context.Context, tenantID, id string) (*entity.Product, error) {
	return r.GetByID(ctx, tenantID, id)
}

func (r *ProductRepo) GetByIDs(_ context.Context, tenantID string, ids []string) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(ids))
	r.a.read(func(st *state) {
		for _, p := range st.products {
			if p.TenantID == tenantID && slices.Contains(ids, p.ID) {
				out = append(out, &p)
			}
		}
	})
	slices.SortFunc(out, func(a, b *entity.Product) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (r *ProductRepo) UpdateDetails(_ context.Context, p *entity.Product) (bool, error) {
	found := false
	err := r.a.write(func(st *state) error {
		if i := productIndex(st, p.TenantID, p.ID); i >= 0 {
			cur := &st.products[i]
			cur.Name = p.Name
			cur.CostPrice = p.CostPrice
			cur.SalePrice = p.SalePrice
			cur.MinStock = p.MinStock
			cur.UpdatedAt = p.UpdatedAt
			found = true
		}
		return nil
	})
	return found, err
}

func (r *ProductRepo) ApplyStockDelta(_ context.Context, tenantID, id string, delta int) (int, bool, error) {
	var stock int
	ok := false
	err := r.a.write(func(st *state) error {
		i := productIndex(st, tenantID, id)
		if i < 0 || st.products[i].Stock+delta < 0 {
			return nil
		}
		st.products[i].Stock += delta
		st.products[i].UpdatedAt = time.Now()
		stock, ok = st.products[i].Stock, true
		return nil
	})
	return stock, ok, err
}

// Delete quita el producto y sus movimientos; con ítems de venta asociados -> ErrProductInUse.
func (r *ProductRepo) Delete(_ context.Context, tenantID, id string) (bool, error) {
	found := false
	err := r.a.write(func(st *state) error {
		i := productIndex(st, tenantID, id)
		if i < 0 {
			return nil
		}
		if slices.ContainsFunc(st.items, func(it entity.SaleItem) bool { return it.ProductID == id }) {
			return domain.ErrProductInUse
		}
		st.products = slices.Delete(st.products, i, i+1)
		st.movements = slices.DeleteFunc(st.movements, func(m entity.StockMovement) bool { return m.ProductID == id })
		found = true
		return nil
	})
	return found, err
}

func (r *ProductRepo) List(_ context.Context, tenantID string, f repository.ProductFilter) ([]*entity.Product, int, error) {
	search := strings.ToLower(f.Search)
	matched := make([]*entity.Product, 0)
	r.a.read(func(st *state) {
		for _, p := range newestFirst(st.products, func(p entity.Product) time.Time { return p.CreatedAt }) {
			if p.TenantID == tenantID && strings.Contains(strings.ToLower(p.Name), search) {
				matched = append(matched, &p)
			}
		}
	})
	total := len(matched)
	start := min(f.Offset, total)
	end := total
	if f.Limit > 0 {
		end = min(start+f.Limit, total)
	}
	return matched[start:end], total, nil
}

func (r *ProductRepo) ListAll(_ context.Context, tenantID string) ([]*entity.Product, error) {
	out := r.filter(tenantID, func(entity.Product) bool { return true })
	slices.SortStableFunc(out, func(a, b *entity.Product) int { return cmp.Compare(a.Name, b.Name) })
	return out, nil
}

func (r *ProductRepo) ListLowStock(_ context.Context, tenantID string, limit int) ([]*entity.Product, error) {
	out := r.filter(tenantID, func(p entity.Product) bool { return p.IsLowStock() })
	slices.SortStableFunc(out, func(a, b *entity.Product) int {
		return cmp.Or(cmp.Compare(a.Stock, b.Stock), cmp.Compare(a.MinStock, b.MinStock))
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *ProductRepo) CountLowStock(ctx context.Context, tenantID string) (int, error) {
	return len(r.filter(tenantID, func(p entity.Product) bool { return p.IsLowStock() })), nil
}

func (r *ProductRepo) filter(tenantID string, keep func(entity.Product) bool) []*entity.Product {
	out := make([]*entity.Product, 0)
	r.a.read(func(st *state) {
		for _, p := range st.products {
			if p.TenantID == tenantID && keep(p) {
				out = append(out, &p)
			}
		}
	})
	return out
}

func productIndex(st *state, tenantID, id string) int {
	return slices.IndexFunc(st.products, func(p entity.Product) bool {
		return p.ID == id && p.TenantID == tenantID
	})
}

// StockMovementRepo libro de movimientos en memoria (solo agrega).
type StockMovementRepo struct{ a access }

func (r *StockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	return r.a.write(func(st *state) error {
		st.movements = append(st.movements, *m)
		return nil
	})
}

func (r *StockMovementRepo) ListRecent(_ context.Context, tenantID string, limit int) ([]repository.MovementView, error) {
	out := make([]repository.MovementView, 0)
	r.a.read(func(st *state) {
		names := make(map[string]string, len(st.products))
		for _, p := range st.products {
			names[p.ID] = p.Name
		}
		for _, m := range newestFirst(st.movements, func(m entity.StockMovement) time.Time { return m.CreatedAt }) {
			if m.TenantID != tenantID {
				continue
			}
			if limit > 0 && len(out) == limit {
				return
			}
			out = append(out, repository.MovementView{StockMovement: m, ProductName: names[m.ProductID]})
		}
	})
	return out, nil
}

func (r *StockMovementRepo) ListByProduct(_ context.Context, tenantID, productID string) ([]*entity.StockMovement, error) {
	out := make([]*entity.StockMovement, 0)
	r.a.read(func(st *state) {
		for _, m := range st.movements {
			if m.TenantID == tenantID && m.ProductID == productID {
				out = append(out, &m)
			}
		}
	})
	return out, nil
}
