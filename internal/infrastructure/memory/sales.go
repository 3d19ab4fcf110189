package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var (
	_ repository.SaleRepository       = (*SaleRepo)(nil)
	_ repository.ReceivableRepository = (*ReceivableRepo)(nil)
	_ repository.DashboardRepository  = (*DashboardRepo)(nil)
)

// SaleRepo ventas en memoria.
type SaleRepo struct{ a access }

func (r *SaleRepo) Create(_ context.Context, s *entity.Sale) error {
	return r.a.write(func(st *state) error {
		head := *s
		head.Items, head.Receivables = nil, nil
		st.sales = append(st.sales, head)
		return nil
	})
}

func (r *SaleRepo) CreateItems(_ context.Context, items []entity.SaleItem) error {
	return r.a.write(func(st *state) error {
		st.items = append(st.items, items...)
		return nil
	})
}

func (r *SaleRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Sale, error) {
	var out *entity.Sale
	r.a.read(func(st *state) {
		for _, s := range st.sales {
			if s.ID == id && s.TenantID == tenantID {
				out = withDetails(st, s)
				return
			}
		}
	})
	return out, nil
}

func (r *SaleRepo) ListByTenant(_ context.Context, tenantID string) ([]*entity.Sale, error) {
	out := make([]*entity.Sale, 0)
	r.a.read(func(st *state) {
		for _, s := range newestFirst(st.sales, func(s entity.Sale) time.Time { return s.CreatedAt }) {
			if s.TenantID == tenantID {
				out = append(out, withDetails(st, s))
			}
		}
	})
	return out, nil
}

func withDetails(st *state, s entity.Sale) *entity.Sale {
	s.Items = []entity.SaleItem{}
	s.Receivables = []entity.Receivable{}
	for _, it := range st.items {
		if it.SaleID == s.ID {
			s.Items = append(s.Items, it)
		}
	}
	slices.SortFunc(s.Items, func(a, b entity.SaleItem) int { return cmp.Compare(a.Position, b.Position) })
	for _, rc := range st.receivables {
		if rc.SaleID == s.ID {
			s.Receivables = append(s.Receivables, rc)
		}
	}
	return &s
}

// ReceivableRepo cuentas por cobrar en memoria.
type ReceivableRepo struct{ a access }

func (r *ReceivableRepo) Create(_ context.Context, rc *entity.Receivable) error {
	return r.a.write(func(st *state) error {
		st.receivables = append(st.receivables, *rc)
		return nil
	})
}

func (r *ReceivableRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Receivable, error) {
	var out *entity.Receivable
	r.a.read(func(st *state) {
		for _, rc := range st.receivables {
			if rc.ID == id && rc.TenantID == tenantID {
				out = &rc
				return
			}
		}
	})
	return out, nil
}

func (r *ReceivableRepo) MarkPaid(_ context.Context, tenantID, id string, paidAt time.Time) (bool, error) {
	changed := false
	err := r.a.write(func(st *state) error {
		for i := range st.receivables {
			rc := &st.receivables[i]
			if rc.ID == id && rc.TenantID == tenantID {
				changed = rc.MarkPaid(paidAt)
				return nil
			}
		}
		return nil
	})
	return changed, err
}

func (r *ReceivableRepo) List(_ context.Context, tenantID string, q repository.ReceivableQuery) ([]repository.ReceivableView, error) {
	out := make([]repository.ReceivableView, 0)
	r.a.read(func(st *state) {
		sales := make(map[string]entity.Sale, len(st.sales))
		for _, s := range st.sales {
			sales[s.ID] = s
		}
		for _, rc := range st.receivables {
			if rc.TenantID == tenantID && matchesReceivable(rc, q) {
				s := sales[rc.SaleID]
				out = append(out, repository.ReceivableView{Receivable: rc, SaleTotal: s.Total, SaleCreatedAt: s.CreatedAt})
			}
		}
	})
	desc := q.Filter == repository.ReceivablesPaid
	slices.SortStableFunc(out, func(a, b repository.ReceivableView) int {
		if desc {
			return b.DueDate.Compare(a.DueDate)
		}
		return a.DueDate.Compare(b.DueDate)
	})
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (r *ReceivableRepo) Count(ctx context.Context, tenantID string, q repository.ReceivableQuery) (int, error) {
	q.Limit = 0
	list, err := r.List(ctx, tenantID, q)
	return len(list), err
}

func matchesReceivable(rc entity.Receivable, q repository.ReceivableQuery) bool {
	switch q.Filter {
	case repository.ReceivablesOverdue:
		return rc.Status == entity.ReceivablePending && rc.DueDate.Before(q.Now)
	case repository.ReceivablesUpcoming:
		return rc.Status == entity.ReceivablePending && !rc.DueDate.Before(q.Now) && !rc.DueDate.After(q.UpcomingUntil)
	case repository.ReceivablesPaid:
		return rc.Status == entity.ReceivablePaid
	default:
		return true
	}
}

// DashboardRepo agregados del tablero en memoria.
type DashboardRepo struct{ a access }

func (r *DashboardRepo) SalesBetween(_ context.Context, tenantID string, from, to time.Time) (repository.SalesAggregate, error) {
	agg := repository.SalesAggregate{Total: decimal.Zero}
	r.a.read(func(st *state) {
		for _, s := range st.sales {
			if s.TenantID == tenantID && !s.CreatedAt.Before(from) && s.CreatedAt.Before(to) {
				agg.Count++
				agg.Total = agg.Total.Add(s.Total)
			}
		}
	})
	return agg, nil
}

func (r *DashboardRepo) SalesByDay(_ context.Context, tenantID string, from, to time.Time, loc *time.Location) ([]repository.DailySales, error) {
	totals := make(map[int]decimal.Decimal)
	r.a.read(func(st *state) {
		for _, s := range st.sales {
			if s.TenantID == tenantID && !s.CreatedAt.Before(from) && s.CreatedAt.Before(to) {
				day := s.CreatedAt.In(loc).Day()
				totals[day] = totals[day].Add(s.Total)
			}
		}
	})
	out := make([]repository.DailySales, 0, len(totals))
	for day := 1; day <= 31; day++ {
		if t, ok := totals[day]; ok {
			out = append(out, repository.DailySales{Day: day, Total: t})
		}
	}
	return out, nil
}

func (r *DashboardRepo) TopProducts(_ context.Context, tenantID string, limit int) ([]repository.ProductQuantity, error) {
	byProduct := make(map[string]*repository.ProductQuantity)
	r.a.read(func(st *state) {
		names := make(map[string]string, len(st.products))
		for _, p := range st.products {
			names[p.ID] = p.Name
		}
		for _, it := range st.items {
			if it.TenantID != tenantID {
				continue
			}
			pq, ok := byProduct[it.ProductID]
			if !ok {
				pq = &repository.ProductQuantity{ProductID: it.ProductID, Name: names[it.ProductID]}
				byProduct[it.ProductID] = pq
			}
			pq.Quantity += it.Quantity
		}
	})
	out := make([]repository.ProductQuantity, 0, len(byProduct))
	for _, pq := range byProduct {
		out = append(out, *pq)
	}
	slices.SortFunc(out, func(a, b repository.ProductQuantity) int {
		return cmp.Or(cmp.Compare(b.Quantity, a.Quantity), cmp.Compare(a.Name, b.Name))
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
