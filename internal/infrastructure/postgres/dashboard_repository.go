package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas agregadas de solo lectura para el tablero.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// SalesBetween cantidad y suma de ventas con created_at en [from, to).
func (r *DashboardRepo) SalesBetween(ctx context.Context, tenantID string, from, to time.Time) (repository.SalesAggregate, error) {
	var agg repository.SalesAggregate
	err := r.q.QueryRow(ctx, `
		SELECT count(*), COALESCE(sum(total), 0)
		FROM sales
		WHERE tenant_id = $1 AND created_at >= $2 AND created_at < $3`, tenantID, from, to,
	).Scan(&agg.Count, &agg.Total)
	if err != nil {
		return agg, fmt.Errorf("sales between: %w", err)
	}
	return agg, nil
}

// SalesByDay total vendido por día del mes en [from, to), agrupado según loc.
// El agrupamiento se hace en Go para no depender de los nombres de zona horaria de PostgreSQL.
func (r *DashboardRepo) SalesByDay(ctx context.Context, tenantID string, from, to time.Time, loc *time.Location) ([]repository.DailySales, error) {
	rows, err := r.q.Query(ctx, `
		SELECT created_at, total
		FROM sales
		WHERE tenant_id = $1 AND created_at >= $2 AND created_at < $3`, tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("sales by day: %w", err)
	}
	defer rows.Close()

	totals := make(map[int]decimal.Decimal)
	for rows.Next() {
		var at time.Time
		var total decimal.Decimal
		if err := rows.Scan(&at, &total); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		day := at.In(loc).Day()
		totals[day] = totals[day].Add(total)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sales by day: %w", err)
	}

	out := make([]repository.DailySales, 0, len(totals))
	for day := 1; day <= 31; day++ {
		if t, ok := totals[day]; ok {
			out = append(out, repository.DailySales{Day: day, Total: t})
		}
	}
	return out, nil
}

// TopProducts productos más vendidos por cantidad (histórico).
func (r *DashboardRepo) TopProducts(ctx context.Context, tenantID string, limit int) ([]repository.ProductQuantity, error) {
	rows, err := r.q.Query(ctx, `
		SELECT si.product_id, p.name, sum(si.quantity)::int AS qty
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		WHERE si.tenant_id = $1
		GROUP BY si.product_id, p.name
		ORDER BY qty DESC, p.name
		LIMIT $2`, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()

	out := make([]repository.ProductQuantity, 0)
	for rows.Next() {
		var pq repository.ProductQuantity
		if err := rows.Scan(&pq.ProductID, &pq.Name, &pq.Quantity); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		out = append(out, pq)
	}
	return out, rows.Err()
}
