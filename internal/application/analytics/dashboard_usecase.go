// Package analytics contiene el tablero de resumen del tenant.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/internal/domain/tenancy"
)

const (
	dashboardTopProducts = 5 // productos en el gráfico de más vendidos
	dashboardAlerts      = 5 // filas por lista de alertas
)

// DashboardUseCase genera el resumen del mes en curso, los gráficos y las alertas.
//
// Fuentes: DashboardRepository (agregados de ventas), ProductRepository (stock bajo)
// y ReceivableRepository (vencidas). Todo de solo lectura y filtrado por tenant.
type DashboardUseCase struct {
	dashboard   repository.DashboardRepository
	products    repository.ProductRepository
	receivables repository.ReceivableRepository
	now         func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	dashboard repository.DashboardRepository,
	products repository.ProductRepository,
	receivables repository.ReceivableRepository,
) *DashboardUseCase {
	return &DashboardUseCase{dashboard: dashboard, products: products, receivables: receivables, now: time.Now}
}

// GetSummary arma el DashboardResponse. Las ocho consultas corren en paralelo:
//  1. ventas del mes      -> MonthlyRevenue, TicketAverage
//  2. ventas de hoy       -> SalesToday
//  3. conteo stock bajo   -> LowStockCount
//  4. conteo vencidas     -> OverdueReceivables
//  5. ventas por día      -> SalesByDay
//  6. top productos       -> TopProducts
//  7. alertas stock bajo
//  8. alertas vencidas
func (uc *DashboardUseCase) GetSummary(ctx context.Context, scope tenancy.Scope) (*dto.DashboardResponse, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	tenantID := scope.TenantID
	now := uc.now()
	loc := now.Location()

	// ── Rangos de fecha ────────────────────────────────────────────────────────
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	todayEnd := todayStart.AddDate(0, 0, 1)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	monthEnd := monthStart.AddDate(0, 1, 0)
	overdue := repository.ReceivableQuery{Filter: repository.ReceivablesOverdue, Now: now}

	var (
		month, today repository.SalesAggregate
		resp         dto.DashboardResponse
		daily        []repository.DailySales
		top          []repository.ProductQuantity
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		month, err = uc.dashboard.SalesBetween(gctx, tenantID, monthStart, monthEnd)
		return wrap("ventas del mes", err)
	})
	g.Go(func() error {
		var err error
		today, err = uc.dashboard.SalesBetween(gctx, tenantID, todayStart, todayEnd)
		return wrap("ventas de hoy", err)
	})
	g.Go(func() error {
		var err error
		resp.Summary.LowStockCount, err = uc.products.CountLowStock(gctx, tenantID)
		return wrap("conteo stock bajo", err)
	})
	g.Go(func() error {
		var err error
		resp.Summary.OverdueReceivables, err = uc.receivables.Count(gctx, tenantID, overdue)
		return wrap("conteo vencidas", err)
	})
	g.Go(func() error {
		var err error
		daily, err = uc.dashboard.SalesByDay(gctx, tenantID, monthStart, monthEnd, loc)
		return wrap("ventas por día", err)
	})
	g.Go(func() error {
		var err error
		top, err = uc.dashboard.TopProducts(gctx, tenantID, dashboardTopProducts)
		return wrap("top productos", err)
	})
	g.Go(func() error {
		list, err := uc.products.ListLowStock(gctx, tenantID, dashboardAlerts)
		if err != nil {
			return wrap("alertas stock bajo", err)
		}
		resp.Alerts.LowStock = make([]dto.LowStockAlert, 0, len(list))
		for _, p := range list {
			resp.Alerts.LowStock = append(resp.Alerts.LowStock, dto.LowStockAlert{
				ID: p.ID, Name: p.Name, Stock: p.Stock, MinStock: p.MinStock,
			})
		}
		return nil
	})
	g.Go(func() error {
		q := overdue
		q.Limit = dashboardAlerts
		list, err := uc.receivables.List(gctx, tenantID, q)
		if err != nil {
			return wrap("alertas vencidas", err)
		}
		resp.Alerts.OverdueReceivables = make([]dto.OverdueAlert, 0, len(list))
		for _, r := range list {
			resp.Alerts.OverdueReceivables = append(resp.Alerts.OverdueReceivables, dto.OverdueAlert{
				ID: r.ID, DueDate: r.DueDate, Amount: r.Amount,
			})
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// ── KPIs ───────────────────────────────────────────────────────────────────
	resp.Summary.MonthlyRevenue = month.Total
	resp.Summary.SalesToday = today.Count
	resp.Summary.TicketAverage = ticketAverage(month)

	// ── Gráficos ───────────────────────────────────────────────────────────────
	resp.Charts.SalesByDay = fillMonth(daily, daysIn(monthStart))
	resp.Charts.TopProducts = make([]dto.ProductQuantity, 0, len(top))
	for _, pq := range top {
		resp.Charts.TopProducts = append(resp.Charts.TopProducts, dto.ProductQuantity{Name: pq.Name, Quantity: pq.Quantity})
	}
	return &resp, nil
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("dashboard: %s: %w", what, err)
}

// ticketAverage ingreso del mes / cantidad de ventas del mes; 0 sin ventas.
func ticketAverage(month repository.SalesAggregate) decimal.Decimal {
	if month.Count == 0 {
		return decimal.Zero
	}
	return month.Total.Div(decimal.NewFromInt(int64(month.Count))).Round(2)
}

// daysIn cantidad de días del mes que empieza en monthStart.
func daysIn(monthStart time.Time) int {
	return monthStart.AddDate(0, 1, -1).Day()
}

// fillMonth devuelve una fila por día del mes ("01".."N"), en cero los días sin ventas.
func fillMonth(daily []repository.DailySales, days int) []dto.DayTotal {
	byDay := make(map[int]decimal.Decimal, len(daily))
	for _, d := range daily {
		byDay[d.Day] = d.Total
	}
	out := make([]dto.DayTotal, days)
	for day := 1; day <= days; day++ {
		total, ok := byDay[day]
		if !ok {
			total = decimal.Zero
		}
		out[day-1] = dto.DayTotal{Day: fmt.Sprintf("%02d", day), Total: total}
	}
	return out
}
