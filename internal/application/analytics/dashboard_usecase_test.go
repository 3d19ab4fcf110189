package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/tenancy"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/memory"
)

var (
	scopeA = tenancy.Scope{UserID: "u-a", TenantID: "tenant-a"}
	// 20 de febrero de 2026: mes de 28 días.
	fixedNow = time.Date(2026, 2, 20, 15, 0, 0, 0, time.UTC)
)

func newUseCase(store *memory.Store) *DashboardUseCase {
	uc := NewDashboardUseCase(store.Dashboard(), store.Products(), store.Receivables())
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func seedSale(t *testing.T, store *memory.Store, tenantID, id string, total int64, at time.Time, items ...entity.SaleItem) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.Sales().Create(ctx, &entity.Sale{
		ID: id, TenantID: tenantID, Total: decimal.NewFromInt(total), PaymentType: entity.PaymentCash, CreatedAt: at,
	}))
	for i := range items {
		items[i].ID = id + "-item"
		items[i].SaleID = id
		items[i].TenantID = tenantID
	}
	require.NoError(t, store.Sales().CreateItems(ctx, items))
}

func seedProduct(t *testing.T, store *memory.Store, tenantID, id, name string, stock, minStock int) {
	t.Helper()
	require.NoError(t, store.Products().Create(context.Background(), &entity.Product{
		ID: id, TenantID: tenantID, Name: name, Stock: stock, MinStock: minStock,
		CostPrice: decimal.NewFromInt(1), SalePrice: decimal.NewFromInt(2), CreatedAt: fixedNow,
	}))
}

func TestGetSummary_KPIsGraficosYAlertas(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	seedProduct(t, store, "tenant-a", "p1", "Arroz", 2, 5)
	seedProduct(t, store, "tenant-a", "p2", "Café", 0, 1)
	seedProduct(t, store, "tenant-a", "p3", "Sal", 50, 5)
	seedProduct(t, store, "tenant-b", "pb", "Ajeno", 0, 10)

	seedSale(t, store, "tenant-a", "s1", 100, fixedNow.Add(-2*time.Hour), entity.SaleItem{ProductID: "p1", Quantity: 3})
	seedSale(t, store, "tenant-a", "s2", 50, time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC), entity.SaleItem{ProductID: "p3", Quantity: 7})
	seedSale(t, store, "tenant-a", "s3", 25, time.Date(2026, 2, 3, 18, 0, 0, 0, time.UTC))
	seedSale(t, store, "tenant-a", "enero", 999, time.Date(2026, 1, 31, 23, 0, 0, 0, time.UTC), entity.SaleItem{ProductID: "p1", Quantity: 1})
	seedSale(t, store, "tenant-b", "sb", 500, fixedNow)

	require.NoError(t, store.Receivables().Create(ctx, &entity.Receivable{
		ID: "r1", TenantID: "tenant-a", SaleID: "s2", Amount: decimal.NewFromInt(50),
		DueDate: fixedNow.AddDate(0, 0, -1), Status: entity.ReceivablePending,
	}))
	require.NoError(t, store.Receivables().Create(ctx, &entity.Receivable{
		ID: "r2", TenantID: "tenant-a", SaleID: "s3", Amount: decimal.NewFromInt(25),
		DueDate: fixedNow.AddDate(0, 0, 5), Status: entity.ReceivablePending,
	}))

	out, err := newUseCase(store).GetSummary(ctx, scopeA)
	require.NoError(t, err)

	s := out.Summary
	assert.True(t, s.MonthlyRevenue.Equal(decimal.NewFromInt(175)), s.MonthlyRevenue.String())
	assert.Equal(t, 1, s.SalesToday)
	assert.Equal(t, "58.33", s.TicketAverage.StringFixed(2))
	assert.Equal(t, 2, s.LowStockCount)
	assert.Equal(t, 1, s.OverdueReceivables)

	require.Len(t, out.Charts.SalesByDay, 28)
	assert.Equal(t, "01", out.Charts.SalesByDay[0].Day)
	assert.Equal(t, "28", out.Charts.SalesByDay[27].Day)
	assert.True(t, out.Charts.SalesByDay[2].Total.Equal(decimal.NewFromInt(75)))
	assert.True(t, out.Charts.SalesByDay[19].Total.Equal(decimal.NewFromInt(100)))
	assert.True(t, out.Charts.SalesByDay[0].Total.IsZero())

	require.Len(t, out.Charts.TopProducts, 2)
	assert.Equal(t, "Sal", out.Charts.TopProducts[0].Name)
	assert.Equal(t, 7, out.Charts.TopProducts[0].Quantity)
	assert.Equal(t, 4, out.Charts.TopProducts[1].Quantity, "el ranking es histórico")

	require.Len(t, out.Alerts.LowStock, 2)
	assert.Equal(t, "p2", out.Alerts.LowStock[0].ID, "menor stock primero")
	require.Len(t, out.Alerts.OverdueReceivables, 1)
	assert.Equal(t, "r1", out.Alerts.OverdueReceivables[0].ID)
}

func TestGetSummary_SinDatos(t *testing.T) {
	out, err := newUseCase(memory.NewStore()).GetSummary(context.Background(), scopeA)
	require.NoError(t, err)
	assert.True(t, out.Summary.TicketAverage.IsZero())
	assert.Len(t, out.Charts.SalesByDay, 28)
	assert.NotNil(t, out.Charts.TopProducts)
	assert.NotNil(t, out.Alerts.LowStock)
	assert.NotNil(t, out.Alerts.OverdueReceivables)
}

func TestFillMonth(t *testing.T) {
	assert.Equal(t, 31, daysIn(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 29, daysIn(time.Date(2028, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 30, daysIn(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)))
}
