package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesAggregate suma y cantidad de ventas en un rango.
type SalesAggregate struct {
	Count int
	Total decimal.Decimal
}

// DailySales total vendido en un día del calendario (día del mes 1..31).
type DailySales struct {
	Day   int
	Total decimal.Decimal
}

// ProductQuantity unidades vendidas por producto.
type ProductQuantity struct {
	ProductID string
	Name      string
	Quantity  int
}

// DashboardRepository consultas de solo lectura para el tablero.
type DashboardRepository interface {
	SalesBetween(ctx context.Context, tenantID string, from, to time.Time) (SalesAggregate, error)
	SalesByDay(ctx context.Context, tenantID string, from, to time.Time, loc *time.Location) ([]DailySales, error)
	TopProducts(ctx context.Context, tenantID string, limit int) ([]ProductQuantity, error)
}
