package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardResponse respuesta de GET /api/dashboard/summary.
type DashboardResponse struct {
	Summary DashboardSummary `json:"summary"`
	Charts  DashboardCharts  `json:"charts"`
	Alerts  DashboardAlerts  `json:"alerts"`
}

// DashboardSummary KPIs del mes y del día.
type DashboardSummary struct {
	MonthlyRevenue     decimal.Decimal `json:"monthlyRevenue"`
	SalesToday         int             `json:"salesToday"`
	TicketAverage      decimal.Decimal `json:"ticketAverage"`
	LowStockCount      int             `json:"lowStockCount"`
	OverdueReceivables int             `json:"overdueReceivables"`
}

// DashboardCharts series para gráficos.
type DashboardCharts struct {
	SalesByDay  []DayTotal        `json:"salesByDay"`
	TopProducts []ProductQuantity `json:"topProducts"`
}

// DayTotal total vendido por día del mes ("01".."31").
type DayTotal struct {
	Day   string          `json:"day"`
	Total decimal.Decimal `json:"total"`
}

// ProductQuantity unidades vendidas por producto.
type ProductQuantity struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// DashboardAlerts alertas accionables.
type DashboardAlerts struct {
	LowStock           []LowStockAlert `json:"lowStock"`
	OverdueReceivables []OverdueAlert  `json:"overdueReceivables"`
}

// LowStockAlert producto por debajo del mínimo.
type LowStockAlert struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Stock    int    `json:"stock"`
	MinStock int    `json:"minStock"`
}

// OverdueAlert cuenta por cobrar vencida.
type OverdueAlert struct {
	ID      string          `json:"id"`
	DueDate time.Time       `json:"dueDate"`
	Amount  decimal.Decimal `json:"amount"`
}
