package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// ReceivableQuery parámetros de GET /api/receivables.
type ReceivableQuery struct {
	Filter    string `query:"filter" validate:"oneof=all overdue upcoming paid"`
	DaysAhead int    `query:"daysAhead" validate:"gte=1,lte=60"`
}

// ReceivableResponse cuenta por cobrar. Overdue es derivado, no persistido.
type ReceivableResponse struct {
	ID      string          `json:"id"`
	SaleID  string          `json:"saleId"`
	Amount  decimal.Decimal `json:"amount"`
	DueDate time.Time       `json:"dueDate"`
	Status  string          `json:"status"`
	Overdue bool            `json:"overdue"`
	PaidAt  *time.Time      `json:"paidAt"`
}

// ReceivableSale resumen de la venta de origen.
type ReceivableSale struct {
	ID        string          `json:"id"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ReceivableWithSale fila del listado.
type ReceivableWithSale struct {
	ReceivableResponse
	Sale ReceivableSale `json:"sale"`
}

// ReceivableCounters contadores del listado.
type ReceivableCounters struct {
	Overdue  int `json:"overdue"`
	Upcoming int `json:"upcoming"`
	Paid     int `json:"paid"`
}

// ReceivableListResponse GET /api/receivables.
type ReceivableListResponse struct {
	Data     []ReceivableWithSale `json:"data"`
	Counters ReceivableCounters   `json:"counters"`
}

// NewReceivableResponse mapea la entidad.
func NewReceivableResponse(r *entity.Receivable, now time.Time) ReceivableResponse {
	return ReceivableResponse{
		ID:      r.ID,
		SaleID:  r.SaleID,
		Amount:  r.Amount,
		DueDate: r.DueDate,
		Status:  string(r.Status),
		Overdue: r.IsOverdue(now),
		PaidAt:  r.PaidAt,
	}
}
