package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceivableStatus estado de una cuenta por cobrar.
type ReceivableStatus string

// PENDING -> PAID es la única transición.
const (
	ReceivablePending ReceivableStatus = "PENDING"
	ReceivablePaid    ReceivableStatus = "PAID"
)

// Receivable dinero que se le debe al tenant por una venta a crédito.
type Receivable struct {
	ID        string
	TenantID  string
	SaleID    string
	Amount    decimal.Decimal
	DueDate   time.Time
	Status    ReceivableStatus
	PaidAt    *time.Time
	CreatedAt time.Time
}

// IsOverdue: pendiente y vencida. No se persiste.
func (r *Receivable) IsOverdue(now time.Time) bool {
	return r.Status == ReceivablePending && r.DueDate.Before(now)
}

// MarkPaid aplica PENDING -> PAID. Devuelve false si ya estaba pagada.
func (r *Receivable) MarkPaid(now time.Time) bool {
	if r.Status == ReceivablePaid {
		return false
	}
	r.Status = ReceivablePaid
	r.PaidAt = &now
	return true
}
