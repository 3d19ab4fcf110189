package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// ReceivableFilter filtro de listado de cuentas por cobrar.
type ReceivableFilter string

// Filtros soportados.
const (
	ReceivablesAll      ReceivableFilter = "all"
	ReceivablesOverdue  ReceivableFilter = "overdue"
	ReceivablesUpcoming ReceivableFilter = "upcoming"
	ReceivablesPaid     ReceivableFilter = "paid"
)

// ReceivableQuery parámetros de listado; Now y UpcomingUntil fijan la ventana temporal.
type ReceivableQuery struct {
	Filter        ReceivableFilter
	Now           time.Time
	UpcomingUntil time.Time
	Limit         int // 0 = sin límite
}

// ReceivableView cuenta por cobrar con la venta que la originó.
type ReceivableView struct {
	entity.Receivable
	SaleTotal     decimal.Decimal
	SaleCreatedAt time.Time
}

// ReceivableCounters contadores por estado derivado.
type ReceivableCounters struct {
	Overdue  int
	Upcoming int
	Paid     int
}

// ReceivableRepository define el puerto de persistencia para Receivable.
type ReceivableRepository interface {
	Create(ctx context.Context, r *entity.Receivable) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Receivable, error)
	// MarkPaid aplica PENDING -> PAID; no toca monto ni vencimiento.
	// Devuelve false si la cuenta no existía o ya estaba pagada.
	MarkPaid(ctx context.Context, tenantID, id string, paidAt time.Time) (bool, error)
	List(ctx context.Context, tenantID string, q ReceivableQuery) ([]ReceivableView, error)
	Count(ctx context.Context, tenantID string, q ReceivableQuery) (int, error)
}
