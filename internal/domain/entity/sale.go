package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType forma de pago de una venta.
type PaymentType string

// Formas de pago.
const (
	PaymentCash   PaymentType = "CASH"
	PaymentCredit PaymentType = "CREDIT" // genera cuenta por cobrar
)

// Sale es inmutable una vez creada. Items conserva el orden de la orden original.
type Sale struct {
	ID          string
	TenantID    string
	Total       decimal.Decimal
	PaymentType PaymentType
	CreatedAt   time.Time

	Items       []SaleItem
	Receivables []Receivable
}

// SaleItem línea de venta. UnitPrice y UnitCost son una foto del producto al momento de la venta.
type SaleItem struct {
	ID        string
	TenantID  string
	SaleID    string
	ProductID string
	Position  int
	Quantity  int
	UnitPrice decimal.Decimal
	UnitCost  decimal.Decimal
}

// Subtotal devuelve UnitPrice × Quantity.
func (i SaleItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
