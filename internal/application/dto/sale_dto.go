package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// SaleItemRequest línea de la orden.
type SaleItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0,lte=2147483647"`
}

// CreateSaleRequest body para POST /api/sales. DueDate es obligatoria si PaymentType=CREDIT.
type CreateSaleRequest struct {
	Items       []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
	PaymentType string            `json:"paymentType" validate:"required,oneof=CASH CREDIT"`
	DueDate     *time.Time        `json:"dueDate,omitempty" validate:"required_if=PaymentType CREDIT"`
}

// SaleItemResponse línea de venta con la foto de precio y costo.
type SaleItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	UnitCost  decimal.Decimal `json:"unitCost"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta con ítems y cuentas por cobrar.
type SaleResponse struct {
	ID          string               `json:"id"`
	Total       decimal.Decimal      `json:"total"`
	PaymentType string               `json:"paymentType"`
	CreatedAt   time.Time            `json:"createdAt"`
	Items       []SaleItemResponse   `json:"items"`
	Receivables []ReceivableResponse `json:"receivables"`
}

// NewSaleResponse mapea la entidad (con ítems y cuentas por cobrar cargados).
func NewSaleResponse(s *entity.Sale, now time.Time) SaleResponse {
	resp := SaleResponse{
		ID:          s.ID,
		Total:       s.Total,
		PaymentType: string(s.PaymentType),
		CreatedAt:   s.CreatedAt,
		Items:       make([]SaleItemResponse, 0, len(s.Items)),
		Receivables: make([]ReceivableResponse, 0, len(s.Receivables)),
	}
	for _, it := range s.Items {
		resp.Items = append(resp.Items, SaleItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			UnitCost:  it.UnitCost,
			Subtotal:  it.Subtotal(),
		})
	}
	for i := range s.Receivables {
		resp.Receivables = append(resp.Receivables, NewReceivableResponse(&s.Receivables[i], now))
	}
	return resp
}
