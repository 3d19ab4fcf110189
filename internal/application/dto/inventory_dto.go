package dto

import (
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// StockMovementRequest body para POST /api/inventory/movements.
// IN/OUT usan quantity; ADJUST usa targetStock e ignora quantity.
type StockMovementRequest struct {
	ProductID   string  `json:"productId" validate:"required"`
	Type        string  `json:"type" validate:"required,oneof=IN OUT ADJUST"`
	Quantity    *int    `json:"quantity,omitempty" validate:"omitempty,gt=0,lte=2147483647"`
	TargetStock *int    `json:"targetStock,omitempty" validate:"omitempty,gte=0,lte=2147483647"`
	Reason      *string `json:"reason,omitempty" validate:"omitempty,max=200"`
}

// StockMovementResponse movimiento registrado.
type StockMovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName,omitempty"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	Reason      *string   `json:"reason"`
	CreatedAt   time.Time `json:"createdAt"`
	// StockAfter solo se informa al registrar el movimiento.
	StockAfter *int `json:"stockAfter,omitempty"`
}

// NewStockMovementResponse mapea la entidad.
func NewStockMovementResponse(m *entity.StockMovement, productName string) StockMovementResponse {
	return StockMovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: productName,
		Type:        string(m.Type),
		Quantity:    m.Quantity,
		Reason:      m.Reason,
		CreatedAt:   m.CreatedAt,
	}
}
