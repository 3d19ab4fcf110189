package repository

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// MovementView movimiento con el nombre del producto para listados.
type MovementView struct {
	entity.StockMovement
	ProductName string
}

// StockMovementRepository libro de movimientos: solo inserta y lee, nunca edita ni borra.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListRecent(ctx context.Context, tenantID string, limit int) ([]MovementView, error)
	ListByProduct(ctx context.Context, tenantID, productID string) ([]*entity.StockMovement, error)
}
