package repository

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale y SaleItem.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateItems(ctx context.Context, items []entity.SaleItem) error
	// GetByID devuelve la venta con sus ítems y cuentas por cobrar.
	GetByID(ctx context.Context, tenantID, id string) (*entity.Sale, error)
	// ListByTenant devuelve las ventas (más recientes primero) con ítems y cuentas por cobrar.
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.Sale, error)
}
