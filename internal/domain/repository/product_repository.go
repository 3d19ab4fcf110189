package repository

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// ProductFilter filtro de listado paginado de inventario.
type ProductFilter struct {
	Search string // contiene, sin distinguir mayúsculas
	Limit  int
	Offset int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Toda consulta filtra por tenantID.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Product, error)
	// GetForUpdate lee el producto bloqueando la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, tenantID, id string) (*entity.Product, error)
	GetByIDs(ctx context.Context, tenantID string, ids []string) ([]*entity.Product, error)
	// UpdateDetails actualiza nombre, precios y stock mínimo. No toca Stock.
	UpdateDetails(ctx context.Context, product *entity.Product) (bool, error)
	// ApplyStockDelta suma delta al stock en una sola sentencia condicionada a que el
	// resultado no sea negativo. ok=false si el producto no existe para el tenant o la
	// condición no se cumplió (stock insuficiente al momento de escribir).
	ApplyStockDelta(ctx context.Context, tenantID, id string, delta int) (newStock int, ok bool, err error)
	Delete(ctx context.Context, tenantID, id string) (bool, error)
	List(ctx context.Context, tenantID string, f ProductFilter) ([]*entity.Product, int, error)
	ListAll(ctx context.Context, tenantID string) ([]*entity.Product, error)
	// ListLowStock productos con stock < min_stock, ordenados por stock y min_stock.
	ListLowStock(ctx context.Context, tenantID string, limit int) ([]*entity.Product, error)
	CountLowStock(ctx context.Context, tenantID string) (int, error)
}
