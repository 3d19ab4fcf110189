package repository

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// Toda búsqueda, edición y borrado combina id + tenantID.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Customer, error)
	// Update devuelve false si no existe una fila con ese id para el tenant.
	Update(ctx context.Context, customer *entity.Customer) (bool, error)
	Delete(ctx context.Context, tenantID, id string) (bool, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.Customer, error)
}
