package repository

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// TenantRepository define el puerto de persistencia para Tenant.
type TenantRepository interface {
	Create(ctx context.Context, tenant *entity.Tenant) error
	GetByID(ctx context.Context, id string) (*entity.Tenant, error)
	UpdateName(ctx context.Context, id, name string) (*entity.Tenant, error)
}
