// Package customers contiene el ABM de clientes del tenant.
package customers

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/internal/domain/tenancy"
	"github.com/jhoicas/backoffice-api/pkg/validate"
)

// CustomerUseCase casos de uso para clientes.
type CustomerUseCase struct {
	repo  repository.CustomerRepository
	now   func() time.Time
	newID func() string
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, now: time.Now, newID: uuid.NewString}
}

// Create crea un nuevo cliente.
func (uc *CustomerUseCase) Create(ctx context.Context, scope tenancy.Scope, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	in = normalize(in)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	now := uc.now()
	c := &entity.Customer{
		ID:        uc.newID(),
		TenantID:  scope.TenantID,
		Name:      in.Name,
		Phone:     optional(in.Phone),
		Email:     optional(in.Email),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := dto.NewCustomerResponse(c)
	return &resp, nil
}

// Update reemplaza nombre, teléfono y email.
func (uc *CustomerUseCase) Update(ctx context.Context, scope tenancy.Scope, id string, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	in = normalize(in)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, scope.TenantID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCustomerNotFound
	}
	c.Name = in.Name
	c.Phone = optional(in.Phone)
	c.Email = optional(in.Email)
	c.UpdatedAt = uc.now()
	ok, err := uc.repo.Update(ctx, c)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	resp := dto.NewCustomerResponse(c)
	return &resp, nil
}

// Delete elimina el cliente.
func (uc *CustomerUseCase) Delete(ctx context.Context, scope tenancy.Scope, id string) error {
	if err := scope.Validate(); err != nil {
		return err
	}
	ok, err := uc.repo.Delete(ctx, scope.TenantID, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrCustomerNotFound
	}
	return nil
}

// List clientes del tenant, más recientes primero.
func (uc *CustomerUseCase) List(ctx context.Context, scope tenancy.Scope) ([]dto.CustomerResponse, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByTenant(ctx, scope.TenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.NewCustomerResponse(c))
	}
	return out, nil
}

func normalize(in dto.CustomerRequest) dto.CustomerRequest {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	return in
}

// optional vacío -> null.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
