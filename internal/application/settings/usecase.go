// Package settings contiene la configuración del tenant y de la cuenta en sesión.
package settings

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/internal/domain/tenancy"
	"github.com/jhoicas/backoffice-api/pkg/validate"
)

// SettingsUseCase lectura y edición de ajustes.
type SettingsUseCase struct {
	tenants     repository.TenantRepository
	users       repository.UserRepository
	memberships repository.MembershipRepository
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(tenants repository.TenantRepository, users repository.UserRepository, memberships repository.MembershipRepository) *SettingsUseCase {
	return &SettingsUseCase{tenants: tenants, users: users, memberships: memberships}
}

// Get devuelve el tenant y el usuario de la sesión. Sin membresía -> ErrForbidden.
func (uc *SettingsUseCase) Get(ctx context.Context, scope tenancy.Scope) (*dto.SettingsResponse, error) {
	if _, err := uc.membership(ctx, scope); err != nil {
		return nil, err
	}
	tenant, err := uc.tenants.GetByID(ctx, scope.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}
	user, err := uc.users.GetByID(ctx, scope.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	out := &dto.SettingsResponse{Tenant: dto.TenantResponse{ID: tenant.ID, Name: tenant.Name}}
	out.User.Name = user.Name
	out.User.Email = user.Email
	return out, nil
}

// UpdateTenantName renombra el tenant. Solo OWNER o ADMIN.
func (uc *SettingsUseCase) UpdateTenantName(ctx context.Context, scope tenancy.Scope, in dto.UpdateTenantRequest) (*dto.TenantResponse, error) {
	m, err := uc.membership(ctx, scope)
	if err != nil {
		return nil, err
	}
	if !m.CanManageTenant() {
		return nil, domain.ErrForbidden
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	tenant, err := uc.tenants.UpdateName(ctx, scope.TenantID, in.Name)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.TenantResponse{ID: tenant.ID, Name: tenant.Name}, nil
}

// UpdatePassword cambia la contraseña del usuario en sesión tras verificar la actual.
func (uc *SettingsUseCase) UpdatePassword(ctx context.Context, scope tenancy.Scope, in dto.UpdatePasswordRequest) error {
	if err := scope.Validate(); err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	user, err := uc.users.GetByID(ctx, scope.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrInvalidCurrentPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.users.UpdatePassword(ctx, user.ID, string(hash))
}

// membership el rol se relee de la base: el del token puede haber cambiado.
func (uc *SettingsUseCase) membership(ctx context.Context, scope tenancy.Scope) (*entity.Membership, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	m, err := uc.memberships.Get(ctx, scope.TenantID, scope.UserID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrForbidden
	}
	return m, nil
}
