package repository

import (
	"context"
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User.
// Los métodos Get/Find devuelven (nil, nil) cuando no hay fila.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// MembershipRepository define el puerto de persistencia para Membership.
type MembershipRepository interface {
	Create(ctx context.Context, m *entity.Membership) error
	// FirstByUser devuelve la membresía más antigua del usuario (la que fija la sesión al iniciar).
	FirstByUser(ctx context.Context, userID string) (*entity.Membership, error)
	Get(ctx context.Context, tenantID, userID string) (*entity.Membership, error)
}

// PasswordResetRepository persiste tokens de recuperación.
type PasswordResetRepository interface {
	Create(ctx context.Context, token *entity.PasswordResetToken) error
	FindByHash(ctx context.Context, tenantID, tokenHash string) (*entity.PasswordResetToken, error)
	MarkUsed(ctx context.Context, id string, usedAt time.Time) error
}
