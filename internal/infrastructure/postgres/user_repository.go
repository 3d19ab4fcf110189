package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var (
	_ repository.UserRepository          = (*UserRepo)(nil)
	_ repository.MembershipRepository    = (*MembershipRepo)(nil)
	_ repository.PasswordResetRepository = (*PasswordResetRepo)(nil)
)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario. Email duplicado -> ErrEmailAlreadyExists.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Name, strings.ToLower(user.Email), user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

// FindByEmail obtiene un usuario por email (sin distinguir mayúsculas).
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, `WHERE email = $1`, strings.ToLower(email))
}

// UpdatePassword reemplaza el hash de contraseña.
func (r *UserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) findOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(ctx,
		`SELECT id, name, email, password_hash, created_at, updated_at FROM users `+where, arg,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// MembershipRepo implementación del puerto MembershipRepository sobre PostgreSQL.
type MembershipRepo struct {
	q Querier
}

// NewMembershipRepository construye el adaptador de membresías.
func NewMembershipRepository(q Querier) *MembershipRepo {
	return &MembershipRepo{q: q}
}

// Create persiste una membresía.
func (r *MembershipRepo) Create(ctx context.Context, m *entity.Membership) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO memberships (id, user_id, tenant_id, role, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.UserID, m.TenantID, m.Role, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("membresía duplicada: %w", domain.ErrConflict)
		}
		return fmt.Errorf("insert membership: %w", err)
	}
	return nil
}

// FirstByUser devuelve la membresía más antigua del usuario.
func (r *MembershipRepo) FirstByUser(ctx context.Context, userID string) (*entity.Membership, error) {
	return r.findOne(ctx, `WHERE user_id = $1 ORDER BY created_at ASC, id ASC LIMIT 1`, userID)
}

// Get devuelve la membresía del usuario en el tenant.
func (r *MembershipRepo) Get(ctx context.Context, tenantID, userID string) (*entity.Membership, error) {
	return r.findOne(ctx, `WHERE tenant_id = $1 AND user_id = $2`, tenantID, userID)
}

func (r *MembershipRepo) findOne(ctx context.Context, where string, args ...any) (*entity.Membership, error) {
	var m entity.Membership
	err := r.q.QueryRow(ctx,
		`SELECT id, user_id, tenant_id, role, created_at FROM memberships `+where, args...,
	).Scan(&m.ID, &m.UserID, &m.TenantID, &m.Role, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get membership: %w", err)
	}
	return &m, nil
}

// PasswordResetRepo persiste tokens de recuperación.
type PasswordResetRepo struct {
	q Querier
}

// NewPasswordResetRepository construye el adaptador de tokens de recuperación.
func NewPasswordResetRepository(q Querier) *PasswordResetRepo {
	return &PasswordResetRepo{q: q}
}

// Create persiste el hash del token.
func (r *PasswordResetRepo) Create(ctx context.Context, t *entity.PasswordResetToken) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO password_reset_tokens (id, user_id, tenant_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.UserID, t.TenantID, t.TokenHash, t.ExpiresAt, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert password reset token: %w", err)
	}
	return nil
}

// FindByHash busca el token por hash dentro del tenant.
func (r *PasswordResetRepo) FindByHash(ctx context.Context, tenantID, tokenHash string) (*entity.PasswordResetToken, error) {
	if !isUUID(tenantID) {
		return nil, nil
	}
	var t entity.PasswordResetToken
	err := r.q.QueryRow(ctx, `
		SELECT id, user_id, tenant_id, token_hash, expires_at, used_at, created_at
		FROM password_reset_tokens WHERE tenant_id = $1 AND token_hash = $2`, tenantID, tokenHash,
	).Scan(&t.ID, &t.UserID, &t.TenantID, &t.TokenHash, &t.ExpiresAt, &t.UsedAt, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get password reset token: %w", err)
	}
	return &t, nil
}

// MarkUsed marca el token como usado; falla si ya lo estaba.
func (r *PasswordResetRepo) MarkUsed(ctx context.Context, id string, usedAt time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE password_reset_tokens SET used_at = $2 WHERE id = $1 AND used_at IS NULL`, id, usedAt)
	if err != nil {
		return fmt.Errorf("mark token used: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInvalidToken
	}
	return nil
}
