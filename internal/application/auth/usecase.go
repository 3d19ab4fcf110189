// Package auth contiene registro, inicio de sesión y recuperación de contraseña.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/pkg/jwt"
	"github.com/jhoicas/backoffice-api/pkg/validate"
)

// ResetTokenTTL vigencia de un token de recuperación.
const ResetTokenTTL = 30 * time.Minute

// ForgotPasswordMessage respuesta neutra: no revela si el email existe.
const ForgotPasswordMessage = "Si el email está registrado, recibirás instrucciones para restablecer la contraseña."

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Config parámetros del caso de uso.
type Config struct {
	JWT JWTConfig
	// AppURL base de los enlaces de recuperación.
	AppURL string
	// ExposeResetURL devuelve el enlace en la respuesta (solo fuera de producción).
	ExposeResetURL bool
}

// AuthUseCase casos de uso de autenticación.
type AuthUseCase struct {
	txRunner    repository.TxRunner
	users       repository.UserRepository
	memberships repository.MembershipRepository
	resets      repository.PasswordResetRepository
	cfg         Config
	now         func() time.Time
	newID       func() string
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	txRunner repository.TxRunner,
	users repository.UserRepository,
	memberships repository.MembershipRepository,
	resets repository.PasswordResetRepository,
	cfg Config,
) *AuthUseCase {
	return &AuthUseCase{
		txRunner:    txRunner,
		users:       users,
		memberships: memberships,
		resets:      resets,
		cfg:         cfg,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Register crea en una transacción el tenant, el usuario y su membresía OWNER.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	tenant := &entity.Tenant{ID: uc.newID(), Name: strings.TrimSpace(in.TenantName), CreatedAt: now, UpdatedAt: now}
	user := &entity.User{
		ID:           uc.newID(),
		Name:         strings.TrimSpace(in.Name),
		Email:        normalizeEmail(in.Email),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.txRunner.Run(ctx, func(tx repository.TxRepos) error {
		existing, err := tx.Users.FindByEmail(ctx, user.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrEmailAlreadyExists
		}
		if err := tx.Tenants.Create(ctx, tenant); err != nil {
			return err
		}
		if err := tx.Users.Create(ctx, user); err != nil {
			return err
		}
		return tx.Memberships.Create(ctx, &entity.Membership{
			ID:        uc.newID(),
			UserID:    user.ID,
			TenantID:  tenant.ID,
			Role:      entity.RoleOwner,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return &dto.RegisterResponse{ID: user.ID, Email: user.Email, TenantID: tenant.ID}, nil
}

// Login verifica email/password y emite un JWT atado a la membresía más antigua del usuario.
// Usuario inexistente, contraseña incorrecta o usuario sin membresía -> ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	user, err := uc.users.FindByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	m, err := uc.memberships.FirstByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.cfg.JWT.Secret, user.ID, m.TenantID, m.Role, uc.cfg.JWT.Issuer, uc.cfg.JWT.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:    token,
		TenantID: m.TenantID,
		Role:     m.Role,
		User:     dto.UserResponse{ID: user.ID, Name: user.Name, Email: user.Email},
	}, nil
}

// ForgotPassword genera un token de recuperación para el tenant de la primera membresía.
// La respuesta es la misma exista o no el email.
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, in dto.ForgotPasswordRequest) (*dto.ForgotPasswordResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	resp := &dto.ForgotPasswordResponse{Message: ForgotPasswordMessage}

	user, err := uc.users.FindByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return resp, nil
	}
	m, err := uc.memberships.FirstByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return resp, nil
	}

	raw, err := newResetToken()
	if err != nil {
		return nil, err
	}
	now := uc.now()
	if err := uc.resets.Create(ctx, &entity.PasswordResetToken{
		ID:        uc.newID(),
		UserID:    user.ID,
		TenantID:  m.TenantID,
		TokenHash: hashToken(raw),
		ExpiresAt: now.Add(ResetTokenTTL),
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}
	if uc.cfg.ExposeResetURL {
		resp.ResetURL = resetURL(uc.cfg.AppURL, raw, m.TenantID)
	}
	return resp, nil
}

// ResetPassword cambia la contraseña y consume el token en una sola transacción.
// Token desconocido, de otro tenant, usado o vencido -> ErrInvalidToken.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) error {
	if err := validate.Struct(in); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := uc.now()
	return uc.txRunner.Run(ctx, func(tx repository.TxRepos) error {
		tok, err := tx.PasswordResets.FindByHash(ctx, in.TenantID, hashToken(in.Token))
		if err != nil {
			return err
		}
		if tok == nil || !tok.Usable(now) {
			return domain.ErrInvalidToken
		}
		if err := tx.Users.UpdatePassword(ctx, tok.UserID, string(hash)); err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return domain.ErrInvalidToken
			}
			return err
		}
		return tx.PasswordResets.MarkUsed(ctx, tok.ID, now)
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// newResetToken 32 bytes aleatorios en hexadecimal.
func newResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// hashToken solo se persiste el SHA-256 del token.
func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func resetURL(base, token, tenantID string) string {
	q := url.Values{}
	q.Set("token", token)
	q.Set("tenantId", tenantID)
	return strings.TrimRight(base, "/") + "/reset-password?" + q.Encode()
}
