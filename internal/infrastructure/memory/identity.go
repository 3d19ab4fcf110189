package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var (
	_ repository.TenantRepository        = (*TenantRepo)(nil)
	_ repository.UserRepository          = (*UserRepo)(nil)
	_ repository.MembershipRepository    = (*MembershipRepo)(nil)
	_ repository.PasswordResetRepository = (*PasswordResetRepo)(nil)
)

// TenantRepo tenants en memoria.
type TenantRepo struct{ a access }

func (r *TenantRepo) Create(_ context.Context, t *entity.Tenant) error {
	return r.a.write(func(st *state) error {
		st.tenants = append(st.tenants, *t)
		return nil
	})
}

func (r *TenantRepo) GetByID(_ context.Context, id string) (*entity.Tenant, error) {
	var out *entity.Tenant
	r.a.read(func(st *state) {
		for _, t := range st.tenants {
			if t.ID == id {
				out = &t
				return
			}
		}
	})
	return out, nil
}

func (r *TenantRepo) UpdateName(_ context.Context, id, name string) (*entity.Tenant, error) {
	var out *entity.Tenant
	err := r.a.write(func(st *state) error {
		for i := range st.tenants {
			if st.tenants[i].ID == id {
				st.tenants[i].Name = name
				st.tenants[i].UpdatedAt = time.Now()
				t := st.tenants[i]
				out = &t
				return nil
			}
		}
		return nil
	})
	return out, err
}

// UserRepo usuarios en memoria. El email es único sin distinguir mayúsculas.
type UserRepo struct{ a access }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.a.write(func(st *state) error {
		for _, existing := range st.users {
			if strings.EqualFold(existing.Email, u.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		cp := *u
		cp.Email = strings.ToLower(cp.Email)
		st.users = append(st.users, cp)
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.ID == id }), nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return strings.EqualFold(u.Email, email) }), nil
}

func (r *UserRepo) find(match func(entity.User) bool) *entity.User {
	var out *entity.User
	r.a.read(func(st *state) {
		for _, u := range st.users {
			if match(u) {
				out = &u
				return
			}
		}
	})
	return out
}

func (r *UserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	return r.a.write(func(st *state) error {
		for i := range st.users {
			if st.users[i].ID == id {
				st.users[i].PasswordHash = passwordHash
				st.users[i].UpdatedAt = time.Now()
				return nil
			}
		}
		return domain.ErrUserNotFound
	})
}

// MembershipRepo membresías en memoria. (user, tenant) es único.
type MembershipRepo struct{ a access }

func (r *MembershipRepo) Create(_ context.Context, m *entity.Membership) error {
	return r.a.write(func(st *state) error {
		for _, existing := range st.memberships {
			if existing.UserID == m.UserID && existing.TenantID == m.TenantID {
				return fmt.Errorf("membresía duplicada: %w", domain.ErrConflict)
			}
		}
		st.memberships = append(st.memberships, *m)
		return nil
	})
}

func (r *MembershipRepo) FirstByUser(_ context.Context, userID string) (*entity.Membership, error) {
	var out *entity.Membership
	r.a.read(func(st *state) {
		for _, m := range st.memberships {
			if m.UserID != userID {
				continue
			}
			if out == nil || m.CreatedAt.Before(out.CreatedAt) {
				out = &m
			}
		}
	})
	return out, nil
}

func (r *MembershipRepo) Get(_ context.Context, tenantID, userID string) (*entity.Membership, error) {
	var out *entity.Membership
	r.a.read(func(st *state) {
		for _, m := range st.memberships {
			if m.TenantID == tenantID && m.UserID == userID {
				out = &m
				return
			}
		}
	})
	return out, nil
}

// PasswordResetRepo tokens de recuperación en memoria.
type PasswordResetRepo struct{ a access }

func (r *PasswordResetRepo) Create(_ context.Context, t *entity.PasswordResetToken) error {
	return r.a.write(func(st *state) error {
		st.resets = append(st.resets, *t)
		return nil
	})
}

func (r *PasswordResetRepo) FindByHash(_ context.Context, tenantID, tokenHash string) (*entity.PasswordResetToken, error) {
	var out *entity.PasswordResetToken
	r.a.read(func(st *state) {
		for _, t := range st.resets {
			if t.TenantID == tenantID && t.TokenHash == tokenHash {
				out = &t
				return
			}
		}
	})
	return out, nil
}

func (r *PasswordResetRepo) MarkUsed(_ context.Context, id string, usedAt time.Time) error {
	return r.a.write(func(st *state) error {
		for i := range st.resets {
			if st.resets[i].ID == id && st.resets[i].UsedAt == nil {
				st.resets[i].UsedAt = &usedAt
				return nil
			}
		}
		return domain.ErrInvalidToken
	})
}
