package entity

import "time"

// Roles válidos para Membership.
const (
	RoleOwner = "OWNER"
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF" // rol por defecto
)

// User representa una persona que inicia sesión. Pertenece a tenants vía Membership.
type User struct {
	ID           string
	Name         string
	Email        string // único global
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Membership vincula un User a un Tenant con un rol.
type Membership struct {
	ID        string
	UserID    string
	TenantID  string
	Role      string
	CreatedAt time.Time
}

// CanManageTenant indica si el rol puede modificar datos del tenant (nombre, etc.).
func (m *Membership) CanManageTenant() bool {
	return m.Role == RoleOwner || m.Role == RoleAdmin
}
