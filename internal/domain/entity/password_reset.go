package entity

import "time"

// PasswordResetToken token de recuperación de contraseña. Solo se guarda el hash SHA-256.
type PasswordResetToken struct {
	ID        string
	UserID    string
	TenantID  string
	TokenHash string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// Usable indica si el token no fue usado ni expiró.
func (t *PasswordResetToken) Usable(now time.Time) bool {
	return t.UsedAt == nil && now.Before(t.ExpiresAt)
}
