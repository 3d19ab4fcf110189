// Package tenancy define el contexto de tenant que recibe cada caso de uso.
package tenancy

import "github.com/jhoicas/backoffice-api/internal/domain"

// Scope identifica quién opera y sobre qué tenant. Se construye en el borde HTTP
// a partir del token y viaja como parámetro explícito; nunca como estado global.
type Scope struct {
	UserID   string
	TenantID string
	Role     string
}

// Validate exige tenant y usuario.
func (s Scope) Validate() error {
	if s.TenantID == "" || s.UserID == "" {
		return domain.ErrUnauthorized
	}
	return nil
}
