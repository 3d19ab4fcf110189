package entity

import "time"

// Tenant representa una organización aislada: todos los datos de negocio cuelgan de su ID.
type Tenant struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
