package entity

import "time"

// Customer representa un cliente del tenant. No se vincula a ventas.
type Customer struct {
	ID        string
	TenantID  string
	Name      string
	Phone     *string
	Email     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
