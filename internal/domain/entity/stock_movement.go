package entity

import "time"

// MovementType tipo de movimiento de stock.
type MovementType string

// Tipos de movimiento de stock.
const (
	MovementIn     MovementType = "IN"     // entrada
	MovementOut    MovementType = "OUT"    // salida (manual o por venta)
	MovementAdjust MovementType = "ADJUST" // ajuste a un conteo objetivo
)

// Valid indica si el tipo es uno de los tres conocidos.
func (t MovementType) Valid() bool {
	switch t {
	case MovementIn, MovementOut, MovementAdjust:
		return true
	}
	return false
}

// StockMovement es una entrada inmutable del libro de stock.
// Quantity es el delta aplicado: positivo aumenta, negativo disminuye (también en ADJUST).
type StockMovement struct {
	ID        string
	TenantID  string
	ProductID string
	Type      MovementType
	Quantity  int
	Reason    *string
	CreatedAt time.Time
}
