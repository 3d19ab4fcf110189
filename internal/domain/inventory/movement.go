// Package inventory contiene las reglas puras del libro de stock.
package inventory

import (
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// Movement es una variante cerrada: Inbound, Outbound o Adjustment.
// Cada variante lleva solo los campos que necesita.
type Movement interface {
	Type() entity.MovementType
	// Apply calcula el stock resultante y el delta a registrar a partir del stock actual.
	Apply(current int) (newStock, delta int, err error)
	isMovement()
}

// Inbound suma Quantity al stock.
type Inbound struct{ Quantity int }

// Outbound resta Quantity; falla si no hay stock suficiente.
type Outbound struct{ Quantity int }

// Adjustment fija el stock en TargetStock; el delta puede ser cero, positivo o negativo.
type Adjustment struct{ TargetStock int }

func (Inbound) Type() entity.MovementType    { return entity.MovementIn }
func (Outbound) Type() entity.MovementType   { return entity.MovementOut }
func (Adjustment) Type() entity.MovementType { return entity.MovementAdjust }

func (Inbound) isMovement()    {}
func (Outbound) isMovement()   {}
func (Adjustment) isMovement() {}

func (m Inbound) Apply(current int) (int, int, error) {
	if m.Quantity <= 0 {
		return current, 0, domain.NewValidationError("quantity", "debe ser mayor que cero")
	}
	if m.Quantity > entity.MaxStock-current {
		return current, 0, domain.NewValidationError("quantity", "el stock resultante supera el máximo permitido")
	}
	return current + m.Quantity, m.Quantity, nil
}

func (m Outbound) Apply(current int) (int, int, error) {
	if m.Quantity <= 0 {
		return current, 0, domain.NewValidationError("quantity", "debe ser mayor que cero")
	}
	if m.Quantity > current {
		return current, 0, domain.ErrInsufficientStock
	}
	return current - m.Quantity, -m.Quantity, nil
}

func (m Adjustment) Apply(current int) (int, int, error) {
	if m.TargetStock < 0 {
		return current, 0, domain.NewValidationError("targetStock", "no puede ser negativo")
	}
	if m.TargetStock > entity.MaxStock {
		return current, 0, domain.NewValidationError("targetStock", "supera el máximo permitido")
	}
	return m.TargetStock, m.TargetStock - current, nil
}

// NewMovement construye la variante a partir de la entrada cruda de un request.
// IN/OUT exigen quantity > 0; ADJUST exige targetStock >= 0 e ignora quantity.
func NewMovement(t entity.MovementType, quantity, targetStock *int) (Movement, error) {
	switch t {
	case entity.MovementIn, entity.MovementOut:
		if quantity == nil {
			return nil, domain.NewValidationError("quantity", "es obligatoria para entrada/salida")
		}
		if *quantity <= 0 {
			return nil, domain.NewValidationError("quantity", "debe ser mayor que cero")
		}
		if *quantity > entity.MaxStock {
			return nil, domain.NewValidationError("quantity", "supera el máximo permitido")
		}
		if t == entity.MovementIn {
			return Inbound{Quantity: *quantity}, nil
		}
		return Outbound{Quantity: *quantity}, nil
	case entity.MovementAdjust:
		if targetStock == nil {
			return nil, domain.NewValidationError("targetStock", "es obligatorio para ajuste")
		}
		if *targetStock < 0 {
			return nil, domain.NewValidationError("targetStock", "no puede ser negativo")
		}
		if *targetStock > entity.MaxStock {
			return nil, domain.NewValidationError("targetStock", "supera el máximo permitido")
		}
		return Adjustment{TargetStock: *targetStock}, nil
	}
	return nil, domain.NewValidationError("type", "debe ser IN, OUT o ADJUST")
}
