package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

func intPtr(v int) *int { return &v }

func TestApply(t *testing.T) {
	tests := []struct {
		name      string
		mov       Movement
		current   int
		wantStock int
		wantDelta int
		wantErr   error
	}{
		{"entrada", Inbound{Quantity: 5}, 10, 15, 5, nil},
		{"salida", Outbound{Quantity: 3}, 10, 7, -3, nil},
		{"salida exacta", Outbound{Quantity: 10}, 10, 0, -10, nil},
		{"salida sin stock", Outbound{Quantity: 11}, 10, 10, 0, domain.ErrInsufficientStock},
		{"ajuste a la baja", Adjustment{TargetStock: 4}, 10, 4, -6, nil},
		{"ajuste al alza", Adjustment{TargetStock: 12}, 10, 12, 2, nil},
		{"ajuste sin cambio", Adjustment{TargetStock: 10}, 10, 10, 0, nil},
		{"ajuste negativo", Adjustment{TargetStock: -1}, 10, 10, 0, domain.ErrInvalidInput},
		{"entrada cero", Inbound{Quantity: 0}, 10, 10, 0, domain.ErrInvalidInput},
		{"entrada hasta el máximo", Inbound{Quantity: 5}, entity.MaxStock - 5, entity.MaxStock, 5, nil},
		{"entrada sobre el máximo", Inbound{Quantity: 6}, entity.MaxStock - 5, entity.MaxStock - 5, 0, domain.ErrInvalidInput},
		{"ajuste sobre el máximo", Adjustment{TargetStock: entity.MaxStock + 1}, 10, 10, 0, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stock, delta, err := tt.mov.Apply(tt.current)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStock, stock)
			assert.Equal(t, tt.wantDelta, delta)
			assert.Equal(t, tt.current+delta, stock, "el delta registrado explica el nuevo stock")
		})
	}
}

func TestNewMovement(t *testing.T) {
	m, err := NewMovement(entity.MovementIn, intPtr(2), nil)
	require.NoError(t, err)
	assert.Equal(t, Inbound{Quantity: 2}, m)

	m, err = NewMovement(entity.MovementAdjust, intPtr(99), intPtr(4))
	require.NoError(t, err)
	assert.Equal(t, Adjustment{TargetStock: 4}, m, "ADJUST ignora quantity")

	_, err = NewMovement(entity.MovementOut, nil, intPtr(3))
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "quantity")

	_, err = NewMovement(entity.MovementAdjust, intPtr(1), nil)
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "targetStock")

	_, err = NewMovement(entity.MovementIn, intPtr(entity.MaxStock+1), nil)
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "quantity")

	_, err = NewMovement(entity.MovementAdjust, nil, intPtr(entity.MaxStock+1))
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "targetStock")

	_, err = NewMovement("TRANSFER", intPtr(1), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
