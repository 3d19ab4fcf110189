package sales

import (
	"math"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

func products() map[string]*entity.Product {
	return map[string]*entity.Product{
		"a": {ID: "a", Stock: 10, SalePrice: decimal.NewFromInt(5), CostPrice: decimal.NewFromInt(2)},
		"b": {ID: "b", Stock: 1, SalePrice: decimal.RequireFromString("2.50"), CostPrice: decimal.NewFromInt(1)},
	}
}

func TestMergeLines(t *testing.T) {
	merged, err := MergeLines([]Line{{"b", 1}, {"a", 2}, {"a", 3}})
	require.NoError(t, err)
	assert.Equal(t, []Line{{"a", 5}, {"b", 1}}, merged)
	assert.Equal(t, []string{"a", "b"}, ProductIDs(merged))
}

func TestMergeLines_CantidadesFueraDeRango(t *testing.T) {
	tests := []struct {
		name  string
		lines []Line
	}{
		{"suma que desborda int", []Line{{"a", math.MaxInt}, {"a", math.MaxInt}}},
		{"suma sobre el máximo", []Line{{"a", entity.MaxStock}, {"a", 1}}},
		{"línea sobre el máximo", []Line{{"a", entity.MaxStock + 1}}},
		{"cantidad cero", []Line{{"a", 0}}},
		{"cantidad negativa", []Line{{"a", -3}, {"a", 5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged, err := MergeLines(tt.lines)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Nil(t, merged)
		})
	}

	merged, err := MergeLines([]Line{{"a", entity.MaxStock - 1}, {"a", 1}})
	require.NoError(t, err)
	assert.Equal(t, entity.MaxStock, merged[0].Quantity, "el máximo exacto se acepta")
}

func TestCheckAvailability(t *testing.T) {
	p := products()

	assert.NoError(t, CheckAvailability([]Line{{"a", 10}, {"b", 1}}, p))
	assert.ErrorIs(t, CheckAvailability([]Line{{"a", 11}}, p), domain.ErrInsufficientStock)
	assert.ErrorIs(t, CheckAvailability([]Line{{"a", 1}, {"zz", 1}}, p), domain.ErrProductNotFound)
	// Un faltante tiene prioridad sobre el stock insuficiente.
	assert.ErrorIs(t, CheckAvailability([]Line{{"a", 99}, {"zz", 1}}, p), domain.ErrProductNotFound)
	assert.ErrorIs(t, CheckAvailability([]Line{{"a", -2}}, p), domain.ErrInvalidInput)
}

func TestTotal_CotizaLineasOriginales(t *testing.T) {
	p := products()
	total := Total([]Line{{"a", 1}, {"a", 2}, {"b", 1}}, p)
	assert.True(t, decimal.RequireFromString("17.50").Equal(total), total.String())
}

func TestBuildItems_FotoDePrecios(t *testing.T) {
	p := products()
	n := 0
	newID := func() string { n++; return "item-" + strconv.Itoa(n) }

	items := BuildItems("t1", "s1", []Line{{"a", 1}, {"a", 2}}, p, newID)
	require.Len(t, items, 2)
	assert.Equal(t, "item-1", items[0].ID)
	assert.Equal(t, 1, items[1].Position)
	assert.True(t, items[1].UnitPrice.Equal(decimal.NewFromInt(5)))
	assert.True(t, items[1].UnitCost.Equal(decimal.NewFromInt(2)))

	// Cambiar el precio del producto no altera la línea ya construida.
	p["a"].SalePrice = decimal.NewFromInt(100)
	assert.True(t, items[0].UnitPrice.Equal(decimal.NewFromInt(5)))
}

func TestMovementReason(t *testing.T) {
	assert.Equal(t, "SALE:abc", MovementReason("abc"))
}
