package xlsx

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

func TestExport_HojaFilasYResumen(t *testing.T) {
	products := []*entity.Product{
		{Name: "Arroz", CostPrice: decimal.NewFromInt(1500), SalePrice: decimal.NewFromInt(2000), Stock: 1000000, MinStock: 10},
		{Name: "Café", CostPrice: decimal.RequireFromString("12.5"), SalePrice: decimal.NewFromInt(20), Stock: 2, MinStock: 5},
	}

	data, err := NewInventoryExporter("es-CO").Export(context.Background(), products)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	name, _ := f.GetCellValue(SheetName, "A2")
	assert.Equal(t, "Arroz", name)
	low, _ := f.GetCellValue(SheetName, "F3")
	assert.Equal(t, "Sí", low)

	label, _ := f.GetCellValue(SheetName, "A6")
	assert.Equal(t, "Unidades en stock", label)
	units, _ := f.GetCellValue(SheetName, "B6")
	assert.Equal(t, "1.000.002", units, "separador de miles según el locale")
}

func TestExport_SinProductos(t *testing.T) {
	data, err := NewInventoryExporter("no-es-un-locale!!").Export(context.Background(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
