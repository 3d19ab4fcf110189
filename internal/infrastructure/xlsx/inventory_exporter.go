// Package xlsx genera planillas Excel con excelize.
package xlsx

import (
	"bytes"
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// SheetName nombre de la hoja exportada.
const SheetName = "Inventario"

var header = []any{"Producto", "Costo", "Precio de venta", "Stock", "Stock mínimo", "Stock bajo", "Valor al costo"}

// InventoryExporter exporta el catálogo a XLSX. Los totales del resumen se formatean según Locale.
type InventoryExporter struct {
	printer *message.Printer
}

// NewInventoryExporter construye el exportador para un locale BCP 47 (ej. "es-CO").
// Un locale inválido cae en español.
func NewInventoryExporter(locale string) *InventoryExporter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Spanish
	}
	return &InventoryExporter{printer: message.NewPrinter(tag)}
}

// Export escribe una fila por producto y al final un resumen con unidades y valorización.
func (e *InventoryExporter) Export(ctx context.Context, products []*entity.Product) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), SheetName); err != nil {
		return nil, fmt.Errorf("renombrar hoja: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("escribir encabezado: %w", err)
	}

	units := 0
	valuation := decimal.Zero
	row := 2
	for _, p := range products {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		value := p.CostPrice.Mul(decimal.NewFromInt(int64(p.Stock)))
		low := "No"
		if p.IsLowStock() {
			low = "Sí"
		}
		line := []any{
			p.Name,
			p.CostPrice.InexactFloat64(),
			p.SalePrice.InexactFloat64(),
			p.Stock,
			p.MinStock,
			low,
			value.InexactFloat64(),
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("celda: %w", err)
		}
		if err := f.SetSheetRow(SheetName, cell, &line); err != nil {
			return nil, fmt.Errorf("escribir fila: %w", err)
		}
		units += p.Stock
		valuation = valuation.Add(value)
		row++
	}

	summary := [][]any{
		{"Productos", e.printer.Sprintf("%d", len(products))},
		{"Unidades en stock", e.printer.Sprintf("%d", units)},
		{"Valor total al costo", e.printer.Sprintf("%.2f", valuation.InexactFloat64())},
	}
	row++
	for _, line := range summary {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("celda: %w", err)
		}
		if err := f.SetSheetRow(SheetName, cell, &line); err != nil {
			return nil, fmt.Errorf("escribir resumen: %w", err)
		}
		row++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("escribir xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
