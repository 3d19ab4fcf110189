// Package sales contiene las reglas puras de armado de una venta.
package sales

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// Line línea de una orden: producto y cantidad (> 0).
type Line struct {
	ProductID string
	Quantity  int
}

// MergeLines agrupa líneas del mismo producto sumando cantidades.
// El resultado va ordenado por ProductID: así dos ventas concurrentes bloquean filas en el mismo orden.
// Cada cantidad, y la suma por producto, debe estar en (0, entity.MaxStock].
func MergeLines(lines []Line) ([]Line, error) {
	byID := make(map[string]int, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 || l.Quantity > entity.MaxStock {
			return nil, domain.NewValidationError("items", "cantidad fuera de rango")
		}
		if l.Quantity > entity.MaxStock-byID[l.ProductID] {
			return nil, domain.NewValidationError("items", "la cantidad total de un producto supera el máximo permitido")
		}
		byID[l.ProductID] += l.Quantity
	}
	merged := make([]Line, 0, len(byID))
	for id, qty := range byID {
		merged = append(merged, Line{ProductID: id, Quantity: qty})
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].ProductID < merged[j].ProductID })
	return merged, nil
}

// ProductIDs devuelve los IDs distintos de las líneas.
func ProductIDs(merged []Line) []string {
	ids := make([]string, len(merged))
	for i, l := range merged {
		ids[i] = l.ProductID
	}
	return ids
}

// CheckAvailability verifica que todos los productos existan y tengan stock suficiente
// para la cantidad agrupada. No modifica nada.
func CheckAvailability(merged []Line, products map[string]*entity.Product) error {
	for _, l := range merged {
		if _, ok := products[l.ProductID]; !ok {
			return domain.ErrProductNotFound
		}
	}
	for _, l := range merged {
		if l.Quantity <= 0 {
			return domain.NewValidationError("items", "cantidad fuera de rango")
		}
		if products[l.ProductID].Stock < l.Quantity {
			return domain.ErrInsufficientStock
		}
	}
	return nil
}

// Total suma precio de venta × cantidad por cada línea original (sin agrupar):
// cada línea se cotiza por separado al precio vigente del producto.
func Total(lines []Line, products map[string]*entity.Product) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		p, ok := products[l.ProductID]
		if !ok {
			continue
		}
		total = total.Add(p.SalePrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// BuildItems crea un SaleItem por línea original con la foto de precio y costo del producto.
func BuildItems(tenantID, saleID string, lines []Line, products map[string]*entity.Product, newID func() string) []entity.SaleItem {
	items := make([]entity.SaleItem, 0, len(lines))
	for i, l := range lines {
		p := products[l.ProductID]
		items = append(items, entity.SaleItem{
			ID:        newID(),
			TenantID:  tenantID,
			SaleID:    saleID,
			ProductID: l.ProductID,
			Position:  i,
			Quantity:  l.Quantity,
			UnitPrice: p.SalePrice,
			UnitCost:  p.CostPrice,
		})
	}
	return items
}

// MovementReason referencia la venta en el motivo del movimiento de stock.
func MovementReason(saleID string) string {
	return "SALE:" + saleID
}
