package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// MaxStock tope de stock y de cantidad por operación: el rango de la columna INTEGER.
const MaxStock = math.MaxInt32

// Product representa un producto del inventario de un tenant.
// Stock es un contador entero que nunca puede quedar negativo; solo cambia vía el libro de movimientos.
type Product struct {
	ID        string
	TenantID  string
	Name      string
	CostPrice decimal.Decimal
	SalePrice decimal.Decimal
	Stock     int
	MinStock  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsLowStock indica stock por debajo del mínimo configurado.
func (p *Product) IsLowStock() bool {
	return p.Stock < p.MinStock
}
