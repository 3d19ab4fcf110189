package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// ProductRequest alta y edición de producto.
// En edición, un Stock distinto del actual se registra como ajuste en el libro de movimientos.
type ProductRequest struct {
	Name      string          `json:"name" validate:"required,min=2"`
	CostPrice decimal.Decimal `json:"costPrice" validate:"gte=0"`
	SalePrice decimal.Decimal `json:"salePrice" validate:"gte=0"`
	Stock     int             `json:"stock" validate:"gte=0,lte=2147483647"`
	MinStock  int             `json:"minStock" validate:"gte=0,lte=2147483647"`
}

// ListProductsQuery paginación y búsqueda por nombre.
type ListProductsQuery struct {
	Page     int    `query:"page" validate:"gte=1"`
	PageSize int    `query:"pageSize" validate:"gte=1,lte=100"`
	Search   string `query:"search" validate:"max=100"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	CostPrice decimal.Decimal `json:"costPrice"`
	SalePrice decimal.Decimal `json:"salePrice"`
	Stock     int             `json:"stock"`
	MinStock  int             `json:"minStock"`
	LowStock  bool            `json:"lowStock"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ProductPage listado paginado de inventario.
type ProductPage struct {
	Items      []ProductResponse `json:"items"`
	Pagination Pagination        `json:"pagination"`
}

// NewProductResponse mapea la entidad.
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		CostPrice: p.CostPrice,
		SalePrice: p.SalePrice,
		Stock:     p.Stock,
		MinStock:  p.MinStock,
		LowStock:  p.IsLowStock(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// NewProductResponses mapea una lista (nunca nil).
func NewProductResponses(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, NewProductResponse(p))
	}
	return out
}
