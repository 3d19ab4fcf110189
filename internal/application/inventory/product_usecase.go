package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	domaininv "github.com/jhoicas/backoffice-api/internal/domain/inventory"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/internal/domain/tenancy"
	"github.com/jhoicas/backoffice-api/pkg/metrics"
	"github.com/jhoicas/backoffice-api/pkg/validate"
)

// ReasonProductEdit motivo del ajuste que deja una edición de producto que cambia el stock.
const ReasonProductEdit = "PRODUCT_EDIT"

// Valores por defecto del listado paginado.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// ProductUseCase catálogo de productos del tenant.
type ProductUseCase struct {
	txRunner repository.TxRunner
	products repository.ProductRepository
	ledger   *Ledger
	metrics  *metrics.Metrics
	now      func() time.Time
	newID    func() string
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner repository.TxRunner, products repository.ProductRepository, m *metrics.Metrics) *ProductUseCase {
	return &ProductUseCase{
		txRunner: txRunner,
		products: products,
		ledger:   NewLedger(time.Now, uuid.NewString),
		metrics:  m,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Create alta de producto con su stock inicial.
func (uc *ProductUseCase) Create(ctx context.Context, scope tenancy.Scope, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	now := uc.now()
	p := &entity.Product{
		ID:        uc.newID(),
		TenantID:  scope.TenantID,
		Name:      strings.TrimSpace(in.Name),
		CostPrice: in.CostPrice,
		SalePrice: in.SalePrice,
		Stock:     in.Stock,
		MinStock:  in.MinStock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.products.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := dto.NewProductResponse(p)
	return &resp, nil
}

// Update edita nombre, precios y mínimo. Si el stock pedido difiere del actual, la diferencia
// entra como ADJUST (motivo PRODUCT_EDIT) en la misma transacción.
func (uc *ProductUseCase) Update(ctx context.Context, scope tenancy.Scope, id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	var updated *entity.Product
	adjusted := false
	err := uc.txRunner.Run(ctx, func(tx repository.TxRepos) error {
		current, err := tx.Products.GetForUpdate(ctx, scope.TenantID, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrProductNotFound
		}

		current.Name = strings.TrimSpace(in.Name)
		current.CostPrice = in.CostPrice
		current.SalePrice = in.SalePrice
		current.MinStock = in.MinStock
		current.UpdatedAt = uc.now()
		if _, err := tx.Products.UpdateDetails(ctx, current); err != nil {
			return err
		}

		if in.Stock != current.Stock {
			reason := ReasonProductEdit
			if _, _, err := uc.ledger.Record(ctx, tx, scope.TenantID, id, domaininv.Adjustment{TargetStock: in.Stock}, &reason); err != nil {
				return err
			}
			adjusted = true
		}

		updated, err = tx.Products.GetByID(ctx, scope.TenantID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if adjusted {
		uc.metrics.StockMovement(string(entity.MovementAdjust))
	}
	resp := dto.NewProductResponse(updated)
	return &resp, nil
}

// Delete elimina el producto del tenant. Con ventas asociadas devuelve ErrProductInUse.
func (uc *ProductUseCase) Delete(ctx context.Context, scope tenancy.Scope, id string) error {
	if err := scope.Validate(); err != nil {
		return err
	}
	found, err := uc.products.Delete(ctx, scope.TenantID, id)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrProductNotFound
	}
	return nil
}

// List página de inventario con búsqueda por nombre. Page/PageSize en cero toman los valores por defecto.
func (uc *ProductUseCase) List(ctx context.Context, scope tenancy.Scope, q dto.ListProductsQuery) (*dto.ProductPage, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if q.Page == 0 {
		q.Page = DefaultPage
	}
	if q.PageSize == 0 {
		q.PageSize = DefaultPageSize
	}
	q.Search = strings.TrimSpace(q.Search)
	if err := validate.Struct(q); err != nil {
		return nil, err
	}

	list, total, err := uc.products.List(ctx, scope.TenantID, repository.ProductFilter{
		Search: q.Search,
		Limit:  q.PageSize,
		Offset: (q.Page - 1) * q.PageSize,
	})
	if err != nil {
		return nil, err
	}
	return &dto.ProductPage{
		Items:      dto.NewProductResponses(list),
		Pagination: dto.NewPagination(q.Page, q.PageSize, total),
	}, nil
}

// LowStock productos con stock por debajo del mínimo, los más críticos primero.
func (uc *ProductUseCase) LowStock(ctx context.Context, scope tenancy.Scope) ([]dto.ProductResponse, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	list, err := uc.products.ListLowStock(ctx, scope.TenantID, 0)
	if err != nil {
		return nil, err
	}
	return dto.NewProductResponses(list), nil
}
