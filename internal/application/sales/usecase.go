package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	domainsales "github.com/jhoicas/backoffice-api/internal/domain/sales"
	"github.com/jhoicas/backoffice-api/internal/domain/tenancy"
	"github.com/jhoicas/backoffice-api/pkg/metrics"
	"github.com/jhoicas/backoffice-api/pkg/validate"
)

// SaleUseCase coordina la creación atómica de ventas y su listado.
type SaleUseCase struct {
	txRunner repository.TxRunner
	sales    repository.SaleRepository
	metrics  *metrics.Metrics
	now      func() time.Time
	newID    func() string
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(txRunner repository.TxRunner, sales repository.SaleRepository, m *metrics.Metrics) *SaleUseCase {
	return &SaleUseCase{
		txRunner: txRunner,
		sales:    sales,
		metrics:  m,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// CreateSale registra la venta, sus ítems, el descuento de stock, los movimientos OUT y, si es a
// crédito, la cuenta por cobrar. Todo en una transacción: ante cualquier error no queda nada escrito.
func (uc *SaleUseCase) CreateSale(ctx context.Context, scope tenancy.Scope, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if err := validate.Struct(in); err != nil {
		uc.metrics.SaleRejected("validation")
		return nil, err
	}
	now := uc.now()
	paymentType := entity.PaymentType(in.PaymentType)
	if paymentType == entity.PaymentCredit && in.DueDate.Before(startOfDay(now)) {
		uc.metrics.SaleRejected("validation")
		return nil, domain.NewValidationError("dueDate", "no puede estar en el pasado")
	}

	lines := make([]domainsales.Line, len(in.Items))
	for i, it := range in.Items {
		lines[i] = domainsales.Line{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	merged, err := domainsales.MergeLines(lines)
	if err != nil {
		uc.metrics.SaleRejected("validation")
		return nil, err
	}

	var saleID string
	err = uc.txRunner.Run(ctx, func(tx repository.TxRepos) error {
		list, err := tx.Products.GetByIDs(ctx, scope.TenantID, domainsales.ProductIDs(merged))
		if err != nil {
			return err
		}
		products := make(map[string]*entity.Product, len(list))
		for _, p := range list {
			products[p.ID] = p
		}
		if err := domainsales.CheckAvailability(merged, products); err != nil {
			return err
		}

		sale := &entity.Sale{
			ID:          uc.newID(),
			TenantID:    scope.TenantID,
			Total:       domainsales.Total(lines, products),
			PaymentType: paymentType,
			CreatedAt:   now,
		}
		if err := tx.Sales.Create(ctx, sale); err != nil {
			return err
		}
		items := domainsales.BuildItems(scope.TenantID, sale.ID, lines, products, uc.newID)
		if err := tx.Sales.CreateItems(ctx, items); err != nil {
			return err
		}

		reason := domainsales.MovementReason(sale.ID)
		for _, l := range merged {
			_, ok, err := tx.Products.ApplyStockDelta(ctx, scope.TenantID, l.ProductID, -l.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrInsufficientStock
			}
			if err := tx.Movements.Create(ctx, &entity.StockMovement{
				ID:        uc.newID(),
				TenantID:  scope.TenantID,
				ProductID: l.ProductID,
				Type:      entity.MovementOut,
				Quantity:  -l.Quantity,
				Reason:    &reason,
				CreatedAt: now,
			}); err != nil {
				return err
			}
		}

		if paymentType == entity.PaymentCredit {
			if err := tx.Receivables.Create(ctx, &entity.Receivable{
				ID:        uc.newID(),
				TenantID:  scope.TenantID,
				SaleID:    sale.ID,
				Amount:    sale.Total,
				DueDate:   *in.DueDate,
				Status:    entity.ReceivablePending,
				CreatedAt: now,
			}); err != nil {
				return err
			}
		}
		saleID = sale.ID
		return nil
	})
	if err != nil {
		uc.metrics.SaleRejected(rejectReason(err))
		return nil, err
	}
	uc.metrics.SaleCreated(string(paymentType))

	sale, err := uc.sales.GetByID(ctx, scope.TenantID, saleID)
	if err != nil {
		return nil, fmt.Errorf("leer venta creada: %w", err)
	}
	if sale == nil {
		return nil, fmt.Errorf("venta %s no encontrada tras crearla", saleID)
	}
	resp := dto.NewSaleResponse(sale, uc.now())
	return &resp, nil
}

// List ventas del tenant, más recientes primero, con ítems y cuentas por cobrar.
func (uc *SaleUseCase) List(ctx context.Context, scope tenancy.Scope) ([]dto.SaleResponse, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	list, err := uc.sales.ListByTenant(ctx, scope.TenantID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.NewSaleResponse(s, now))
	}
	return out, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrNotFound):
		return "product_not_found"
	default:
		return "error"
	}
}
