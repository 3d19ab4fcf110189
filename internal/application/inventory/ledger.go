package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	domaininv "github.com/jhoicas/backoffice-api/internal/domain/inventory"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// Ledger aplica un movimiento al stock de un producto y lo registra en el libro,
// siempre dentro de la transacción recibida. Ningún otro camino modifica Product.Stock
// salvo el decremento agrupado de una venta, que también deja su movimiento.
type Ledger struct {
	now   func() time.Time
	newID func() string
}

// NewLedger construye el libro con reloj y generador de IDs.
func NewLedger(now func() time.Time, newID func() string) *Ledger {
	return &Ledger{now: now, newID: newID}
}

// Record bloquea el producto, calcula el nuevo stock según la variante y escribe stock + movimiento.
// Devuelve el movimiento creado y el stock resultante.
func (l *Ledger) Record(ctx context.Context, tx repository.TxRepos, tenantID, productID string, mv domaininv.Movement, reason *string) (*entity.StockMovement, int, error) {
	product, err := tx.Products.GetForUpdate(ctx, tenantID, productID)
	if err != nil {
		return nil, 0, err
	}
	if product == nil {
		return nil, 0, domain.ErrProductNotFound
	}

	_, delta, err := mv.Apply(product.Stock)
	if err != nil {
		return nil, 0, err
	}

	stock, ok, err := tx.Products.ApplyStockDelta(ctx, tenantID, productID, delta)
	if err != nil {
		return nil, 0, err
	}
	if !ok {
		return nil, 0, domain.ErrInsufficientStock
	}

	movement := &entity.StockMovement{
		ID:        l.newID(),
		TenantID:  tenantID,
		ProductID: productID,
		Type:      mv.Type(),
		Quantity:  delta,
		Reason:    normalizeReason(reason),
		CreatedAt: l.now(),
	}
	if err := tx.Movements.Create(ctx, movement); err != nil {
		return nil, 0, fmt.Errorf("registrar movimiento: %w", err)
	}
	return movement, stock, nil
}

func normalizeReason(reason *string) *string {
	if reason == nil {
		return nil
	}
	r := strings.TrimSpace(*reason)
	if r == "" {
		return nil
	}
	return &r
}
