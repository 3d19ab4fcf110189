package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos de stock sobre PostgreSQL (solo INSERT y SELECT).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create registra un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_movements (id, tenant_id, product_id, type, quantity, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.TenantID, m.ProductID, string(m.Type), m.Quantity, nullIfEmpty(m.Reason), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListRecent últimos movimientos del tenant con el nombre del producto.
func (r *StockMovementRepo) ListRecent(ctx context.Context, tenantID string, limit int) ([]repository.MovementView, error) {
	rows, err := r.q.Query(ctx, `
		SELECT m.id, m.tenant_id, m.product_id, m.type, m.quantity, m.reason, m.created_at, p.name
		FROM stock_movements m
		JOIN products p ON p.id = m.product_id
		WHERE m.tenant_id = $1
		ORDER BY m.created_at DESC, m.id
		LIMIT $2`, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent movements: %w", err)
	}
	defer rows.Close()

	list := make([]repository.MovementView, 0)
	for rows.Next() {
		var v repository.MovementView
		var typ string
		if err := rows.Scan(&v.ID, &v.TenantID, &v.ProductID, &typ, &v.Quantity, &v.Reason, &v.CreatedAt, &v.ProductName); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		v.Type = entity.MovementType(typ)
		list = append(list, v)
	}
	return list, rows.Err()
}

// ListByProduct movimientos de un producto en orden cronológico.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, tenantID, productID string) ([]*entity.StockMovement, error) {
	if !isUUID(productID) {
		return []*entity.StockMovement{}, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, tenant_id, product_id, type, quantity, reason, created_at
		FROM stock_movements
		WHERE tenant_id = $1 AND product_id = $2
		ORDER BY created_at ASC, id`, tenantID, productID)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	defer rows.Close()
	list := make([]*entity.StockMovement, 0)
	for rows.Next() {
		var m entity.StockMovement
		var typ string
		if err := rows.Scan(&m.ID, &m.TenantID, &m.ProductID, &typ, &m.Quantity, &m.Reason, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Type = entity.MovementType(typ)
		list = append(list, &m)
	}
	return list, rows.Err()
}
