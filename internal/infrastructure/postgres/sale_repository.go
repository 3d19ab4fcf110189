package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de la venta.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (id, tenant_id, total, payment_type, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.TenantID, s.Total, string(s.PaymentType), s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItems persiste las líneas en un solo round-trip (pgx.Batch).
func (r *SaleRepo) CreateItems(ctx context.Context, items []entity.SaleItem) error {
	if len(items) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(`
			INSERT INTO sale_items (id, tenant_id, sale_id, product_id, position, quantity, unit_price, unit_cost)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			it.ID, it.TenantID, it.SaleID, it.ProductID, it.Position, it.Quantity, it.UnitPrice, it.UnitCost,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	defer func() { _ = br.Close() }()
	for range items {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la venta con ítems y cuentas por cobrar; (nil, nil) si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Sale, error) {
	if !isUUID(id) {
		return nil, nil
	}
	var s entity.Sale
	var pt string
	err := r.q.QueryRow(ctx, `
		SELECT id, tenant_id, total, payment_type, created_at
		FROM sales WHERE id = $1 AND tenant_id = $2`, id, tenantID,
	).Scan(&s.ID, &s.TenantID, &s.Total, &pt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	s.PaymentType = entity.PaymentType(pt)
	sales := []*entity.Sale{&s}
	if err := r.attachDetails(ctx, tenantID, sales); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByTenant ventas del tenant, más recientes primero, con ítems y cuentas por cobrar.
func (r *SaleRepo) ListByTenant(ctx context.Context, tenantID string) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, tenant_id, total, payment_type, created_at
		FROM sales WHERE tenant_id = $1
		ORDER BY created_at DESC, id`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	sales := make([]*entity.Sale, 0)
	for rows.Next() {
		var s entity.Sale
		var pt string
		if err := rows.Scan(&s.ID, &s.TenantID, &s.Total, &pt, &s.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		s.PaymentType = entity.PaymentType(pt)
		sales = append(sales, &s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	if err := r.attachDetails(ctx, tenantID, sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// attachDetails carga ítems (por posición) y cuentas por cobrar de las ventas dadas.
func (r *SaleRepo) attachDetails(ctx context.Context, tenantID string, sales []*entity.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	ids := make([]string, len(sales))
	byID := make(map[string]*entity.Sale, len(sales))
	for i, s := range sales {
		ids[i] = s.ID
		byID[s.ID] = s
		s.Items = []entity.SaleItem{}
		s.Receivables = []entity.Receivable{}
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, tenant_id, sale_id, product_id, position, quantity, unit_price, unit_cost
		FROM sale_items
		WHERE tenant_id = $1 AND sale_id = ANY($2::uuid[])
		ORDER BY sale_id, position`, tenantID, ids)
	if err != nil {
		return fmt.Errorf("list sale items: %w", err)
	}
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.TenantID, &it.SaleID, &it.ProductID, &it.Position, &it.Quantity, &it.UnitPrice, &it.UnitCost); err != nil {
			rows.Close()
			return fmt.Errorf("scan sale item: %w", err)
		}
		byID[it.SaleID].Items = append(byID[it.SaleID].Items, it)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("list sale items: %w", err)
	}

	rows, err = r.q.Query(ctx, `
		SELECT `+receivableColumns+`
		FROM receivables
		WHERE tenant_id = $1 AND sale_id = ANY($2::uuid[])
		ORDER BY due_date`, tenantID, ids)
	if err != nil {
		return fmt.Errorf("list sale receivables: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		rc, err := scanReceivable(rows)
		if err != nil {
			return fmt.Errorf("scan receivable: %w", err)
		}
		byID[rc.SaleID].Receivables = append(byID[rc.SaleID].Receivables, *rc)
	}
	return rows.Err()
}
