package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.ReceivableRepository = (*ReceivableRepo)(nil)

// ReceivableRepo implementación de ReceivableRepository (usable con pool o tx).
type ReceivableRepo struct {
	q Querier
}

// NewReceivableRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReceivableRepository(q Querier) *ReceivableRepo {
	return &ReceivableRepo{q: q}
}

const receivableColumns = `id, tenant_id, sale_id, amount, due_date, status, paid_at, created_at`

// Create persiste una cuenta por cobrar.
func (r *ReceivableRepo) Create(ctx context.Context, rc *entity.Receivable) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO receivables (`+receivableColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rc.ID, rc.TenantID, rc.SaleID, rc.Amount, rc.DueDate, string(rc.Status), rc.PaidAt, rc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert receivable: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por cobrar por id + tenant; (nil, nil) si no existe.
func (r *ReceivableRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Receivable, error) {
	if !isUUID(id) {
		return nil, nil
	}
	row := r.q.QueryRow(ctx,
		`SELECT `+receivableColumns+` FROM receivables WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	rc, err := scanReceivable(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receivable: %w", err)
	}
	return rc, nil
}

// MarkPaid PENDING -> PAID. Si ya estaba pagada no cambia nada (paid_at conserva el primer pago).
func (r *ReceivableRepo) MarkPaid(ctx context.Context, tenantID, id string, paidAt time.Time) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	cmd, err := r.q.Exec(ctx, `
		UPDATE receivables SET status = 'PAID', paid_at = $3
		WHERE id = $1 AND tenant_id = $2 AND status = 'PENDING'`, id, tenantID, paidAt)
	if err != nil {
		return false, fmt.Errorf("mark receivable paid: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// List cuentas por cobrar del tenant según el filtro, con total y fecha de su venta.
func (r *ReceivableRepo) List(ctx context.Context, tenantID string, q repository.ReceivableQuery) ([]repository.ReceivableView, error) {
	where, args, order := receivableWhere(tenantID, q)
	query := `
		SELECT r.id, r.tenant_id, r.sale_id, r.amount, r.due_date, r.status, r.paid_at, r.created_at,
		       s.total, s.created_at
		FROM receivables r
		JOIN sales s ON s.id = r.sale_id
		` + where + ` ORDER BY ` + order
	if q.Limit > 0 {
		args = append(args, q.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list receivables: %w", err)
	}
	defer rows.Close()

	list := make([]repository.ReceivableView, 0)
	for rows.Next() {
		var v repository.ReceivableView
		var status string
		if err := rows.Scan(&v.ID, &v.TenantID, &v.SaleID, &v.Amount, &v.DueDate, &status, &v.PaidAt, &v.CreatedAt,
			&v.SaleTotal, &v.SaleCreatedAt); err != nil {
			return nil, fmt.Errorf("scan receivable: %w", err)
		}
		v.Status = entity.ReceivableStatus(status)
		list = append(list, v)
	}
	return list, rows.Err()
}

// Count cantidad de cuentas por cobrar que cumplen el filtro.
func (r *ReceivableRepo) Count(ctx context.Context, tenantID string, q repository.ReceivableQuery) (int, error) {
	where, args, _ := receivableWhere(tenantID, q)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM receivables r `+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count receivables: %w", err)
	}
	return n, nil
}

// receivableWhere traduce el filtro a condición, argumentos y orden.
func receivableWhere(tenantID string, q repository.ReceivableQuery) (string, []any, string) {
	switch q.Filter {
	case repository.ReceivablesOverdue:
		return `WHERE r.tenant_id = $1 AND r.status = 'PENDING' AND r.due_date < $2`,
			[]any{tenantID, q.Now}, `r.due_date ASC, r.id`
	case repository.ReceivablesUpcoming:
		return `WHERE r.tenant_id = $1 AND r.status = 'PENDING' AND r.due_date >= $2 AND r.due_date <= $3`,
			[]any{tenantID, q.Now, q.UpcomingUntil}, `r.due_date ASC, r.id`
	case repository.ReceivablesPaid:
		return `WHERE r.tenant_id = $1 AND r.status = 'PAID'`,
			[]any{tenantID}, `r.due_date DESC, r.id`
	default:
		return `WHERE r.tenant_id = $1`, []any{tenantID}, `r.due_date ASC, r.id`
	}
}

func scanReceivable(row pgx.Row) (*entity.Receivable, error) {
	var rc entity.Receivable
	var status string
	if err := row.Scan(&rc.ID, &rc.TenantID, &rc.SaleID, &rc.Amount, &rc.DueDate, &status, &rc.PaidAt, &rc.CreatedAt); err != nil {
		return nil, err
	}
	rc.Status = entity.ReceivableStatus(status)
	return &rc, nil
}
