package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación del puerto CustomerRepository sobre PostgreSQL.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador de persistencia para clientes.
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, tenant_id, name, phone, email, created_at, updated_at`

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO customers (`+customerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.TenantID, c.Name, nullIfEmpty(c.Phone), nullIfEmpty(c.Email), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por id + tenant.
func (r *CustomerRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Customer, error) {
	if !isUUID(id) {
		return nil, nil
	}
	row := r.q.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	c, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// Update actualiza nombre y datos de contacto.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) (bool, error) {
	if !isUUID(c.ID) {
		return false, nil
	}
	cmd, err := r.q.Exec(ctx, `
		UPDATE customers SET name = $3, phone = $4, email = $5, updated_at = $6
		WHERE id = $1 AND tenant_id = $2`,
		c.ID, c.TenantID, c.Name, nullIfEmpty(c.Phone), nullIfEmpty(c.Email), c.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("update customer: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// Delete elimina el cliente del tenant.
func (r *CustomerRepo) Delete(ctx context.Context, tenantID, id string) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return false, fmt.Errorf("delete customer: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// ListByTenant lista clientes, más recientes primero.
func (r *CustomerRepo) ListByTenant(ctx context.Context, tenantID string) ([]*entity.Customer, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE tenant_id = $1 ORDER BY created_at DESC`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	if err := row.Scan(&c.ID, &c.TenantID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
