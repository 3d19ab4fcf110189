package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, tenant_id, name, cost_price, sale_price, stock, min_stock, created_at, updated_at`

// Create persiste un nuevo producto con su stock inicial.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.TenantID, p.Name, p.CostPrice, p.SalePrice, p.Stock, p.MinStock, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por id + tenant; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Product, error) {
	return r.getOne(ctx, tenantID, id, "")
}

// GetForUpdate igual que GetByID pero bloquea la fila (SELECT ... FOR UPDATE). Solo dentro de una tx.
func (r *ProductRepo) GetForUpdate(ctx context.Context, tenantID, id string) (*entity.Product, error) {
	return r.getOne(ctx, tenantID, id, " FOR UPDATE")
}

func (r *ProductRepo) getOne(ctx context.Context, tenantID, id, suffix string) (*entity.Product, error) {
	if !isUUID(id) {
		return nil, nil
	}
	row := r.q.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1 AND tenant_id = $2`+suffix, id, tenantID)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByIDs obtiene los productos del tenant cuyos ids están en la lista. Los que no existen se omiten.
func (r *ProductRepo) GetByIDs(ctx context.Context, tenantID string, ids []string) ([]*entity.Product, error) {
	valid := onlyUUIDs(ids)
	if len(valid) == 0 {
		return []*entity.Product{}, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE tenant_id = $1 AND id = ANY($2::uuid[]) ORDER BY id`,
		tenantID, valid)
	if err != nil {
		return nil, fmt.Errorf("get products by ids: %w", err)
	}
	return collectProducts(rows)
}

// UpdateDetails actualiza nombre, precios y stock mínimo. El stock se cambia solo con ApplyStockDelta.
func (r *ProductRepo) UpdateDetails(ctx context.Context, p *entity.Product) (bool, error) {
	if !isUUID(p.ID) {
		return false, nil
	}
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET name = $3, cost_price = $4, sale_price = $5, min_stock = $6, updated_at = $7
		WHERE id = $1 AND tenant_id = $2`,
		p.ID, p.TenantID, p.Name, p.CostPrice, p.SalePrice, p.MinStock, p.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("update product: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// ApplyStockDelta suma delta al stock solo si el resultado no queda negativo.
// Bajo READ COMMITTED, una fila modificada por otra transacción se re-evalúa tras su commit,
// así que la condición se verifica contra el valor vigente al momento de escribir.
func (r *ProductRepo) ApplyStockDelta(ctx context.Context, tenantID, id string, delta int) (int, bool, error) {
	if !isUUID(id) {
		return 0, false, nil
	}
	var stock int
	err := r.q.QueryRow(ctx, `
		UPDATE products SET stock = stock + $3, updated_at = now()
		WHERE id = $1 AND tenant_id = $2 AND stock + $3 >= 0
		RETURNING stock`, id, tenantID, delta,
	).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("apply stock delta: %w", err)
	}
	return stock, true, nil
}

// Delete elimina el producto (y sus movimientos, en cascada). Con ventas asociadas -> ErrProductInUse.
func (r *ProductRepo) Delete(ctx context.Context, tenantID, id string) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, domain.ErrProductInUse
		}
		return false, fmt.Errorf("delete product: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// List devuelve una página de productos (más recientes primero) y el total que cumple el filtro.
func (r *ProductRepo) List(ctx context.Context, tenantID string, f repository.ProductFilter) ([]*entity.Product, int, error) {
	where := `WHERE tenant_id = $1 AND ($2::text = '' OR name ILIKE '%' || $2::text || '%')`

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products `+where, tenantID, f.Search).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	rows, err := r.q.Query(ctx,
		`SELECT `+productColumns+` FROM products `+where+` ORDER BY created_at DESC, id LIMIT $3 OFFSET $4`,
		tenantID, f.Search, f.Limit, f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	list, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListAll todos los productos del tenant ordenados por nombre (exportación).
func (r *ProductRepo) ListAll(ctx context.Context, tenantID string) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE tenant_id = $1 ORDER BY name, id`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list all products: %w", err)
	}
	return collectProducts(rows)
}

// ListLowStock productos con stock < min_stock. limit <= 0 sin límite.
func (r *ProductRepo) ListLowStock(ctx context.Context, tenantID string, limit int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE tenant_id = $1 AND stock < min_stock
		ORDER BY stock ASC, min_stock ASC, id`
	args := []any{tenantID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	return collectProducts(rows)
}

// CountLowStock cuenta productos con stock < min_stock.
func (r *ProductRepo) CountLowStock(ctx context.Context, tenantID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM products WHERE tenant_id = $1 AND stock < min_stock`, tenantID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return n, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.TenantID, &p.Name, &p.CostPrice, &p.SalePrice, &p.Stock, &p.MinStock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
