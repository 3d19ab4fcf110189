package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

func seedProduct(t *testing.T, s *Store, tenantID, id string, stock int) {
	t.Helper()
	now := time.Now()
	require.NoError(t, s.Products().Create(context.Background(), &entity.Product{
		ID: id, TenantID: tenantID, Name: "Producto " + id,
		CostPrice: decimal.NewFromInt(1), SalePrice: decimal.NewFromInt(2),
		Stock: stock, CreatedAt: now, UpdatedAt: now,
	}))
}

func TestRun_RollbackDescartaTodo(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedProduct(t, s, "t1", "p1", 5)

	boom := errors.New("boom")
	err := s.Run(ctx, func(tx repository.TxRepos) error {
		_, ok, err := tx.Products.ApplyStockDelta(ctx, "t1", "p1", -3)
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, tx.Movements.Create(ctx, &entity.StockMovement{ID: "m1", TenantID: "t1", ProductID: "p1", Type: entity.MovementOut, Quantity: -3}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p, err := s.Products().GetByID(ctx, "t1", "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock)
	movs, err := s.Movements().ListByProduct(ctx, "t1", "p1")
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestRun_CommitPublica(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedProduct(t, s, "t1", "p1", 5)

	err := s.Run(ctx, func(tx repository.TxRepos) error {
		_, _, err := tx.Products.ApplyStockDelta(ctx, "t1", "p1", 2)
		return err
	})
	require.NoError(t, err)

	p, _ := s.Products().GetByID(ctx, "t1", "p1")
	assert.Equal(t, 7, p.Stock)
}

func TestApplyStockDelta_NoQuedaNegativo(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedProduct(t, s, "t1", "p1", 2)

	_, ok, err := s.Products().ApplyStockDelta(ctx, "t1", "p1", -3)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, _ = s.Products().ApplyStockDelta(ctx, "otro-tenant", "p1", 1)
	assert.False(t, ok, "el producto no existe para otro tenant")

	stock, ok, _ := s.Products().ApplyStockDelta(ctx, "t1", "p1", -2)
	assert.True(t, ok)
	assert.Equal(t, 0, stock)
}

func TestProductDelete_ConVentasDevuelveEnUso(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedProduct(t, s, "t1", "p1", 2)
	require.NoError(t, s.Sales().CreateItems(ctx, []entity.SaleItem{{ID: "i1", TenantID: "t1", SaleID: "s1", ProductID: "p1", Quantity: 1}}))

	_, err := s.Products().Delete(ctx, "t1", "p1")
	assert.ErrorIs(t, err, domain.ErrProductInUse)
}

func TestProductList_PaginaYBusca(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		seedProduct(t, s, "t1", id, 1)
	}
	seedProduct(t, s, "t2", "x", 1)

	page, total, err := s.Products().List(ctx, "t1", repository.ProductFilter{Limit: 2, Offset: 0})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 2)
	assert.Equal(t, "c", page[0].ID, "más recientes primero")

	page, total, _ = s.Products().List(ctx, "t1", repository.ProductFilter{Search: "PRODUCTO B", Limit: 10})
	assert.Equal(t, 1, total)
	assert.Equal(t, "b", page[0].ID)

	page, _, _ = s.Products().List(ctx, "t1", repository.ProductFilter{Limit: 10, Offset: 10})
	assert.Empty(t, page)
}

func TestUserCreate_EmailUnicoSinMayusculas(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: "u1", Email: "Ana@Example.com"}))
	err := s.Users().Create(ctx, &entity.User{ID: "u2", Email: "ana@example.com"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	u, _ := s.Users().FindByEmail(ctx, "ANA@example.com")
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)
}
