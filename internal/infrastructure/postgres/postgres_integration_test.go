//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/backoffice-api/internal/application/auth"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/inventory"
	"github.com/jhoicas/backoffice-api/internal/application/receivables"
	"github.com/jhoicas/backoffice-api/internal/application/sales"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/internal/domain/tenancy"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/postgres"
)

// Un solo contenedor para todo el paquete; cada prueba registra su propio tenant.
var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("backoffice_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		panic("iniciar contenedor postgres: " + err.Error())
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		panic(err)
	}
	if err := postgres.MigrateUp(ctx, dsn); err != nil {
		panic(err)
	}
	testPool, err = postgres.NewPoolFromDSN(ctx, dsn)
	if err != nil {
		panic(err)
	}

	code := m.Run()

	testPool.Close()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

var emailSeq atomic.Int64

// newTenant registra una organización real y devuelve su scope de OWNER.
func newTenant(t *testing.T) tenancy.Scope {
	t.Helper()
	uc := auth.NewAuthUseCase(
		postgres.NewTxRunner(testPool),
		postgres.NewUserRepository(testPool),
		postgres.NewMembershipRepository(testPool),
		postgres.NewPasswordResetRepository(testPool),
		auth.Config{JWT: auth.JWTConfig{Secret: "integration-secret-0123", ExpMinutes: 5, Issuer: "test"}},
	)
	email := fmt.Sprintf("owner%d-%d@example.com", emailSeq.Add(1), time.Now().UnixNano())
	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name: "Dueña", Email: email, Password: "secreta1", TenantName: "Tienda",
	})
	require.NoError(t, err)
	return tenancy.Scope{UserID: out.ID, TenantID: out.TenantID, Role: "OWNER"}
}

func newProduct(t *testing.T, scope tenancy.Scope, name string, stock int) string {
	t.Helper()
	uc := inventory.NewProductUseCase(postgres.NewTxRunner(testPool), postgres.NewProductRepository(testPool), nil)
	p, err := uc.Create(context.Background(), scope, dto.ProductRequest{
		Name: name, CostPrice: decimal.NewFromInt(2), SalePrice: decimal.RequireFromString("5.50"), Stock: stock, MinStock: 1,
	})
	require.NoError(t, err)
	return p.ID
}

func stockOf(t *testing.T, scope tenancy.Scope, id string) int {
	t.Helper()
	p, err := postgres.NewProductRepository(testPool).GetByID(context.Background(), scope.TenantID, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func saleUseCase() *sales.SaleUseCase {
	return sales.NewSaleUseCase(postgres.NewTxRunner(testPool), postgres.NewSaleRepository(testPool), nil)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestPostgres_VentaCreditoPersisteTodo(t *testing.T) {
	ctx := context.Background()
	scope := newTenant(t)
	id := newProduct(t, scope, "Arroz", 10)

	due := time.Now().AddDate(0, 0, 3)
	sale, err := saleUseCase().CreateSale(ctx, scope, dto.CreateSaleRequest{
		Items:       []dto.SaleItemRequest{{ProductID: id, Quantity: 2}, {ProductID: id, Quantity: 1}},
		PaymentType: "CREDIT",
		DueDate:     &due,
	})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("16.50").Equal(sale.Total))
	assert.Equal(t, 7, stockOf(t, scope, id))

	movements, err := postgres.NewStockMovementRepository(testPool).ListByProduct(ctx, scope.TenantID, id)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, -3, movements[0].Quantity)

	stored, err := postgres.NewSaleRepository(testPool).GetByID(ctx, scope.TenantID, sale.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Len(t, stored.Items, 2)
	require.Len(t, stored.Receivables, 1)
	assert.True(t, sale.Total.Equal(stored.Receivables[0].Amount))
}

func TestPostgres_VentaRechazadaNoDejaRastro(t *testing.T) {
	ctx := context.Background()
	scope := newTenant(t)
	a := newProduct(t, scope, "Arroz", 5)
	b := newProduct(t, scope, "Sal", 1)

	_, err := saleUseCase().CreateSale(ctx, scope, dto.CreateSaleRequest{
		Items:       []dto.SaleItemRequest{{ProductID: a, Quantity: 2}, {ProductID: b, Quantity: 2}},
		PaymentType: "CASH",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 5, stockOf(t, scope, a))
	list, err := postgres.NewSaleRepository(testPool).ListByTenant(ctx, scope.TenantID)
	require.NoError(t, err)
	assert.Empty(t, list)
	movements, err := postgres.NewStockMovementRepository(testPool).ListRecent(ctx, scope.TenantID, 50)
	require.NoError(t, err)
	assert.Empty(t, movements)
}

func TestPostgres_VentasConcurrentesNoSobrevenden(t *testing.T) {
	ctx := context.Background()
	scope := newTenant(t)
	id := newProduct(t, scope, "Arroz", 10)
	uc := saleUseCase()

	const buyers = 30
	var ok, rejected atomic.Int32
	var wg sync.WaitGroup
	for range buyers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.CreateSale(ctx, scope, dto.CreateSaleRequest{
				Items:       []dto.SaleItemRequest{{ProductID: id, Quantity: 1}},
				PaymentType: "CASH",
			})
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, domain.ErrInsufficientStock):
				rejected.Add(1)
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 10, ok.Load())
	assert.EqualValues(t, buyers-10, rejected.Load())
	assert.Equal(t, 0, stockOf(t, scope, id))
}

func TestPostgres_ProductoDeOtroTenant(t *testing.T) {
	scopeA := newTenant(t)
	scopeB := newTenant(t)
	id := newProduct(t, scopeA, "Arroz", 10)

	_, err := saleUseCase().CreateSale(context.Background(), scopeB, dto.CreateSaleRequest{
		Items:       []dto.SaleItemRequest{{ProductID: id, Quantity: 1}},
		PaymentType: "CASH",
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Equal(t, 10, stockOf(t, scopeA, id))
}

// ──────────────────────────────────────────────────────────────────────────────
// Cuentas por cobrar y catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestPostgres_MarcarPagadaEsIdempotente(t *testing.T) {
	ctx := context.Background()
	scope := newTenant(t)
	id := newProduct(t, scope, "Arroz", 10)
	due := time.Now().Add(24 * time.Hour)
	sale, err := saleUseCase().CreateSale(ctx, scope, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: id, Quantity: 1}}, PaymentType: "CREDIT", DueDate: &due,
	})
	require.NoError(t, err)

	uc := receivables.NewReceivableUseCase(postgres.NewTxRunner(testPool), postgres.NewReceivableRepository(testPool), nil)
	first, err := uc.MarkPaid(ctx, scope, sale.Receivables[0].ID)
	require.NoError(t, err)
	require.NotNil(t, first.PaidAt)

	second, err := uc.MarkPaid(ctx, scope, sale.Receivables[0].ID)
	require.NoError(t, err)
	assert.True(t, first.PaidAt.Equal(*second.PaidAt))

	list, err := uc.List(ctx, scope, dto.ReceivableQuery{Filter: "paid"})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.Equal(t, sale.ID, list.Data[0].Sale.ID)
	assert.Equal(t, 1, list.Counters.Paid)

	_, err = uc.MarkPaid(ctx, scope, "no-es-uuid")
	assert.ErrorIs(t, err, domain.ErrReceivableNotFound)
}

func TestPostgres_ProductoConVentasNoSeBorra(t *testing.T) {
	ctx := context.Background()
	scope := newTenant(t)
	id := newProduct(t, scope, "Arroz", 10)
	_, err := saleUseCase().CreateSale(ctx, scope, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: id, Quantity: 1}}, PaymentType: "CASH",
	})
	require.NoError(t, err)

	_, err = postgres.NewProductRepository(testPool).Delete(ctx, scope.TenantID, id)
	assert.ErrorIs(t, err, domain.ErrProductInUse)
}

func TestPostgres_BusquedaYPaginacion(t *testing.T) {
	ctx := context.Background()
	scope := newTenant(t)
	newProduct(t, scope, "Arroz Diana", 3)
	newProduct(t, scope, "arroz Roa", 3)
	newProduct(t, scope, "Sal", 3)

	page, total, err := postgres.NewProductRepository(testPool).List(ctx, scope.TenantID, repository.ProductFilter{
		Search: "ARROZ", Limit: 1, Offset: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, page, 1)
	assert.Equal(t, "arroz Roa", page[0].Name, "más reciente primero")
}
