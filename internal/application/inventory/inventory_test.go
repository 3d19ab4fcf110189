package inventory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/tenancy"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/memory"
)

var scopeA = tenancy.Scope{UserID: "user-a", TenantID: "tenant-a", Role: entity.RoleOwner}
var scopeB = tenancy.Scope{UserID: "user-b", TenantID: "tenant-b", Role: entity.RoleOwner}

type fixture struct {
	store     *memory.Store
	products  *ProductUseCase
	movements *MovementUseCase
}

func newFixture() *fixture {
	store := memory.NewStore()
	return &fixture{
		store:     store,
		products:  NewProductUseCase(store, store.Products(), nil),
		movements: NewMovementUseCase(store, store.Movements(), nil),
	}
}

func (f *fixture) createProduct(t *testing.T, scope tenancy.Scope, name string, stock, minStock int) string {
	t.Helper()
	p, err := f.products.Create(context.Background(), scope, dto.ProductRequest{
		Name:      name,
		CostPrice: decimal.NewFromInt(5),
		SalePrice: decimal.NewFromInt(10),
		Stock:     stock,
		MinStock:  minStock,
	})
	require.NoError(t, err)
	return p.ID
}

func (f *fixture) stock(t *testing.T, scope tenancy.Scope, id string) int {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), scope.TenantID, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func intPtr(v int) *int { return &v }

// ─── Movimientos ──────────────────────────────────────────────────────────────

func TestRegisterMovement_Entrada(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.createProduct(t, scopeA, "Arroz", 10, 0)

	reason := "  compra proveedor  "
	resp, err := f.movements.RegisterMovement(ctx, scopeA, dto.StockMovementRequest{
		ProductID: id, Type: "IN", Quantity: intPtr(5), Reason: &reason,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Quantity)
	assert.Equal(t, 15, *resp.StockAfter)
	require.NotNil(t, resp.Reason)
	assert.Equal(t, "compra proveedor", *resp.Reason)
	assert.Equal(t, 15, f.stock(t, scopeA, id))
}

func TestRegisterMovement_SalidaSinStockNoEscribe(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.createProduct(t, scopeA, "Arroz", 3, 0)

	_, err := f.movements.RegisterMovement(ctx, scopeA, dto.StockMovementRequest{
		ProductID: id, Type: "OUT", Quantity: intPtr(4),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, f.stock(t, scopeA, id))

	movs, _ := f.store.Movements().ListByProduct(ctx, scopeA.TenantID, id)
	assert.Empty(t, movs)
}

func TestRegisterMovement_EntradaSobreElMaximo(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.createProduct(t, scopeA, "Arroz", 10, 0)

	_, err := f.movements.RegisterMovement(ctx, scopeA, dto.StockMovementRequest{
		ProductID: id, Type: "IN", Quantity: intPtr(entity.MaxStock),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.movements.RegisterMovement(ctx, scopeA, dto.StockMovementRequest{
		ProductID: id, Type: "IN", Quantity: intPtr(entity.MaxStock + 1),
	})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "quantity")

	assert.Equal(t, 10, f.stock(t, scopeA, id))
	movs, _ := f.store.Movements().ListByProduct(ctx, scopeA.TenantID, id)
	assert.Empty(t, movs)
}

func TestRegisterMovement_AjusteRegistraDelta(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.createProduct(t, scopeA, "Arroz", 10, 0)

	resp, err := f.movements.RegisterMovement(ctx, scopeA, dto.StockMovementRequest{
		ProductID: id, Type: "ADJUST", TargetStock: intPtr(4), Quantity: intPtr(99),
	})
	require.NoError(t, err)
	assert.Equal(t, "ADJUST", resp.Type)
	assert.Equal(t, -6, resp.Quantity)
	assert.Equal(t, 4, f.stock(t, scopeA, id))
}

func TestRegisterMovement_AjusteSinObjetivo(t *testing.T) {
	f := newFixture()
	id := f.createProduct(t, scopeA, "Arroz", 10, 0)

	_, err := f.movements.RegisterMovement(context.Background(), scopeA, dto.StockMovementRequest{
		ProductID: id, Type: "ADJUST",
	})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "targetStock")
}

func TestRegisterMovement_TipoInvalido(t *testing.T) {
	f := newFixture()
	_, err := f.movements.RegisterMovement(context.Background(), scopeA, dto.StockMovementRequest{
		ProductID: "x", Type: "TRANSFER", Quantity: intPtr(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterMovement_ProductoDeOtroTenant(t *testing.T) {
	f := newFixture()
	id := f.createProduct(t, scopeA, "Arroz", 10, 0)

	_, err := f.movements.RegisterMovement(context.Background(), scopeB, dto.StockMovementRequest{
		ProductID: id, Type: "IN", Quantity: intPtr(1),
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Equal(t, 10, f.stock(t, scopeA, id))
}

func TestRecentMovements_ConNombreYSoloDelTenant(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.createProduct(t, scopeA, "Arroz", 10, 0)
	b := f.createProduct(t, scopeB, "Frijol", 10, 0)

	_, err := f.movements.RegisterMovement(ctx, scopeA, dto.StockMovementRequest{ProductID: a, Type: "IN", Quantity: intPtr(1)})
	require.NoError(t, err)
	_, err = f.movements.RegisterMovement(ctx, scopeB, dto.StockMovementRequest{ProductID: b, Type: "IN", Quantity: intPtr(1)})
	require.NoError(t, err)

	list, err := f.movements.RecentMovements(ctx, scopeA)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Arroz", list[0].ProductName)
}

// ─── Productos ────────────────────────────────────────────────────────────────

func TestUpdateProduct_CambioDeStockPasaPorElLibro(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.createProduct(t, scopeA, "Arroz", 10, 2)

	resp, err := f.products.Update(ctx, scopeA, id, dto.ProductRequest{
		Name: "Arroz premium", CostPrice: decimal.NewFromInt(6), SalePrice: decimal.NewFromInt(12), Stock: 7, MinStock: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, "Arroz premium", resp.Name)
	assert.Equal(t, 7, resp.Stock)
	assert.True(t, resp.SalePrice.Equal(decimal.NewFromInt(12)))

	movs, err := f.store.Movements().ListByProduct(ctx, scopeA.TenantID, id)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementAdjust, movs[0].Type)
	assert.Equal(t, -3, movs[0].Quantity)
	assert.Equal(t, ReasonProductEdit, *movs[0].Reason)
}

func TestUpdateProduct_SinCambioDeStockNoRegistraMovimiento(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.createProduct(t, scopeA, "Arroz", 10, 2)

	_, err := f.products.Update(ctx, scopeA, id, dto.ProductRequest{Name: "Arroz", Stock: 10})
	require.NoError(t, err)

	movs, _ := f.store.Movements().ListByProduct(ctx, scopeA.TenantID, id)
	assert.Empty(t, movs)
}

func TestUpdateProduct_NoExiste(t *testing.T) {
	f := newFixture()
	_, err := f.products.Update(context.Background(), scopeA, "nope", dto.ProductRequest{Name: "Arroz"})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCreateProduct_Validacion(t *testing.T) {
	f := newFixture()
	_, err := f.products.Create(context.Background(), scopeA, dto.ProductRequest{
		Name: "A", CostPrice: decimal.NewFromInt(-1), Stock: -1,
	})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "name")
	assert.Contains(t, ve.Fields, "costPrice")
	assert.Contains(t, ve.Fields, "stock")
}

func TestDeleteProduct(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.createProduct(t, scopeA, "Arroz", 10, 0)

	assert.ErrorIs(t, f.products.Delete(ctx, scopeB, id), domain.ErrProductNotFound)
	require.NoError(t, f.products.Delete(ctx, scopeA, id))
	assert.ErrorIs(t, f.products.Delete(ctx, scopeA, id), domain.ErrProductNotFound)
}

func TestDeleteProduct_ConVentas(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.createProduct(t, scopeA, "Arroz", 10, 0)
	require.NoError(t, f.store.Sales().CreateItems(ctx, []entity.SaleItem{
		{ID: "i1", TenantID: scopeA.TenantID, SaleID: "s1", ProductID: id, Quantity: 1},
	}))

	assert.ErrorIs(t, f.products.Delete(ctx, scopeA, id), domain.ErrProductInUse)
}

func TestListProducts_PaginacionPorDefecto(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	for i := 0; i < 12; i++ {
		f.createProduct(t, scopeA, "Producto", 1, 0)
	}
	f.createProduct(t, scopeA, "Azúcar", 1, 0)

	page, err := f.products.List(ctx, scopeA, dto.ListProductsQuery{})
	require.NoError(t, err)
	assert.Len(t, page.Items, DefaultPageSize)
	assert.Equal(t, dto.Pagination{Page: 1, PageSize: 10, Total: 13, TotalPages: 2}, page.Pagination)

	page, err = f.products.List(ctx, scopeA, dto.ListProductsQuery{Search: "azú"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.Pagination.TotalPages)

	_, err = f.products.List(ctx, scopeA, dto.ListProductsQuery{PageSize: 101})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLowStock_OrdenadoPorStock(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.createProduct(t, scopeA, "Ok", 10, 5)
	f.createProduct(t, scopeA, "Crítico", 0, 5)
	f.createProduct(t, scopeA, "Bajo", 3, 5)

	list, err := f.products.LowStock(ctx, scopeA)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Crítico", list[0].Name)
	assert.Equal(t, "Bajo", list[1].Name)
	assert.True(t, list[0].LowStock)
}

// ─── Exportación ──────────────────────────────────────────────────────────────

type fakeExporter struct {
	got []*entity.Product
}

func (e *fakeExporter) Export(_ context.Context, products []*entity.Product) ([]byte, error) {
	e.got = products
	return []byte("xlsx"), nil
}

func TestExport_SoloProductosDelTenant(t *testing.T) {
	f := newFixture()
	f.createProduct(t, scopeA, "Arroz", 1, 0)
	f.createProduct(t, scopeB, "Frijol", 1, 0)

	exp := &fakeExporter{}
	uc := NewExportUseCase(f.store.Products(), exp)
	file, err := uc.Export(context.Background(), scopeA)
	require.NoError(t, err)
	assert.Equal(t, XLSXContentType, file.ContentType)
	assert.Contains(t, file.Name, ".xlsx")
	require.Len(t, exp.got, 1)
	assert.Equal(t, "Arroz", exp.got[0].Name)
}

func TestScopeSinTenant(t *testing.T) {
	f := newFixture()
	_, err := f.products.LowStock(context.Background(), tenancy.Scope{UserID: "u"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
