package customers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/tenancy"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/memory"
)

var (
	scopeA = tenancy.Scope{UserID: "u-a", TenantID: "tenant-a"}
	scopeB = tenancy.Scope{UserID: "u-b", TenantID: "tenant-b"}
)

func newUseCase() *CustomerUseCase {
	uc := NewCustomerUseCase(memory.NewStore().Customers())
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	n := 0
	uc.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Minute)
	}
	uc.newID = func() string { return fmt.Sprintf("c-%d", n) }
	return uc
}

func TestCreate_RecortaYVacioEsNulo(t *testing.T) {
	uc := newUseCase()
	out, err := uc.Create(context.Background(), scopeA, dto.CustomerRequest{Name: "  María  ", Phone: "   ", Email: " maria@example.com "})
	require.NoError(t, err)
	assert.Equal(t, "María", out.Name)
	assert.Nil(t, out.Phone)
	require.NotNil(t, out.Email)
	assert.Equal(t, "maria@example.com", *out.Email)
}

func TestCreate_Validacion(t *testing.T) {
	uc := newUseCase()
	_, err := uc.Create(context.Background(), scopeA, dto.CustomerRequest{Name: " a ", Email: "no-es-email"})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "name")
	assert.Contains(t, ve.Fields, "email")
}

func TestUpdate_YAislamientoPorTenant(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()
	c, err := uc.Create(ctx, scopeA, dto.CustomerRequest{Name: "María", Phone: "300"})
	require.NoError(t, err)

	_, err = uc.Update(ctx, scopeB, c.ID, dto.CustomerRequest{Name: "Intruso"})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)

	out, err := uc.Update(ctx, scopeA, c.ID, dto.CustomerRequest{Name: "María José"})
	require.NoError(t, err)
	assert.Equal(t, "María José", out.Name)
	assert.Nil(t, out.Phone, "un teléfono vacío borra el anterior")
	assert.True(t, out.UpdatedAt.After(out.CreatedAt))
}

func TestDelete(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()
	c, err := uc.Create(ctx, scopeA, dto.CustomerRequest{Name: "María"})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete(ctx, scopeB, c.ID), domain.ErrCustomerNotFound)
	require.NoError(t, uc.Delete(ctx, scopeA, c.ID))
	assert.ErrorIs(t, uc.Delete(ctx, scopeA, c.ID), domain.ErrCustomerNotFound)
}

func TestList_MasRecientesPrimero(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()
	for _, name := range []string{"Primero", "Segundo"} {
		_, err := uc.Create(ctx, scopeA, dto.CustomerRequest{Name: name})
		require.NoError(t, err)
	}
	_, err := uc.Create(ctx, scopeB, dto.CustomerRequest{Name: "Ajeno"})
	require.NoError(t, err)

	list, err := uc.List(ctx, scopeA)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Segundo", list[0].Name)
}
