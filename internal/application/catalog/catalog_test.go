package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/textil-erp/internal/application/catalog"
	"github.com/jhoicas/textil-erp/internal/application/dto"
	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
	"github.com/jhoicas/textil-erp/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }

func newMaterials(t *testing.T) (*catalog.MaterialUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return catalog.NewMaterialUseCase(store.Repos().Materials, store.Repos().Suppliers), store
}

// ──────────────────────────────────────────────────────────────────────────────
// Materiales
// ──────────────────────────────────────────────────────────────────────────────

func TestMaterial_CreaConStockCeroYRechazaSKUDuplicado(t *testing.T) {
	uc, _ := newMaterials(t)
	ctx := context.Background()

	m, err := uc.Create(ctx, dto.CreateMaterialRequest{SKU: "HIL-01", Name: "Hilo algodón", Unit: "kg", CostPrice: dec("12.5"), MinStock: dec("10")})
	require.NoError(t, err)
	assert.True(t, m.CurrentStock.IsZero())
	assert.True(t, m.IsActive)

	_, err = uc.Create(ctx, dto.CreateMaterialRequest{SKU: "HIL-01", Name: "Otro", Unit: "kg"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestMaterial_ProveedorDebeExistir(t *testing.T) {
	uc, _ := newMaterials(t)

	_, err := uc.Create(context.Background(), dto.CreateMaterialRequest{
		SKU: "BOT-01", Name: "Botón", Unit: "un", SupplierID: ptr("44444444-4444-4444-8444-444444444444"),
	})
	assert.ErrorIs(t, err, domain.ErrSupplierNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMaterial_NivelesInvalidos(t *testing.T) {
	uc, _ := newMaterials(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   dto.CreateMaterialRequest
	}{
		{"precio negativo", dto.CreateMaterialRequest{SKU: "A", Name: "A", Unit: "m", CostPrice: dec("-1")}},
		{"mínimo negativo", dto.CreateMaterialRequest{SKU: "B", Name: "B", Unit: "m", MinStock: dec("-5")}},
		{"máximo menor que mínimo", dto.CreateMaterialRequest{SKU: "C", Name: "C", Unit: "m", MinStock: dec("50"), MaxStock: dec("10")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tt.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestMaterial_UpdateNoTocaStock(t *testing.T) {
	uc, store := newMaterials(t)
	ctx := context.Background()
	m, err := uc.Create(ctx, dto.CreateMaterialRequest{SKU: "TEL-01", Name: "Tela", Unit: "m"})
	require.NoError(t, err)
	require.NoError(t, store.Repos().Materials.IncrementStock(ctx, m.ID, dec("40")))

	got, err := uc.Update(ctx, m.ID, dto.UpdateMaterialRequest{Name: ptr("Tela denim"), CostPrice: ptr(dec("8"))})
	require.NoError(t, err)
	assert.Equal(t, "Tela denim", got.Name)
	assert.True(t, got.CostPrice.Equal(dec("8")))

	stored, err := store.Repos().Materials.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, stored.CurrentStock.Equal(dec("40")), "la edición de catálogo no modifica el stock")
}

func TestMaterial_DeleteEsLogicoYListFiltra(t *testing.T) {
	uc, store := newMaterials(t)
	ctx := context.Background()
	a, err := uc.Create(ctx, dto.CreateMaterialRequest{SKU: "A-1", Name: "Elástico", Unit: "m", MinStock: dec("5")})
	require.NoError(t, err)
	b, err := uc.Create(ctx, dto.CreateMaterialRequest{SKU: "B-1", Name: "Cremallera", Unit: "un", MinStock: dec("5")})
	require.NoError(t, err)
	require.NoError(t, store.Repos().Materials.IncrementStock(ctx, b.ID, dec("20")))

	require.NoError(t, uc.Delete(ctx, a.ID))
	assert.ErrorIs(t, uc.Delete(ctx, "no-existe"), domain.ErrMaterialNotFound)

	got, err := uc.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive, "el material sigue existiendo para el libro")

	active, err := uc.List(ctx, repository.MaterialFilter{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active.Items, 1)
	assert.Equal(t, b.ID, active.Items[0].ID)

	low, err := uc.List(ctx, repository.MaterialFilter{LowStock: true})
	require.NoError(t, err)
	require.Len(t, low.Items, 1)
	assert.Equal(t, a.ID, low.Items[0].ID)
	assert.Equal(t, 50, low.Page.Limit, "límite por defecto")
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProduct_CRUD(t *testing.T) {
	store := memory.NewStore()
	uc := catalog.NewProductUseCase(store.Repos().Products)
	ctx := context.Background()

	p, err := uc.Create(ctx, dto.CreateProductRequest{SKU: "CAM-M", Name: "Camisa M", Unit: "und", SalePrice: dec("45000")})
	require.NoError(t, err)
	assert.True(t, p.CurrentStock.IsZero())

	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "CAM-M", Name: "Repetida", Unit: "und"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	upd, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: ptr("Camisa manga larga M")})
	require.NoError(t, err)
	assert.Equal(t, "Camisa manga larga M", upd.Name)

	_, err = uc.GetByID(ctx, "nada")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	require.NoError(t, uc.Delete(ctx, p.ID))
	list, err := uc.List(ctx, repository.ProductFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

// ──────────────────────────────────────────────────────────────────────────────
// Proveedores y clientes
// ──────────────────────────────────────────────────────────────────────────────

func TestParty_CreaYBusca(t *testing.T) {
	store := memory.NewStore()
	suppliers := catalog.NewSupplierUseCase(store.Repos().Suppliers)
	customers := catalog.NewCustomerUseCase(store.Repos().Customers)
	ctx := context.Background()

	s, err := suppliers.Create(ctx, dto.CreatePartyRequest{Name: "Hilados del Valle", TaxID: "900123456"})
	require.NoError(t, err)
	assert.True(t, s.IsActive)

	got, err := suppliers.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "900123456", got.TaxID)

	_, err = customers.Create(ctx, dto.CreatePartyRequest{Name: "Boutique Sol"})
	require.NoError(t, err)
	_, err = customers.Create(ctx, dto.CreatePartyRequest{Name: "Almacenes Luna"})
	require.NoError(t, err)

	list, err := customers.List(ctx, repository.PartyFilter{Search: "luna"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Almacenes Luna", list.Items[0].Name)

	_, err = customers.GetByID(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)

	_, err = suppliers.Create(ctx, dto.CreatePartyRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
