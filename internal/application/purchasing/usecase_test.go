package purchasing_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/textil-erp/internal/application/dto"
	"github.com/jhoicas/textil-erp/internal/application/inventory"
	"github.com/jhoicas/textil-erp/internal/application/ports"
	"github.com/jhoicas/textil-erp/internal/application/purchasing"
	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
	"github.com/jhoicas/textil-erp/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	supplierID = "11111111-1111-4111-8111-111111111111"
	materialID = "22222222-2222-4222-8222-222222222222"
	userID     = "33333333-3333-4333-8333-333333333333"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.OrderStatusChanged
	err    error
}

func (p *recordingPublisher) PublishOrderStatusChanged(_ context.Context, ev ports.OrderStatusChanged) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

type fixture struct {
	store  *memory.Store
	uc     *purchasing.UseCase
	events *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, store.Repos().Suppliers.Create(ctx, &entity.Supplier{ID: supplierID, Name: "Hilados del Valle", IsActive: true, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, store.Repos().Materials.Create(ctx, &entity.Material{ID: materialID, SKU: "TEL-001", Name: "Tela denim", Unit: "m", IsActive: true, CreatedAt: now, UpdatedAt: now}))

	events := &recordingPublisher{}
	ledger := inventory.NewLedger(store.Repos(), store, nil, zerolog.Nop())
	uc := purchasing.NewUseCase(store.Repos(), store, ledger, events, nil, zerolog.Nop())
	return &fixture{store: store, uc: uc, events: events}
}

func (f *fixture) materialStock(t *testing.T) decimal.Decimal {
	t.Helper()
	m, err := f.store.Repos().Materials.GetByID(context.Background(), materialID)
	require.NoError(t, err)
	return m.CurrentStock
}

func oneItem(qty, price string) []dto.PurchaseItemRequest {
	return []dto.PurchaseItemRequest{{MaterialID: materialID, Quantity: dec(qty), UnitPrice: dec(price)}}
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario A: crear, recibir, recibir otra vez
// ──────────────────────────────────────────────────────────────────────────────

func TestPurchase_RecepcionSumaStockUnaSolaVez(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	po, err := f.uc.Create(ctx, userID, dto.CreatePurchaseOrderRequest{SupplierID: supplierID, Items: oneItem("100", "5.00")})
	require.NoError(t, err)
	assert.Equal(t, "PENDING", po.Status)
	assert.Equal(t, "OC-000001", po.OrderNumber)
	assert.True(t, po.TotalAmount.Equal(dec("500.00")))

	got, err := f.uc.UpdateStatus(ctx, userID, po.ID, dto.UpdatePurchaseStatusRequest{Status: "RECEIVED"})
	require.NoError(t, err)
	assert.Equal(t, "RECEIVED", got.Status)
	require.NotNil(t, got.ReceivedDate)
	assert.True(t, f.materialStock(t).Equal(dec("100")))

	movs, err := f.store.Repos().Movements.List(ctx, repository.MovementFilter{MaterialID: materialID})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeIN, movs[0].Type)
	assert.True(t, movs[0].Quantity.Equal(dec("100")))
	assert.True(t, movs[0].UnitCost.Equal(dec("5.00")))
	assert.Equal(t, po.OrderNumber, movs[0].Reference)

	// Repetir RECEIVED no cambia nada.
	_, err = f.uc.UpdateStatus(ctx, userID, po.ID, dto.UpdatePurchaseStatusRequest{Status: "RECEIVED"})
	require.NoError(t, err)
	assert.True(t, f.materialStock(t).Equal(dec("100")))
	movs, err = f.store.Repos().Movements.List(ctx, repository.MovementFilter{MaterialID: materialID})
	require.NoError(t, err)
	assert.Len(t, movs, 1)

	require.Len(t, f.events.events, 1, "solo la transición efectiva publica evento")
	assert.Equal(t, "PENDING", f.events.events[0].From)
	assert.Equal(t, "RECEIVED", f.events.events[0].To)
	assert.Equal(t, ports.OrderTypePurchase, f.events.events[0].OrderType)
}

func TestPurchase_FechaDeRecepcionExplicita(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	po, err := f.uc.Create(ctx, userID, dto.CreatePurchaseOrderRequest{SupplierID: supplierID, Items: oneItem("1", "1")})
	require.NoError(t, err)

	when := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	got, err := f.uc.UpdateStatus(ctx, userID, po.ID, dto.UpdatePurchaseStatusRequest{Status: "RECEIVED", ReceivedDate: &when})
	require.NoError(t, err)
	require.NotNil(t, got.ReceivedDate)
	assert.True(t, got.ReceivedDate.Equal(when))
}

func TestPurchase_RecepcionesConcurrentesAplicanUnaVez(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	po, err := f.uc.Create(ctx, userID, dto.CreatePurchaseOrderRequest{SupplierID: supplierID, Items: oneItem("40", "2")})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.UpdateStatus(ctx, userID, po.ID, dto.UpdatePurchaseStatusRequest{Status: "RECEIVED"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.True(t, f.materialStock(t).Equal(dec("40")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones y bloqueo
// ──────────────────────────────────────────────────────────────────────────────

func TestPurchase_CreateValidaReferencias(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, userID, dto.CreatePurchaseOrderRequest{SupplierID: "99999999-9999-4999-8999-999999999999", Items: oneItem("1", "1")})
	assert.ErrorIs(t, err, domain.ErrSupplierNotFound)

	_, err = f.uc.Create(ctx, userID, dto.CreatePurchaseOrderRequest{
		SupplierID: supplierID,
		Items:      []dto.PurchaseItemRequest{{MaterialID: "99999999-9999-4999-8999-999999999999", Quantity: dec("1"), UnitPrice: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrMaterialNotFound)

	_, err = f.uc.Create(ctx, userID, dto.CreatePurchaseOrderRequest{SupplierID: supplierID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Create(ctx, userID, dto.CreatePurchaseOrderRequest{SupplierID: supplierID, Items: oneItem("0", "1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Create(ctx, userID, dto.CreatePurchaseOrderRequest{SupplierID: supplierID, Items: oneItem("1.00005", "1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad con cinco decimales")

	_, err = f.uc.Create(ctx, userID, dto.CreatePurchaseOrderRequest{SupplierID: supplierID, Items: oneItem("1", "0.99999")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio con cinco decimales")
}

func TestPurchase_PrecioCeroEsValido(t *testing.T) {
	f := newFixture(t)
	po, err := f.uc.Create(context.Background(), userID, dto.CreatePurchaseOrderRequest{SupplierID: supplierID, Items: oneItem("3", "0")})
	require.NoError(t, err)
	assert.True(t, po.TotalAmount.IsZero())
}

func TestPurchase_RecibidaNoSeEditaNiBorra(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	po, err := f.uc.Create(ctx, userID, dto.CreatePurchaseOrderRequest{SupplierID: supplierID, Items: oneItem("10", "1")})
	require.NoError(t, err)
	_, err = f.uc.UpdateStatus(ctx, userID, po.ID, dto.UpdatePurchaseStatusRequest{Status: "RECEIVED"})
	require.NoError(t, err)

	_, err = f.uc.Update(ctx, po.ID, dto.UpdatePurchaseOrderRequest{Items: oneItem("20", "1")})
	assert.ErrorIs(t, err, domain.ErrOrderLocked)
	assert.ErrorIs(t, f.uc.Delete(ctx, po.ID), domain.ErrOrderLocked)

	_, err = f.uc.UpdateStatus(ctx, userID, po.ID, dto.UpdatePurchaseStatusRequest{Status: "CANCELLED"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestPurchase_UpdateReemplazaItemsYTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	po, err := f.uc.Create(ctx, userID, dto.CreatePurchaseOrderRequest{SupplierID: supplierID, Items: oneItem("10", "1")})
	require.NoError(t, err)

	notes := "cambio de cantidades"
	got, err := f.uc.Update(ctx, po.ID, dto.UpdatePurchaseOrderRequest{
		Notes: &notes,
		Items: []dto.PurchaseItemRequest{
			{MaterialID: materialID, Quantity: dec("2"), UnitPrice: dec("3.50")},
			{MaterialID: materialID, Quantity: dec("4"), UnitPrice: dec("0.25")},
		},
	})
	require.NoError(t, err)
	assert.Len(t, got.Items, 2)
	assert.True(t, got.TotalAmount.Equal(dec("8.00")))
	assert.Equal(t, notes, got.Notes)

	again, err := f.uc.Get(ctx, po.ID)
	require.NoError(t, err)
	assert.Len(t, again.Items, 2)
	assert.NotEqual(t, po.Items[0].ID, again.Items[0].ID, "los ítems se recrean completos")
}

func TestPurchase_NumeracionNoSeReutiliza(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.uc.Create(ctx, userID, dto.CreatePurchaseOrderRequest{SupplierID: supplierID, Items: oneItem("1", "1")})
	require.NoError(t, err)
	require.NoError(t, f.uc.Delete(ctx, first.ID))

	second, err := f.uc.Create(ctx, userID, dto.CreatePurchaseOrderRequest{SupplierID: supplierID, Items: oneItem("1", "1")})
	require.NoError(t, err)
	assert.Equal(t, "OC-000002", second.OrderNumber)

	_, err = f.uc.Get(ctx, first.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestPurchase_OrdenInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.UpdateStatus(context.Background(), userID, "no-existe", dto.UpdatePurchaseStatusRequest{Status: "APPROVED"})
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPurchase_FalloDelPublicadorNoRevierte(t *testing.T) {
	f := newFixture(t)
	f.events.err = errors.New("broker caído")
	ctx := context.Background()
	po, err := f.uc.Create(ctx, userID, dto.CreatePurchaseOrderRequest{SupplierID: supplierID, Items: oneItem("5", "1")})
	require.NoError(t, err)

	got, err := f.uc.UpdateStatus(ctx, userID, po.ID, dto.UpdatePurchaseStatusRequest{Status: "APPROVED"})
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", got.Status)
}

func TestPurchase_ListFiltraPorEstado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, err := f.uc.Create(ctx, userID, dto.CreatePurchaseOrderRequest{SupplierID: supplierID, Items: oneItem("1", "1")})
	require.NoError(t, err)
	_, err = f.uc.Create(ctx, userID, dto.CreatePurchaseOrderRequest{SupplierID: supplierID, Items: oneItem("1", "1")})
	require.NoError(t, err)
	_, err = f.uc.UpdateStatus(ctx, userID, a.ID, dto.UpdatePurchaseStatusRequest{Status: "APPROVED"})
	require.NoError(t, err)

	out, err := f.uc.List(ctx, repository.PurchaseOrderFilter{Status: entity.PurchaseStatusApproved})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, a.ID, out.Items[0].ID)
}
