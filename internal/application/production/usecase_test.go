package production_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/textil-erp/internal/application/dto"
	"github.com/jhoicas/textil-erp/internal/application/inventory"
	"github.com/jhoicas/textil-erp/internal/application/production"
	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
	"github.com/jhoicas/textil-erp/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	materialID  = "22222222-2222-4222-8222-222222222222"
	material2ID = "77777777-7777-4777-8777-777777777777"
	productID   = "55555555-5555-4555-8555-555555555555"
	userID      = "33333333-3333-4333-8333-333333333333"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func strp(s string) *string { return &s }

type fixture struct {
	store  *memory.Store
	ledger *inventory.Ledger
	uc     *production.UseCase
}

// newFixture crea un material con stock inicial (cargado por el libro) y un producto sin stock.
func newFixture(t *testing.T, stock, stock2 string) *fixture {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	now := time.Now()
	r := store.Repos()
	require.NoError(t, r.Materials.Create(ctx, &entity.Material{ID: materialID, SKU: "TEL-001", Name: "Tela denim", Unit: "m", IsActive: true, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, r.Materials.Create(ctx, &entity.Material{ID: material2ID, SKU: "BOT-001", Name: "Botón metálico", Unit: "un", IsActive: true, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, r.Products.Create(ctx, &entity.Product{ID: productID, SKU: "JEAN-32", Name: "Jean 32", IsActive: true, CreatedAt: now, UpdatedAt: now}))

	ledger := inventory.NewLedger(r, store, nil, zerolog.Nop())
	for id, qty := range map[string]string{materialID: stock, material2ID: stock2} {
		if dec(qty).IsPositive() {
			_, err := ledger.ApplyMovement(ctx, inventory.MovementInput{MaterialID: id, Type: entity.MovementTypeIN, Quantity: dec(qty), UnitCost: dec("1")})
			require.NoError(t, err)
		}
	}
	uc := production.NewUseCase(r, store, ledger, nil, nil, zerolog.Nop())
	return &fixture{store: store, ledger: ledger, uc: uc}
}

func (f *fixture) materialStock(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	m, err := f.store.Repos().Materials.GetByID(context.Background(), id)
	require.NoError(t, err)
	return m.CurrentStock
}

func (f *fixture) productStock(t *testing.T) decimal.Decimal {
	t.Helper()
	p, err := f.store.Repos().Products.GetByID(context.Background(), productID)
	require.NoError(t, err)
	return p.CurrentStock
}

func input(id, qty string) dto.ProductionItemRequest {
	return dto.ProductionItemRequest{MaterialID: strp(id), Quantity: dec(qty), UnitCost: dec("2.5")}
}

func output(qty string) dto.ProductionItemRequest {
	return dto.ProductionItemRequest{ProductID: strp(productID), Quantity: dec(qty)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario D
// ──────────────────────────────────────────────────────────────────────────────

func TestProduction_CompletarConsumeYProduceUnaVez(t *testing.T) {
	f := newFixture(t, "20", "0")
	ctx := context.Background()

	op, err := f.uc.Create(ctx, userID, dto.CreateProductionOrderRequest{
		Items: []dto.ProductionItemRequest{input(materialID, "20"), output("50")},
	})
	require.NoError(t, err)
	assert.Equal(t, "OP-000001", op.OrderNumber)
	assert.Equal(t, "NORMAL", op.Priority)
	assert.True(t, op.TotalCost.Equal(dec("50")))
	assert.True(t, op.Items[1].IsOutput)

	got, err := f.uc.UpdateStatus(ctx, userID, op.ID, dto.UpdateProductionStatusRequest{Status: "COMPLETED"})
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", got.Status)
	assert.NotNil(t, got.CompletedDate)
	assert.NotNil(t, got.EndDate)

	assert.True(t, f.materialStock(t, materialID).IsZero())
	assert.True(t, f.productStock(t).Equal(dec("50")))

	out, err := f.store.Repos().Movements.List(ctx, repository.MovementFilter{MaterialID: materialID, Type: entity.MovementTypeOUT})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].Quantity.Equal(dec("20")))
	assert.Equal(t, op.OrderNumber, out[0].Reference)

	_, err = f.uc.UpdateStatus(ctx, userID, op.ID, dto.UpdateProductionStatusRequest{Status: "COMPLETED"})
	require.NoError(t, err)
	assert.True(t, f.materialStock(t, materialID).IsZero())
	assert.True(t, f.productStock(t).Equal(dec("50")))

	check, err := f.ledger.Check(ctx, materialID)
	require.NoError(t, err)
	assert.True(t, check.Consistent)
}

func TestProduction_FaltanteAlCompletarAbortaTodo(t *testing.T) {
	f := newFixture(t, "20", "5")
	ctx := context.Background()

	op, err := f.uc.Create(ctx, userID, dto.CreateProductionOrderRequest{
		Items: []dto.ProductionItemRequest{input(materialID, "10"), input(material2ID, "5"), output("8")},
	})
	require.NoError(t, err)

	// El segundo insumo se consume por fuera antes de completar.
	_, err = f.ledger.ApplyMovement(ctx, inventory.MovementInput{MaterialID: material2ID, Type: entity.MovementTypeOUT, Quantity: dec("3")})
	require.NoError(t, err)

	_, err = f.uc.UpdateStatus(ctx, userID, op.ID, dto.UpdateProductionStatusRequest{Status: "COMPLETED"})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, f.materialStock(t, materialID).Equal(dec("20")), "sin consumo parcial")
	assert.True(t, f.materialStock(t, material2ID).Equal(dec("2")))
	assert.True(t, f.productStock(t).IsZero(), "sin producción parcial")

	got, err := f.uc.Get(ctx, op.ID)
	require.NoError(t, err)
	assert.Equal(t, "PENDING", got.Status)
	assert.Nil(t, got.CompletedDate)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestProduction_ItemsMalFormados(t *testing.T) {
	f := newFixture(t, "20", "0")
	ctx := context.Background()
	yes, no := true, false

	cases := []dto.ProductionItemRequest{
		{Quantity: dec("1")},
		{MaterialID: strp(materialID), ProductID: strp(productID), Quantity: dec("1")},
		{MaterialID: strp(materialID), Quantity: dec("1"), IsOutput: &yes},
		{ProductID: strp(productID), Quantity: dec("1"), IsOutput: &no},
		{MaterialID: strp(materialID), Quantity: dec("0")},
		{MaterialID: strp(materialID), Quantity: dec("1"), UnitCost: dec("-1")},
		{MaterialID: strp(materialID), Quantity: dec("1.00005")},
		{MaterialID: strp(materialID), Quantity: dec("1"), UnitCost: dec("2.12345")},
	}
	for i, it := range cases {
		_, err := f.uc.Create(ctx, userID, dto.CreateProductionOrderRequest{Items: []dto.ProductionItemRequest{it}})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "caso %d", i)
	}

	_, err := f.uc.Create(ctx, userID, dto.CreateProductionOrderRequest{Priority: "LATER", Items: []dto.ProductionItemRequest{output("1")}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProduction_InsumoSinStockAlCrear(t *testing.T) {
	f := newFixture(t, "5", "0")
	_, err := f.uc.Create(context.Background(), userID, dto.CreateProductionOrderRequest{
		Items: []dto.ProductionItemRequest{input(materialID, "6"), output("1")},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestProduction_SalidasNoSeValidanContraStock(t *testing.T) {
	f := newFixture(t, "0", "0")
	op, err := f.uc.Create(context.Background(), userID, dto.CreateProductionOrderRequest{
		Priority: "URGENT",
		Items:    []dto.ProductionItemRequest{output("100")},
	})
	require.NoError(t, err)
	assert.Equal(t, "URGENT", op.Priority)
}

func TestProduction_OrdenDeVentaInexistente(t *testing.T) {
	f := newFixture(t, "5", "0")
	_, err := f.uc.Create(context.Background(), userID, dto.CreateProductionOrderRequest{
		SalesOrderID: strp("99999999-9999-4999-8999-999999999999"),
		Items:        []dto.ProductionItemRequest{output("1")},
	})
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fechas y bloqueo
// ──────────────────────────────────────────────────────────────────────────────

func TestProduction_InicioMarcaFechaUnaVez(t *testing.T) {
	f := newFixture(t, "5", "0")
	ctx := context.Background()
	op, err := f.uc.Create(ctx, userID, dto.CreateProductionOrderRequest{Items: []dto.ProductionItemRequest{output("1")}})
	require.NoError(t, err)
	assert.Nil(t, op.StartDate)

	got, err := f.uc.UpdateStatus(ctx, userID, op.ID, dto.UpdateProductionStatusRequest{Status: "IN_PROGRESS"})
	require.NoError(t, err)
	require.NotNil(t, got.StartDate)
	first := *got.StartDate

	_, err = f.uc.UpdateStatus(ctx, userID, op.ID, dto.UpdateProductionStatusRequest{Status: "PENDING"})
	require.NoError(t, err)
	got, err = f.uc.UpdateStatus(ctx, userID, op.ID, dto.UpdateProductionStatusRequest{Status: "IN_PROGRESS"})
	require.NoError(t, err)
	assert.True(t, got.StartDate.Equal(first), "start_date no se sobrescribe")
}

func TestProduction_CompletadaNoSeEditaNiBorra(t *testing.T) {
	f := newFixture(t, "5", "0")
	ctx := context.Background()
	op, err := f.uc.Create(ctx, userID, dto.CreateProductionOrderRequest{Items: []dto.ProductionItemRequest{input(materialID, "1"), output("1")}})
	require.NoError(t, err)
	_, err = f.uc.UpdateStatus(ctx, userID, op.ID, dto.UpdateProductionStatusRequest{Status: "COMPLETED"})
	require.NoError(t, err)

	_, err = f.uc.Update(ctx, op.ID, dto.UpdateProductionOrderRequest{Items: []dto.ProductionItemRequest{output("2")}})
	assert.ErrorIs(t, err, domain.ErrOrderLocked)
	assert.ErrorIs(t, f.uc.Delete(ctx, op.ID), domain.ErrOrderLocked)
	_, err = f.uc.UpdateStatus(ctx, userID, op.ID, dto.UpdateProductionStatusRequest{Status: "CANCELLED"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestProduction_UpdateRecalculaCosto(t *testing.T) {
	f := newFixture(t, "10", "0")
	ctx := context.Background()
	op, err := f.uc.Create(ctx, userID, dto.CreateProductionOrderRequest{Items: []dto.ProductionItemRequest{input(materialID, "2"), output("1")}})
	require.NoError(t, err)

	prio := "HIGH"
	got, err := f.uc.Update(ctx, op.ID, dto.UpdateProductionOrderRequest{
		Priority: &prio,
		Items:    []dto.ProductionItemRequest{input(materialID, "4"), output("3")},
	})
	require.NoError(t, err)
	assert.Equal(t, "HIGH", got.Priority)
	assert.True(t, got.TotalCost.Equal(dec("10")))
}
