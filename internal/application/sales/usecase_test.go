package sales_test

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
	"github.com/jhoicas/textil-erp/internal/application/sales"
	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
	"github.com/jhoicas/textil-erp/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	customerID = "44444444-4444-4444-8444-444444444444"
	productID  = "55555555-5555-4555-8555-555555555555"
	product2ID = "66666666-6666-4666-8666-666666666666"
	userID     = "33333333-3333-4333-8333-333333333333"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newUseCase(t *testing.T, stock, stock2 string) (*sales.UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	now := time.Now()
	r := store.Repos()
	require.NoError(t, r.Customers.Create(ctx, &entity.Customer{ID: customerID, Name: "Confecciones Andinas", IsActive: true, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, r.Products.Create(ctx, &entity.Product{ID: productID, SKU: "CAM-M", Name: "Camisa talla M", IsActive: true, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, r.Products.Create(ctx, &entity.Product{ID: product2ID, SKU: "PAN-32", Name: "Pantalón 32", IsActive: true, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, r.Products.IncrementStock(ctx, productID, dec(stock)))
	require.NoError(t, r.Products.IncrementStock(ctx, product2ID, dec(stock2)))
	return sales.NewUseCase(r, store, nil, nil, zerolog.Nop()), store
}

func productStock(t *testing.T, store *memory.Store, id string) decimal.Decimal {
	t.Helper()
	p, err := store.Repos().Products.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.CurrentStock
}

func item(id, qty string) dto.SalesItemRequest {
	return dto.SalesItemRequest{ProductID: id, Quantity: dec(qty), UnitPrice: dec("20000")}
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios B y C
// ──────────────────────────────────────────────────────────────────────────────

func TestSales_CrearSinStockFallaYNoPersiste(t *testing.T) {
	uc, store := newUseCase(t, "10", "0")
	ctx := context.Background()

	_, err := uc.Create(ctx, userID, dto.CreateSalesOrderRequest{CustomerID: customerID, Items: []dto.SalesItemRequest{item(productID, "15")}})
	require.Error(t, err)
	var short *domain.InsufficientStockError
	require.True(t, errors.As(err, &short))
	assert.True(t, short.Available.Equal(dec("10")))
	assert.Equal(t, "Camisa talla M", short.Item)

	list, err := uc.List(ctx, repository.SalesOrderFilter{CustomerID: customerID})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
	assert.True(t, productStock(t, store, productID).Equal(dec("10")))
}

func TestSales_EntregaDescuentaYBloquea(t *testing.T) {
	uc, store := newUseCase(t, "10", "0")
	ctx := context.Background()

	so, err := uc.Create(ctx, userID, dto.CreateSalesOrderRequest{CustomerID: customerID, Items: []dto.SalesItemRequest{item(productID, "5")}})
	require.NoError(t, err)
	assert.Equal(t, "OV-000001", so.OrderNumber)
	assert.True(t, so.TotalAmount.Equal(dec("100000")))
	assert.True(t, productStock(t, store, productID).Equal(dec("10")), "crear no reserva stock")

	got, err := uc.UpdateStatus(ctx, userID, so.ID, dto.UpdateSalesStatusRequest{Status: "DELIVERED"})
	require.NoError(t, err)
	assert.Equal(t, "DELIVERED", got.Status)
	assert.True(t, productStock(t, store, productID).Equal(dec("5")))

	_, err = uc.Update(ctx, so.ID, dto.UpdateSalesOrderRequest{Items: []dto.SalesItemRequest{item(productID, "1")}})
	assert.ErrorIs(t, err, domain.ErrOrderLocked)
	assert.ErrorIs(t, uc.Delete(ctx, so.ID), domain.ErrOrderLocked)

	// Repetir DELIVERED no descuenta de nuevo.
	_, err = uc.UpdateStatus(ctx, userID, so.ID, dto.UpdateSalesStatusRequest{Status: "DELIVERED"})
	require.NoError(t, err)
	assert.True(t, productStock(t, store, productID).Equal(dec("5")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario E: entregas concurrentes sobre el mismo producto
// ──────────────────────────────────────────────────────────────────────────────

func TestSales_EntregasConcurrentesSoloUnaGana(t *testing.T) {
	uc, store := newUseCase(t, "10", "0")
	ctx := context.Background()

	a, err := uc.Create(ctx, userID, dto.CreateSalesOrderRequest{CustomerID: customerID, Items: []dto.SalesItemRequest{item(productID, "8")}})
	require.NoError(t, err)
	b, err := uc.Create(ctx, userID, dto.CreateSalesOrderRequest{CustomerID: customerID, Items: []dto.SalesItemRequest{item(productID, "8")}})
	require.NoError(t, err, "la validación al crear no reserva: ambas pasan")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []string{a.ID, b.ID} {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = uc.UpdateStatus(ctx, userID, id, dto.UpdateSalesStatusRequest{Status: "DELIVERED"})
		}(i, id)
	}
	wg.Wait()

	ok, short := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			short++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, short)
	assert.True(t, productStock(t, store, productID).Equal(dec("2")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad y transiciones
// ──────────────────────────────────────────────────────────────────────────────

func TestSales_EntregaParcialNoSeAplica(t *testing.T) {
	uc, store := newUseCase(t, "10", "3")
	ctx := context.Background()

	so, err := uc.Create(ctx, userID, dto.CreateSalesOrderRequest{
		CustomerID: customerID,
		Items:      []dto.SalesItemRequest{item(productID, "4"), item(product2ID, "3")},
	})
	require.NoError(t, err)

	// Otra orden consume el segundo producto antes de la entrega.
	other, err := uc.Create(ctx, userID, dto.CreateSalesOrderRequest{CustomerID: customerID, Items: []dto.SalesItemRequest{item(product2ID, "2")}})
	require.NoError(t, err)
	_, err = uc.UpdateStatus(ctx, userID, other.ID, dto.UpdateSalesStatusRequest{Status: "DELIVERED"})
	require.NoError(t, err)

	_, err = uc.UpdateStatus(ctx, userID, so.ID, dto.UpdateSalesStatusRequest{Status: "DELIVERED"})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, productStock(t, store, productID).Equal(dec("10")), "el primer ítem no debe descontarse")
	assert.True(t, productStock(t, store, product2ID).Equal(dec("1")))

	got, err := uc.Get(ctx, so.ID)
	require.NoError(t, err)
	assert.Equal(t, "PENDING", got.Status)
}

func TestSales_ItemsDuplicadosSeDescuentanJuntos(t *testing.T) {
	uc, store := newUseCase(t, "10", "0")
	ctx := context.Background()

	so, err := uc.Create(ctx, userID, dto.CreateSalesOrderRequest{
		CustomerID: customerID,
		Items:      []dto.SalesItemRequest{item(productID, "6"), item(productID, "6")},
	})
	require.NoError(t, err)

	_, err = uc.UpdateStatus(ctx, userID, so.ID, dto.UpdateSalesStatusRequest{Status: "DELIVERED"})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, productStock(t, store, productID).Equal(dec("10")))
}

func TestSales_EstadosIntermediosYCancelacion(t *testing.T) {
	uc, store := newUseCase(t, "10", "0")
	ctx := context.Background()
	so, err := uc.Create(ctx, userID, dto.CreateSalesOrderRequest{CustomerID: customerID, Items: []dto.SalesItemRequest{item(productID, "1")}})
	require.NoError(t, err)

	for _, st := range []string{"CONFIRMED", "IN_PRODUCTION", "READY", "CANCELLED"} {
		got, err := uc.UpdateStatus(ctx, userID, so.ID, dto.UpdateSalesStatusRequest{Status: st})
		require.NoError(t, err, st)
		assert.Equal(t, st, got.Status)
	}
	assert.True(t, productStock(t, store, productID).Equal(dec("10")), "cancelar no toca stock")

	_, err = uc.UpdateStatus(ctx, userID, so.ID, dto.UpdateSalesStatusRequest{Status: "DELIVERED"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestSales_UpdateRevalidaStock(t *testing.T) {
	uc, _ := newUseCase(t, "10", "0")
	ctx := context.Background()
	so, err := uc.Create(ctx, userID, dto.CreateSalesOrderRequest{CustomerID: customerID, Items: []dto.SalesItemRequest{item(productID, "1")}})
	require.NoError(t, err)

	_, err = uc.Update(ctx, so.ID, dto.UpdateSalesOrderRequest{Items: []dto.SalesItemRequest{item(productID, "11")}})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := uc.Update(ctx, so.ID, dto.UpdateSalesOrderRequest{Items: []dto.SalesItemRequest{item(productID, "2")}})
	require.NoError(t, err)
	assert.True(t, got.TotalAmount.Equal(dec("40000")))
}

func TestSales_ClienteInexistente(t *testing.T) {
	uc, _ := newUseCase(t, "10", "0")
	_, err := uc.Create(context.Background(), userID, dto.CreateSalesOrderRequest{
		CustomerID: "99999999-9999-4999-8999-999999999999",
		Items:      []dto.SalesItemRequest{item(productID, "1")},
	})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestSales_RechazaMasDeCuatroDecimales(t *testing.T) {
	uc, store := newUseCase(t, "10", "0")
	ctx := context.Background()

	_, err := uc.Create(ctx, userID, dto.CreateSalesOrderRequest{
		CustomerID: customerID,
		Items:      []dto.SalesItemRequest{item(productID, "2.00001")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, userID, dto.CreateSalesOrderRequest{
		CustomerID: customerID,
		Items:      []dto.SalesItemRequest{{ProductID: productID, Quantity: dec("1"), UnitPrice: dec("19999.99999")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, productStock(t, store, productID).Equal(dec("10")))
}
