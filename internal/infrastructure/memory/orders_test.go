package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

func TestPurchaseList_MasRecientePrimeroPorValorDelNumero(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	now := time.Now()
	for _, n := range []string{"OC-999999", "OC-1000000", "OC-000001"} {
		require.NoError(t, store.Repos().Purchases.Create(ctx, &entity.PurchaseOrder{ID: n, OrderNumber: n, Status: entity.PurchaseStatusPending, OrderDate: now}))
	}

	list, err := store.Repos().Purchases.List(ctx, repository.PurchaseOrderFilter{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "OC-1000000", list[0].OrderNumber)
	assert.Equal(t, "OC-999999", list[1].OrderNumber)
	assert.Equal(t, "OC-000001", list[2].OrderNumber)
}

func TestSalesItems_ConservanOrden(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	items := []entity.SalesItem{
		{ID: "i-c", ProductID: "p3", Quantity: decimal.NewFromInt(1)},
		{ID: "i-a", ProductID: "p1", Quantity: decimal.NewFromInt(2)},
		{ID: "i-b", ProductID: "p2", Quantity: decimal.NewFromInt(3)},
	}
	require.NoError(t, store.Repos().Sales.Create(ctx, &entity.SalesOrder{ID: "s1", OrderNumber: "OV-000001", Items: items}))

	got, err := store.Repos().Sales.GetByID(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got.Items, 3)
	assert.Equal(t, []string{"p3", "p1", "p2"}, []string{got.Items[0].ProductID, got.Items[1].ProductID, got.Items[2].ProductID})
}
