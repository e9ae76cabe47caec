package postgres_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/textil-erp/internal/application/dto"
	"github.com/jhoicas/textil-erp/internal/application/inventory"
	"github.com/jhoicas/textil-erp/internal/application/purchasing"
	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
	"github.com/jhoicas/textil-erp/internal/infrastructure/postgres"
	"github.com/jhoicas/textil-erp/pkg/config"
)

// Las pruebas contra PostgreSQL real solo corren con TEST_DATABASE_URL (o en un .env de la raíz).
func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../../.env")
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url, MaxConns: 10})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = postgres.Migrate(ctx, pool, zerolog.Nop())
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `TRUNCATE inventory_movements, purchase_order_items, purchase_orders,
		sales_order_items, sales_orders, production_order_items, production_orders,
		order_sequences, materials, products, suppliers, customers, users CASCADE`)
	require.NoError(t, err)
	return pool
}

type seed struct {
	userID, supplierID, materialID string
}

func seedCatalog(t *testing.T, r repository.Repos) seed {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()
	s := seed{userID: uuid.NewString(), supplierID: uuid.NewString(), materialID: uuid.NewString()}
	require.NoError(t, r.Users.Create(ctx, &entity.User{ID: s.userID, Email: "bodega@textil.co", PasswordHash: "x", Name: "Bodega", Role: entity.RoleBodeguero, Status: entity.UserStatusActive, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, r.Suppliers.Create(ctx, &entity.Supplier{ID: s.supplierID, Name: "Hilados", IsActive: true, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, r.Materials.Create(ctx, &entity.Material{ID: s.materialID, SKU: "HIL-001", Name: "Hilo", Unit: "kg", IsActive: true, CreatedAt: now, UpdatedAt: now}))
	return s
}

func TestIntegration_MigrateIsIdempotent(t *testing.T) {
	pool := setupDB(t)
	n, err := postgres.Migrate(context.Background(), pool, zerolog.Nop())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestIntegration_PurchaseReceiveAndConcurrentConsumption(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	repos := postgres.NewRepos(pool)
	tx := postgres.NewTxRunner(pool)
	s := seedCatalog(t, repos)

	ledger := inventory.NewLedger(repos, tx, nil, zerolog.Nop())
	uc := purchasing.NewUseCase(repos, tx, ledger, nil, nil, zerolog.Nop())

	po, err := uc.Create(ctx, s.userID, dto.CreatePurchaseOrderRequest{
		SupplierID: s.supplierID,
		Items:      []dto.PurchaseItemRequest{{MaterialID: s.materialID, Quantity: decimal.NewFromInt(50), UnitPrice: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "OC-000001", po.OrderNumber)
	assert.True(t, po.TotalAmount.Equal(decimal.NewFromInt(500)))

	_, err = uc.UpdateStatus(ctx, s.userID, po.ID, dto.UpdatePurchaseStatusRequest{Status: "RECEIVED"})
	require.NoError(t, err)
	// repetir RECEIVED no vuelve a sumar
	_, err = uc.UpdateStatus(ctx, s.userID, po.ID, dto.UpdatePurchaseStatusRequest{Status: "RECEIVED"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok, short := 0, 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.ApplyMovement(ctx, inventory.MovementInput{
				MaterialID: s.materialID, Type: entity.MovementTypeOUT, Quantity: decimal.NewFromInt(10),
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if assert.ErrorIs(t, err, domain.ErrInsufficientStock) {
				short++
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 5, ok)
	assert.Equal(t, 5, short)

	m, err := repos.Materials.GetByID(ctx, s.materialID)
	require.NoError(t, err)
	assert.True(t, m.CurrentStock.IsZero(), "stock=%s", m.CurrentStock)

	check, err := ledger.Check(ctx, s.materialID)
	require.NoError(t, err)
	assert.True(t, check.Consistent)
}

func TestIntegration_RollbackRestoresSequenceAndStock(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	repos := postgres.NewRepos(pool)
	tx := postgres.NewTxRunner(pool)
	s := seedCatalog(t, repos)

	err := tx.Run(ctx, func(r repository.Repos) error {
		if _, err := r.Sequences.Next(ctx, repository.SeqSales); err != nil {
			return err
		}
		if err := r.Materials.IncrementStock(ctx, s.materialID, decimal.NewFromInt(7)); err != nil {
			return err
		}
		return domain.ErrInvalidInput
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	n, err := repos.Sequences.Next(ctx, repository.SeqSales)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	m, err := repos.Materials.GetByID(ctx, s.materialID)
	require.NoError(t, err)
	assert.True(t, m.CurrentStock.IsZero())
}

func TestIntegration_DecrementStockGuard(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	repos := postgres.NewRepos(pool)
	s := seedCatalog(t, repos)

	require.NoError(t, repos.Materials.IncrementStock(ctx, s.materialID, decimal.RequireFromString("2.5")))
	ok, err := repos.Materials.DecrementStock(ctx, s.materialID, decimal.NewFromInt(3))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repos.Materials.DecrementStock(ctx, s.materialID, decimal.RequireFromString("2.5"))
	require.NoError(t, err)
	assert.True(t, ok)

	missing, err := repos.Materials.GetByID(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestIntegration_ItemsKeepOrderAndExactTotals(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	repos := postgres.NewRepos(pool)
	tx := postgres.NewTxRunner(pool)
	s := seedCatalog(t, repos)

	now := time.Now().UTC()
	extra := []string{uuid.NewString(), uuid.NewString()}
	for _, id := range extra {
		require.NoError(t, repos.Materials.Create(ctx, &entity.Material{ID: id, SKU: "BOT-" + id[:8], Name: "Botón", Unit: "un", IsActive: true, CreatedAt: now, UpdatedAt: now}))
	}
	ordered := []string{extra[1], s.materialID, extra[0]}

	ledger := inventory.NewLedger(repos, tx, nil, zerolog.Nop())
	uc := purchasing.NewUseCase(repos, tx, ledger, nil, nil, zerolog.Nop())
	items := make([]dto.PurchaseItemRequest, 0, len(ordered))
	for _, id := range ordered {
		items = append(items, dto.PurchaseItemRequest{MaterialID: id, Quantity: decimal.RequireFromString("1.2345"), UnitPrice: decimal.RequireFromString("3.3333")})
	}
	po, err := uc.Create(ctx, s.userID, dto.CreatePurchaseOrderRequest{SupplierID: s.supplierID, Items: items})
	require.NoError(t, err)

	got, err := uc.Get(ctx, po.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 3)
	for i, id := range ordered {
		assert.Equal(t, id, got.Items[i].MaterialID, "línea %d", i+1)
		assert.True(t, got.Items[i].TotalPrice.Equal(decimal.RequireFromString("4.11495885")))
	}
	assert.True(t, got.TotalAmount.Equal(decimal.RequireFromString("12.34487655")))

	_, err = uc.UpdateStatus(ctx, s.userID, po.ID, dto.UpdatePurchaseStatusRequest{Status: "RECEIVED"})
	require.NoError(t, err)
	for _, id := range ordered {
		check, err := ledger.Check(ctx, id)
		require.NoError(t, err)
		assert.True(t, check.Consistent)
	}
}
