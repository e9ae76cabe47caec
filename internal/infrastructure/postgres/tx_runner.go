package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Los errores de dominio que devuelva fn se propagan tal cual.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", domain.ErrTransactionFailed, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		if isRetryable(err) && !errors.Is(err, domain.ErrTransactionFailed) {
			return fmt.Errorf("%w: %v", domain.ErrTransactionFailed, err)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit: %v", domain.ErrTransactionFailed, err)
	}
	return nil
}

// NewRepos arma el juego de repositorios sobre un pool o una tx.
func NewRepos(q Querier) repository.Repos {
	return repository.Repos{
		Materials:  NewMaterialRepository(q),
		Products:   NewProductRepository(q),
		Movements:  NewInventoryMovementRepository(q),
		Purchases:  NewPurchaseOrderRepository(q),
		Sales:      NewSalesOrderRepository(q),
		Production: NewProductionOrderRepository(q),
		Suppliers:  NewSupplierRepository(q),
		Customers:  NewCustomerRepository(q),
		Users:      NewUserRepository(q),
		Sequences:  NewSequenceRepository(q),
	}
}
