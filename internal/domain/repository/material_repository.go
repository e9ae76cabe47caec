package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/textil-erp/internal/domain/entity"
)

// MaterialRepository define el puerto de persistencia para Material (DIP).
// El stock solo se modifica con IncrementStock/DecrementStock, que usa el libro de inventario.
type MaterialRepository interface {
	Create(ctx context.Context, m *entity.Material) error
	GetByID(ctx context.Context, id string) (*entity.Material, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Material, error)
	// Update persiste datos de catálogo; ignora CurrentStock.
	Update(ctx context.Context, m *entity.Material) error
	// Deactivate es el borrado lógico.
	Deactivate(ctx context.Context, id string) error
	List(ctx context.Context, f MaterialFilter) ([]*entity.Material, error)
	IncrementStock(ctx context.Context, id string, qty decimal.Decimal) error
	// DecrementStock resta solo si current_stock >= qty; false si no alcanzó.
	DecrementStock(ctx context.Context, id string, qty decimal.Decimal) (bool, error)
}
