package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/textil-erp/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// Update persiste datos de catálogo; ignora CurrentStock.
	Update(ctx context.Context, p *entity.Product) error
	Deactivate(ctx context.Context, id string) error
	List(ctx context.Context, f ProductFilter) ([]*entity.Product, error)
	IncrementStock(ctx context.Context, id string, qty decimal.Decimal) error
	// DecrementStock resta solo si current_stock >= qty; false si no alcanzó.
	DecrementStock(ctx context.Context, id string, qty decimal.Decimal) (bool, error)
}
