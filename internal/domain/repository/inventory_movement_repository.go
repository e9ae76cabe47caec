package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/textil-erp/internal/domain/entity"
)

// InventoryMovementRepository libro append-only: no hay Update ni Delete.
type InventoryMovementRepository interface {
	Create(ctx context.Context, mv *entity.InventoryMovement) error
	List(ctx context.Context, f MovementFilter) ([]*entity.InventoryMovement, error)
	// SignedSum suma cantidades con signo (IN/ADJUSTMENT positivas, OUT/TRANSFER negativas).
	SignedSum(ctx context.Context, materialID string) (decimal.Decimal, error)
}
