package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMovementRequest body de POST /api/inventory/movements (ajustes y traslados manuales).
type CreateMovementRequest struct {
	MaterialID string          `json:"material_id" validate:"required,uuid"`
	Type       string          `json:"type" validate:"required,oneof=IN OUT ADJUSTMENT TRANSFER"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	Reference  string          `json:"reference" validate:"max=100"`
}

// MovementListQuery filtros de GET /api/inventory/movements.
type MovementListQuery struct {
	MaterialID string     `query:"material_id" validate:"omitempty,uuid"`
	Type       string     `query:"type" validate:"omitempty,oneof=IN OUT ADJUSTMENT TRANSFER"`
	Reference  string     `query:"reference"`
	From       *time.Time `query:"-"`
	To         *time.Time `query:"-"`
	PageRequest
}

// MovementResponse fila del libro de inventario.
type MovementResponse struct {
	ID         string          `json:"id"`
	MaterialID string          `json:"material_id"`
	Type       string          `json:"type"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	TotalCost  decimal.Decimal `json:"total_cost"`
	Reference  string          `json:"reference"`
	CreatedAt  time.Time       `json:"created_at"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// LedgerCheckResponse conciliación stock vs. suma del libro para un material.
type LedgerCheckResponse struct {
	MaterialID   string          `json:"material_id"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	LedgerSum    decimal.Decimal `json:"ledger_sum"`
	Consistent   bool            `json:"consistent"`
}
