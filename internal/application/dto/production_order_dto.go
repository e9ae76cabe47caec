package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionItemRequest insumo (material_id) o salida (product_id, is_output=true).
type ProductionItemRequest struct {
	MaterialID *string         `json:"material_id" validate:"omitempty,uuid"`
	ProductID  *string         `json:"product_id" validate:"omitempty,uuid"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	IsOutput   *bool           `json:"is_output"`
}

// CreateProductionOrderRequest body de POST /api/production-orders.
type CreateProductionOrderRequest struct {
	SalesOrderID *string                 `json:"sales_order_id" validate:"omitempty,uuid"`
	Priority     string                  `json:"priority" validate:"omitempty,oneof=LOW NORMAL HIGH URGENT"`
	StartDate    *time.Time              `json:"start_date"`
	EndDate      *time.Time              `json:"end_date"`
	Notes        string                  `json:"notes" validate:"max=1000"`
	Items        []ProductionItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateProductionOrderRequest body de PUT /api/production-orders/:id.
type UpdateProductionOrderRequest struct {
	Priority  *string                 `json:"priority" validate:"omitempty,oneof=LOW NORMAL HIGH URGENT"`
	StartDate *time.Time              `json:"start_date"`
	EndDate   *time.Time              `json:"end_date"`
	Notes     *string                 `json:"notes" validate:"omitempty,max=1000"`
	Items     []ProductionItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateProductionStatusRequest body de PATCH /api/production-orders/:id/status.
type UpdateProductionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
}

// ProductionItemResponse línea de respuesta.
type ProductionItemResponse struct {
	ID         string          `json:"id"`
	MaterialID *string         `json:"material_id,omitempty"`
	ProductID  *string         `json:"product_id,omitempty"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	TotalCost  decimal.Decimal `json:"total_cost"`
	IsOutput   bool            `json:"is_output"`
}

// ProductionOrderResponse salida de una orden de producción.
type ProductionOrderResponse struct {
	ID            string                   `json:"id"`
	OrderNumber   string                   `json:"order_number"`
	SalesOrderID  *string                  `json:"sales_order_id,omitempty"`
	UserID        string                   `json:"user_id"`
	Priority      string                   `json:"priority"`
	Status        string                   `json:"status"`
	StartDate     *time.Time               `json:"start_date,omitempty"`
	EndDate       *time.Time               `json:"end_date,omitempty"`
	CompletedDate *time.Time               `json:"completed_date,omitempty"`
	Notes         string                   `json:"notes"`
	TotalCost     decimal.Decimal          `json:"total_cost"`
	Items         []ProductionItemResponse `json:"items"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

// ProductionOrderListResponse lista paginada.
type ProductionOrderListResponse struct {
	Items []ProductionOrderResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}

// ProductionOrderListQuery filtros de GET /api/production-orders.
type ProductionOrderListQuery struct {
	SalesOrderID string `query:"sales_order_id" validate:"omitempty,uuid"`
	Status       string `query:"status" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
	Priority     string `query:"priority" validate:"omitempty,oneof=LOW NORMAL HIGH URGENT"`
	PageRequest
}
