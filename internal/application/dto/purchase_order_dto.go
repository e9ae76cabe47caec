package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseItemRequest línea de una orden de compra.
type PurchaseItemRequest struct {
	MaterialID string          `json:"material_id" validate:"required,uuid"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseOrderRequest body de POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	SupplierID   string                `json:"supplier_id" validate:"required,uuid"`
	ExpectedDate *time.Time            `json:"expected_date"`
	Notes        string                `json:"notes" validate:"max=1000"`
	Items        []PurchaseItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdatePurchaseOrderRequest body de PUT /api/purchase-orders/:id. Los ítems se reemplazan completos.
type UpdatePurchaseOrderRequest struct {
	ExpectedDate *time.Time            `json:"expected_date"`
	Notes        *string               `json:"notes" validate:"omitempty,max=1000"`
	Items        []PurchaseItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdatePurchaseStatusRequest body de PATCH /api/purchase-orders/:id/status.
type UpdatePurchaseStatusRequest struct {
	Status       string     `json:"status" validate:"required,oneof=PENDING APPROVED RECEIVED CANCELLED"`
	ReceivedDate *time.Time `json:"received_date"`
}

// PurchaseItemResponse línea de respuesta.
type PurchaseItemResponse struct {
	ID         string          `json:"id"`
	MaterialID string          `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// PurchaseOrderResponse salida de una orden de compra.
type PurchaseOrderResponse struct {
	ID           string                 `json:"id"`
	OrderNumber  string                 `json:"order_number"`
	SupplierID   string                 `json:"supplier_id"`
	UserID       string                 `json:"user_id"`
	Status       string                 `json:"status"`
	OrderDate    time.Time              `json:"order_date"`
	ExpectedDate *time.Time             `json:"expected_date,omitempty"`
	ReceivedDate *time.Time             `json:"received_date,omitempty"`
	Notes        string                 `json:"notes"`
	TotalAmount  decimal.Decimal        `json:"total_amount"`
	Items        []PurchaseItemResponse `json:"items"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// PurchaseOrderListResponse lista paginada.
type PurchaseOrderListResponse struct {
	Items []PurchaseOrderResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// PurchaseOrderListQuery filtros de GET /api/purchase-orders.
type PurchaseOrderListQuery struct {
	SupplierID string     `query:"supplier_id" validate:"omitempty,uuid"`
	Status     string     `query:"status" validate:"omitempty,oneof=PENDING APPROVED RECEIVED CANCELLED"`
	From       *time.Time `query:"-"`
	To         *time.Time `query:"-"`
	PageRequest
}
