package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesItemRequest línea de una orden de venta.
type SalesItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateSalesOrderRequest body de POST /api/sales-orders.
type CreateSalesOrderRequest struct {
	CustomerID   string             `json:"customer_id" validate:"required,uuid"`
	DeliveryDate *time.Time         `json:"delivery_date"`
	Notes        string             `json:"notes" validate:"max=1000"`
	Items        []SalesItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateSalesOrderRequest body de PUT /api/sales-orders/:id.
type UpdateSalesOrderRequest struct {
	DeliveryDate *time.Time         `json:"delivery_date"`
	Notes        *string            `json:"notes" validate:"omitempty,max=1000"`
	Items        []SalesItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateSalesStatusRequest body de PATCH /api/sales-orders/:id/status.
type UpdateSalesStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED IN_PRODUCTION READY DELIVERED CANCELLED"`
}

// SalesItemResponse línea de respuesta.
type SalesItemResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// SalesOrderResponse salida de una orden de venta.
type SalesOrderResponse struct {
	ID           string              `json:"id"`
	OrderNumber  string              `json:"order_number"`
	CustomerID   string              `json:"customer_id"`
	UserID       string              `json:"user_id"`
	Status       string              `json:"status"`
	OrderDate    time.Time           `json:"order_date"`
	DeliveryDate *time.Time          `json:"delivery_date,omitempty"`
	Notes        string              `json:"notes"`
	TotalAmount  decimal.Decimal     `json:"total_amount"`
	Items        []SalesItemResponse `json:"items"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// SalesOrderListResponse lista paginada.
type SalesOrderListResponse struct {
	Items []SalesOrderResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// SalesOrderListQuery filtros de GET /api/sales-orders.
type SalesOrderListQuery struct {
	CustomerID string     `query:"customer_id" validate:"omitempty,uuid"`
	Status     string     `query:"status" validate:"omitempty,oneof=PENDING CONFIRMED IN_PRODUCTION READY DELIVERED CANCELLED"`
	From       *time.Time `query:"-"`
	To         *time.Time `query:"-"`
	PageRequest
}
