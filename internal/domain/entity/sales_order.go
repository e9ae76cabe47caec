package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesStatus estado de una orden de venta.
type SalesStatus string

// Estados de la orden de venta. DELIVERED es terminal y descuenta stock de producto.
const (
	SalesStatusPending      SalesStatus = "PENDING"
	SalesStatusConfirmed    SalesStatus = "CONFIRMED"
	SalesStatusInProduction SalesStatus = "IN_PRODUCTION"
	SalesStatusReady        SalesStatus = "READY"
	SalesStatusDelivered    SalesStatus = "DELIVERED"
	SalesStatusCancelled    SalesStatus = "CANCELLED"
)

// SalesOrder orden de venta a cliente (prefijo OV-).
type SalesOrder struct {
	ID           string
	OrderNumber  string
	CustomerID   string
	UserID       string
	Status       SalesStatus
	OrderDate    time.Time
	DeliveryDate *time.Time
	Notes        string
	TotalAmount  decimal.Decimal
	Items        []SalesItem
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SalesItem línea de la orden de venta.
type SalesItem struct {
	ID         string
	OrderID    string
	ProductID  string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
}

// Locked indica si la orden ya fue entregada.
func (o *SalesOrder) Locked() bool {
	return o.Status == SalesStatusDelivered
}
