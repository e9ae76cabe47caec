package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseStatus estado de una orden de compra.
type PurchaseStatus string

// Estados de la orden de compra. RECEIVED es terminal y suma stock.
const (
	PurchaseStatusPending   PurchaseStatus = "PENDING"
	PurchaseStatusApproved  PurchaseStatus = "APPROVED"
	PurchaseStatusReceived  PurchaseStatus = "RECEIVED"
	PurchaseStatusCancelled PurchaseStatus = "CANCELLED"
)

// PurchaseOrder orden de compra a proveedor (prefijo OC-).
type PurchaseOrder struct {
	ID           string
	OrderNumber  string
	SupplierID   string
	UserID       string
	Status       PurchaseStatus
	OrderDate    time.Time
	ExpectedDate *time.Time
	ReceivedDate *time.Time
	Notes        string
	TotalAmount  decimal.Decimal
	Items        []PurchaseItem
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PurchaseItem línea de la orden de compra.
type PurchaseItem struct {
	ID         string
	OrderID    string
	MaterialID string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
}

// Locked indica si la orden ya no admite edición ni borrado.
func (o *PurchaseOrder) Locked() bool {
	return o.Status == PurchaseStatusReceived
}
