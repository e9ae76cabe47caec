package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionStatus estado de una orden de producción.
type ProductionStatus string

// Estados de la orden de producción. COMPLETED es terminal: consume insumos y produce salidas.
const (
	ProductionStatusPending    ProductionStatus = "PENDING"
	ProductionStatusInProgress ProductionStatus = "IN_PROGRESS"
	ProductionStatusCompleted  ProductionStatus = "COMPLETED"
	ProductionStatusCancelled  ProductionStatus = "CANCELLED"
)

// Priority prioridad de la orden de producción.
type Priority string

// Prioridades válidas.
const (
	PriorityLow    Priority = "LOW"
	PriorityNormal Priority = "NORMAL"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// Valid indica si la prioridad es conocida.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ProductionOrder orden de producción (prefijo OP-), opcionalmente ligada a una venta.
type ProductionOrder struct {
	ID            string
	OrderNumber   string
	SalesOrderID  *string
	UserID        string
	Priority      Priority
	Status        ProductionStatus
	StartDate     *time.Time
	EndDate       *time.Time
	CompletedDate *time.Time
	Notes         string
	TotalCost     decimal.Decimal
	Items         []ProductionItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProductionItem es un insumo (MaterialID, IsOutput=false) o una salida (ProductID, IsOutput=true).
type ProductionItem struct {
	ID         string
	OrderID    string
	MaterialID *string
	ProductID  *string
	Quantity   decimal.Decimal
	UnitCost   decimal.Decimal
	TotalCost  decimal.Decimal
	IsOutput   bool
}

// Locked indica si la orden ya fue completada.
func (o *ProductionOrder) Locked() bool {
	return o.Status == ProductionStatusCompleted
}

// Inputs devuelve los ítems que consumen material.
func (o *ProductionOrder) Inputs() []ProductionItem {
	var out []ProductionItem
	for _, it := range o.Items {
		if !it.IsOutput {
			out = append(out, it)
		}
	}
	return out
}

// Outputs devuelve los ítems que producen producto terminado.
func (o *ProductionOrder) Outputs() []ProductionItem {
	var out []ProductionItem
	for _, it := range o.Items {
		if it.IsOutput {
			out = append(out, it)
		}
	}
	return out
}
