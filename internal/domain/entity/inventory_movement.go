package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo de movimiento de inventario de materiales.
type MovementType string

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         MovementType = "IN"         // entrada
	MovementTypeOUT        MovementType = "OUT"        // salida
	MovementTypeADJUSTMENT MovementType = "ADJUSTMENT" // ajuste positivo
	MovementTypeTRANSFER   MovementType = "TRANSFER"   // traslado (sale del stock contable)
)

// Valid indica si el tipo es uno de los conocidos.
func (t MovementType) Valid() bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypeADJUSTMENT, MovementTypeTRANSFER:
		return true
	}
	return false
}

// Inbound indica si el movimiento suma al stock.
func (t MovementType) Inbound() bool {
	return t == MovementTypeIN || t == MovementTypeADJUSTMENT
}

// InventoryMovement es una fila del libro de movimientos (append-only).
// Quantity siempre es positiva; el signo lo da Type.
type InventoryMovement struct {
	ID         string
	MaterialID string
	Type       MovementType
	Quantity   decimal.Decimal
	UnitCost   decimal.Decimal
	TotalCost  decimal.Decimal // Quantity * UnitCost, se guarda al insertar
	Reference  string          // p. ej. número de orden OC-000001
	CreatedAt  time.Time
}

// SignedQuantity devuelve la cantidad con signo según el tipo.
func (m *InventoryMovement) SignedQuantity() decimal.Decimal {
	if m.Type.Inbound() {
		return m.Quantity
	}
	return m.Quantity.Neg()
}
