package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material representa una materia prima (hilo, tela cruda, tinte, etc.).
// CurrentStock solo cambia vía movimientos de inventario (Stock Ledger).
type Material struct {
	ID           string
	SKU          string // único
	Name         string
	Description  string
	CategoryID   string
	SupplierID   *string // proveedor habitual, opcional
	Unit         string  // kg, m, un...
	CostPrice    decimal.Decimal
	CurrentStock decimal.Decimal
	MinStock     decimal.Decimal
	MaxStock     decimal.Decimal
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
