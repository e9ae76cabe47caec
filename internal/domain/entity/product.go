package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto terminado (prenda, rollo teñido...).
// CurrentStock cambia con la entrega de ventas y la salida de producción; nunca por CRUD.
type Product struct {
	ID           string
	SKU          string // único
	Name         string
	Description  string
	Unit         string
	SalePrice    decimal.Decimal // precio de venta
	CurrentStock decimal.Decimal
	MinStock     decimal.Decimal
	MaxStock     decimal.Decimal
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
