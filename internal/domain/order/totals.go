// Package order agrupa la lógica pura compartida por las órdenes de compra, venta y
// producción: cálculo de totales y máquinas de estado.
package order

import "github.com/shopspring/decimal"

// Line es una línea de orden reducida a lo que interesa para totalizar.
type Line struct {
	Quantity decimal.Decimal
	Price    decimal.Decimal
}

// LineTotal devuelve quantity × price sin redondeo.
func LineTotal(quantity, price decimal.Decimal) decimal.Decimal {
	return quantity.Mul(price)
}

// Total suma quantity × price de todas las líneas. Una lista vacía da cero.
func Total(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(LineTotal(l.Quantity, l.Price))
	}
	return total
}
