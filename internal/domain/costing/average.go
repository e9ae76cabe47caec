// Package costing calcula el costo unitario de materiales a partir de sus entradas.
package costing

import "github.com/shopspring/decimal"

// costPlaces decimales del costo promedio; igual que NUMERIC(18,4) en materials.cost_price.
const costPlaces = 4

// WeightedAverage devuelve el costo promedio ponderado tras una entrada:
//
//	((stock * costo) + (cantidad * costoEntrada)) / (stock + cantidad)
//
// Con stock negativo o cero (no debería ocurrir) el costo de la entrada reemplaza al actual.
func WeightedAverage(stock, cost, qty, unitCost decimal.Decimal) decimal.Decimal {
	if !stock.IsPositive() {
		return unitCost
	}
	total := stock.Add(qty)
	if !total.IsPositive() {
		return cost
	}
	return stock.Mul(cost).Add(qty.Mul(unitCost)).DivRound(total, costPlaces)
}
