package domain

import "github.com/shopspring/decimal"

// Scale decimales que guardan las columnas NUMERIC(18, 4) de cantidades, costos y precios.
const Scale = 4

// CheckScale rechaza valores con más decimales de los almacenables; si no, PostgreSQL
// redondearía la fila del libro y el contador por separado.
func CheckScale(field string, v decimal.Decimal) error {
	if !v.Equal(v.Truncate(Scale)) {
		return Invalid("%s admite como máximo %d decimales", field, Scale)
	}
	return nil
}
