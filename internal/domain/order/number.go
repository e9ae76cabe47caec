package order

import "fmt"

// FormatNumber arma el número visible de la orden: prefijo, guion y seis dígitos (OC-000001).
func FormatNumber(prefix string, n int64) string {
	return fmt.Sprintf("%s-%06d", prefix, n)
}

// NumberLess compara números del mismo prefijo por su valor: pasado 999999 el número
// crece en dígitos y la comparación de texto sola lo ordenaría antes.
func NumberLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
