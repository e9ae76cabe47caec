package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DocumentLine fila de la tabla de un documento de orden.
type DocumentLine struct {
	Quantity    decimal.Decimal
	Unit        string
	Description string
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// OrderDocument datos ya resueltos (nombres, no IDs) para imprimir una orden.
type OrderDocument struct {
	Title      string // "ORDEN DE COMPRA", "ORDEN DE VENTA"
	Number     string
	Status     string
	Date       time.Time
	DueLabel   string // "Entrega esperada", "Fecha de entrega"
	DueDate    *time.Time
	PartyLabel string // "PROVEEDOR", "CLIENTE"
	PartyName  string
	PartyTaxID string
	PartyEmail string
	PartyPhone string
	Lines      []DocumentLine
	Total      decimal.Decimal
	Notes      string
	QRData     string // se imprime como código QR si no está vacío
	IssuerName string
}

// OrderPDFRenderer genera el PDF de una orden.
type OrderPDFRenderer interface {
	RenderOrder(ctx context.Context, doc OrderDocument) ([]byte, error)
}
