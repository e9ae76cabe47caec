package repository

import (
	"time"

	"github.com/jhoicas/textil-erp/internal/domain/entity"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// Page paginación común a todos los listados.
type Page struct {
	Limit  int
	Offset int
}

// Normalize aplica límite por defecto y tope.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// MaterialFilter filtro tipado para listar materiales.
type MaterialFilter struct {
	Search     string // coincide con SKU o nombre
	CategoryID string
	SupplierID string
	ActiveOnly bool
	LowStock   bool // current_stock <= min_stock
	Page
}

// ProductFilter filtro tipado para listar productos.
type ProductFilter struct {
	Search     string
	ActiveOnly bool
	LowStock   bool
	Page
}

// MovementFilter filtro del libro de movimientos.
type MovementFilter struct {
	MaterialID string
	Type       entity.MovementType
	Reference  string
	From       *time.Time
	To         *time.Time
	Page
}

// PartyFilter filtro para proveedores y clientes.
type PartyFilter struct {
	Search     string
	ActiveOnly bool
	Page
}

// PurchaseOrderFilter filtro de órdenes de compra.
type PurchaseOrderFilter struct {
	SupplierID string
	Status     entity.PurchaseStatus
	From       *time.Time
	To         *time.Time
	Page
}

// SalesOrderFilter filtro de órdenes de venta.
type SalesOrderFilter struct {
	CustomerID string
	Status     entity.SalesStatus
	From       *time.Time
	To         *time.Time
	Page
}

// ProductionOrderFilter filtro de órdenes de producción.
type ProductionOrderFilter struct {
	SalesOrderID string
	Status       entity.ProductionStatus
	Priority     entity.Priority
	Page
}
