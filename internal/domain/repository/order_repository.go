package repository

import (
	"context"

	"github.com/jhoicas/textil-erp/internal/domain/entity"
)

// Los repositorios de órdenes cargan siempre los ítems junto con la cabecera.
// GetForUpdate bloquea la fila de la orden hasta el fin de la transacción.

// PurchaseOrderRepository persistencia de órdenes de compra.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, o *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	// Update persiste cabecera (estado, fechas, notas, total); no toca ítems.
	Update(ctx context.Context, o *entity.PurchaseOrder) error
	ReplaceItems(ctx context.Context, orderID string, items []entity.PurchaseItem) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f PurchaseOrderFilter) ([]*entity.PurchaseOrder, error)
}

// SalesOrderRepository persistencia de órdenes de venta.
type SalesOrderRepository interface {
	Create(ctx context.Context, o *entity.SalesOrder) error
	GetByID(ctx context.Context, id string) (*entity.SalesOrder, error)
	GetForUpdate(ctx context.Context, id string) (*entity.SalesOrder, error)
	Update(ctx context.Context, o *entity.SalesOrder) error
	ReplaceItems(ctx context.Context, orderID string, items []entity.SalesItem) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f SalesOrderFilter) ([]*entity.SalesOrder, error)
}

// ProductionOrderRepository persistencia de órdenes de producción.
type ProductionOrderRepository interface {
	Create(ctx context.Context, o *entity.ProductionOrder) error
	GetByID(ctx context.Context, id string) (*entity.ProductionOrder, error)
	GetForUpdate(ctx context.Context, id string) (*entity.ProductionOrder, error)
	Update(ctx context.Context, o *entity.ProductionOrder) error
	ReplaceItems(ctx context.Context, orderID string, items []entity.ProductionItem) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ProductionOrderFilter) ([]*entity.ProductionOrder, error)
}
