package repository

import "context"

// Repos agrupa los repositorios ligados a una misma conexión o transacción.
type Repos struct {
	Materials  MaterialRepository
	Products   ProductRepository
	Movements  InventoryMovementRepository
	Purchases  PurchaseOrderRepository
	Sales      SalesOrderRepository
	Production ProductionOrderRepository
	Suppliers  SupplierRepository
	Customers  CustomerRepository
	Users      UserRepository
	Sequences  SequenceRepository
}

// TxRunner ejecuta fn dentro de una transacción: commit si fn devuelve nil, rollback en otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
