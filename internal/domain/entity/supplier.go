package entity

import "time"

// Supplier representa un proveedor de materias primas.
type Supplier struct {
	ID        string
	Name      string
	TaxID     string // NIT
	Email     string
	Phone     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
