package dto

import "time"

// CreatePartyRequest entrada para crear un proveedor o cliente.
type CreatePartyRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	TaxID string `json:"tax_id" validate:"omitempty,max=50"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"omitempty,max=50"`
}

// PartyResponse salida de proveedor o cliente.
type PartyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PartyListResponse lista paginada.
type PartyListResponse struct {
	Items []PartyResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// PartyListQuery filtros para proveedores y clientes.
type PartyListQuery struct {
	Search     string `query:"search"`
	ActiveOnly bool   `query:"active_only"`
	PageRequest
}
