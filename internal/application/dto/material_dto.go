package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaterialRequest entrada para crear un material (materia prima). El stock inicia en 0.
type CreateMaterialRequest struct {
	SKU         string          `json:"sku" validate:"required,min=1,max=100"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description"`
	CategoryID  string          `json:"category_id" validate:"omitempty,max=100"`
	SupplierID  *string         `json:"supplier_id" validate:"omitempty,uuid"`
	Unit        string          `json:"unit" validate:"required,max=20"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	MinStock    decimal.Decimal `json:"min_stock"`
	MaxStock    decimal.Decimal `json:"max_stock"`
}

// UpdateMaterialRequest entrada para actualizar un material (sin stock).
type UpdateMaterialRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,max=100"`
	SupplierID  *string          `json:"supplier_id" validate:"omitempty,uuid"`
	Unit        *string          `json:"unit" validate:"omitempty,max=20"`
	CostPrice   *decimal.Decimal `json:"cost_price"`
	MinStock    *decimal.Decimal `json:"min_stock"`
	MaxStock    *decimal.Decimal `json:"max_stock"`
	IsActive    *bool            `json:"is_active"`
}

// MaterialResponse salida de un material.
type MaterialResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	CategoryID   string          `json:"category_id"`
	SupplierID   *string         `json:"supplier_id"`
	Unit         string          `json:"unit"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	MaxStock     decimal.Decimal `json:"max_stock"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// MaterialListResponse lista paginada de materiales.
type MaterialListResponse struct {
	Items []MaterialResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// MaterialListQuery filtros de GET /api/materials.
type MaterialListQuery struct {
	Search     string `query:"search"`
	CategoryID string `query:"category_id"`
	SupplierID string `query:"supplier_id" validate:"omitempty,uuid"`
	ActiveOnly bool   `query:"active_only"`
	LowStock   bool   `query:"low_stock"`
	PageRequest
}
