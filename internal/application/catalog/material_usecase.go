// Package catalog contiene el CRUD de materiales, productos, proveedores y clientes.
// Ninguna operación de este paquete modifica stock.
package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/textil-erp/internal/application/dto"
	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

// MaterialUseCase casos de uso CRUD para materiales. El stock se maneja vía movimientos.
type MaterialUseCase struct {
	repo      repository.MaterialRepository
	suppliers repository.SupplierRepository
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(repo repository.MaterialRepository, suppliers repository.SupplierRepository) *MaterialUseCase {
	return &MaterialUseCase{repo: repo, suppliers: suppliers}
}

// Create crea un material con stock 0.
func (uc *MaterialUseCase) Create(ctx context.Context, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	existing, err := uc.repo.GetBySKU(ctx, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := checkLevels(in.CostPrice, in.MinStock, in.MaxStock); err != nil {
		return nil, err
	}
	if err := uc.checkSupplier(ctx, in.SupplierID); err != nil {
		return nil, err
	}
	now := time.Now()
	m := &entity.Material{
		ID:           uuid.New().String(),
		SKU:          in.SKU,
		Name:         in.Name,
		Description:  in.Description,
		CategoryID:   in.CategoryID,
		SupplierID:   in.SupplierID,
		Unit:         in.Unit,
		CostPrice:    in.CostPrice,
		CurrentStock: decimal.Zero,
		MinStock:     in.MinStock,
		MaxStock:     in.MaxStock,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return toMaterialResponse(m), nil
}

// GetByID obtiene un material.
func (uc *MaterialUseCase) GetByID(ctx context.Context, id string) (*dto.MaterialResponse, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrMaterialNotFound
	}
	return toMaterialResponse(m), nil
}

// Update actualiza datos de catálogo; current_stock no se toca.
func (uc *MaterialUseCase) Update(ctx context.Context, id string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrMaterialNotFound
	}
	if in.Name != nil {
		m.Name = *in.Name
	}
	if in.Description != nil {
		m.Description = *in.Description
	}
	if in.CategoryID != nil {
		m.CategoryID = *in.CategoryID
	}
	if in.SupplierID != nil {
		if err := uc.checkSupplier(ctx, in.SupplierID); err != nil {
			return nil, err
		}
		m.SupplierID = in.SupplierID
	}
	if in.Unit != nil {
		m.Unit = *in.Unit
	}
	if in.CostPrice != nil {
		m.CostPrice = *in.CostPrice
	}
	if in.MinStock != nil {
		m.MinStock = *in.MinStock
	}
	if in.MaxStock != nil {
		m.MaxStock = *in.MaxStock
	}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}
	if err := checkLevels(m.CostPrice, m.MinStock, m.MaxStock); err != nil {
		return nil, err
	}
	m.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return toMaterialResponse(m), nil
}

// List lista materiales con filtro tipado.
func (uc *MaterialUseCase) List(ctx context.Context, f repository.MaterialFilter) (*dto.MaterialListResponse, error) {
	f.Page = f.Page.Normalize()
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMaterialResponse(m))
	}
	return &dto.MaterialListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}, nil
}

// Delete desactiva el material (borrado lógico: el libro lo sigue referenciando).
func (uc *MaterialUseCase) Delete(ctx context.Context, id string) error {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrMaterialNotFound
	}
	return uc.repo.Deactivate(ctx, id)
}

func (uc *MaterialUseCase) checkSupplier(ctx context.Context, id *string) error {
	if id == nil || *id == "" {
		return nil
	}
	s, err := uc.suppliers.GetByID(ctx, *id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrSupplierNotFound
	}
	return nil
}

// checkLevels valida precio y niveles de stock mínimos/máximos.
func checkLevels(price, minStock, maxStock decimal.Decimal) error {
	if price.IsNegative() {
		return domain.Invalid("el precio no puede ser negativo")
	}
	if minStock.IsNegative() || maxStock.IsNegative() {
		return domain.Invalid("los niveles de stock no pueden ser negativos")
	}
	if maxStock.IsPositive() && maxStock.LessThan(minStock) {
		return domain.Invalid("max_stock menor que min_stock")
	}
	for _, v := range []decimal.Decimal{price, minStock, maxStock} {
		if err := domain.CheckScale("precio y niveles de stock", v); err != nil {
			return err
		}
	}
	return nil
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	return &dto.MaterialResponse{
		ID:           m.ID,
		SKU:          m.SKU,
		Name:         m.Name,
		Description:  m.Description,
		CategoryID:   m.CategoryID,
		SupplierID:   m.SupplierID,
		Unit:         m.Unit,
		CostPrice:    m.CostPrice,
		CurrentStock: m.CurrentStock,
		MinStock:     m.MinStock,
		MaxStock:     m.MaxStock,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
