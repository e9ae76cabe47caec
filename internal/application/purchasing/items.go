package purchasing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/textil-erp/internal/application/dto"
	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/domain/order"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

func validateItems(items []dto.PurchaseItemRequest) error {
	if len(items) == 0 {
		return domain.Invalid("la orden debe tener al menos un ítem")
	}
	for i, it := range items {
		if it.MaterialID == "" {
			return domain.Invalid("ítem %d: material_id requerido", i+1)
		}
		if !it.Quantity.IsPositive() {
			return domain.Invalid("ítem %d: la cantidad debe ser mayor que cero", i+1)
		}
		if it.UnitPrice.IsNegative() {
			return domain.Invalid("ítem %d: el precio no puede ser negativo", i+1)
		}
		if err := checkLineScale(i, it.Quantity, it.UnitPrice); err != nil {
			return err
		}
	}
	return nil
}

func checkLineScale(i int, qty, price decimal.Decimal) error {
	if err := domain.CheckScale(fmt.Sprintf("ítem %d: quantity", i+1), qty); err != nil {
		return err
	}
	return domain.CheckScale(fmt.Sprintf("ítem %d: unit_price", i+1), price)
}

func checkMaterials(ctx context.Context, r repository.Repos, items []dto.PurchaseItemRequest) error {
	for _, it := range items {
		m, err := r.Materials.GetByID(ctx, it.MaterialID)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrMaterialNotFound
		}
	}
	return nil
}

// buildItems arma los ítems con su total por línea y devuelve el total de la orden.
func buildItems(orderID string, in []dto.PurchaseItemRequest) ([]entity.PurchaseItem, decimal.Decimal) {
	items := make([]entity.PurchaseItem, 0, len(in))
	lines := make([]order.Line, 0, len(in))
	for _, it := range in {
		items = append(items, entity.PurchaseItem{
			ID:         uuid.New().String(),
			OrderID:    orderID,
			MaterialID: it.MaterialID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: order.LineTotal(it.Quantity, it.UnitPrice),
		})
		lines = append(lines, order.Line{Quantity: it.Quantity, Price: it.UnitPrice})
	}
	return items, order.Total(lines)
}

// ToResponse convierte la entidad a DTO.
func ToResponse(o *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	items := make([]dto.PurchaseItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.PurchaseItemResponse{
			ID:         it.ID,
			MaterialID: it.MaterialID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
		})
	}
	return &dto.PurchaseOrderResponse{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		SupplierID:   o.SupplierID,
		UserID:       o.UserID,
		Status:       string(o.Status),
		OrderDate:    o.OrderDate,
		ExpectedDate: o.ExpectedDate,
		ReceivedDate: o.ReceivedDate,
		Notes:        o.Notes,
		TotalAmount:  o.TotalAmount,
		Items:        items,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}
