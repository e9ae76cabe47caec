package production

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

// validateItems exige exactamente uno de material_id/product_id por ítem;
// is_output, si viene, debe coincidir con product_id.
func validateItems(items []dto.ProductionItemRequest) error {
	if len(items) == 0 {
		return domain.Invalid("la orden debe tener al menos un ítem")
	}
	for i, it := range items {
		hasMat := it.MaterialID != nil && *it.MaterialID != ""
		hasProd := it.ProductID != nil && *it.ProductID != ""
		if hasMat == hasProd {
			return domain.Invalid("ítem %d: debe indicar material_id o product_id, no ambos", i+1)
		}
		if it.IsOutput != nil && *it.IsOutput != hasProd {
			return domain.Invalid("ítem %d: is_output no coincide con el tipo de ítem", i+1)
		}
		if !it.Quantity.IsPositive() {
			return domain.Invalid("ítem %d: la cantidad debe ser mayor que cero", i+1)
		}
		if it.UnitCost.IsNegative() {
			return domain.Invalid("ítem %d: el costo no puede ser negativo", i+1)
		}
		if err := domain.CheckScale(fmt.Sprintf("ítem %d: quantity", i+1), it.Quantity); err != nil {
			return err
		}
		if err := domain.CheckScale(fmt.Sprintf("ítem %d: unit_cost", i+1), it.UnitCost); err != nil {
			return err
		}
	}
	return nil
}

// checkItems verifica que existan materiales y productos, y que los insumos tengan stock.
// Las salidas no se validan contra stock.
func checkItems(ctx context.Context, r repository.Repos, items []dto.ProductionItemRequest) error {
	for _, it := range items {
		if it.ProductID != nil && *it.ProductID != "" {
			p, err := r.Products.GetByID(ctx, *it.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.ErrProductNotFound
			}
			continue
		}
		m, err := r.Materials.GetByID(ctx, *it.MaterialID)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrMaterialNotFound
		}
		if m.CurrentStock.LessThan(it.Quantity) {
			return domain.NewInsufficientStock(m.Name, it.Quantity, m.CurrentStock)
		}
	}
	return nil
}

func buildItems(orderID string, in []dto.ProductionItemRequest) ([]entity.ProductionItem, decimal.Decimal) {
	items := make([]entity.ProductionItem, 0, len(in))
	lines := make([]order.Line, 0, len(in))
	for _, it := range in {
		item := entity.ProductionItem{
			ID:        uuid.New().String(),
			OrderID:   orderID,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
			TotalCost: order.LineTotal(it.Quantity, it.UnitCost),
		}
		if it.ProductID != nil && *it.ProductID != "" {
			id := *it.ProductID
			item.ProductID = &id
			item.IsOutput = true
		} else {
			id := *it.MaterialID
			item.MaterialID = &id
		}
		items = append(items, item)
		lines = append(lines, order.Line{Quantity: it.Quantity, Price: it.UnitCost})
	}
	return items, order.Total(lines)
}

// ToResponse convierte la entidad a DTO.
func ToResponse(o *entity.ProductionOrder) *dto.ProductionOrderResponse {
	items := make([]dto.ProductionItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.ProductionItemResponse{
			ID:         it.ID,
			MaterialID: it.MaterialID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitCost:   it.UnitCost,
			TotalCost:  it.TotalCost,
			IsOutput:   it.IsOutput,
		})
	}
	return &dto.ProductionOrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		SalesOrderID:  o.SalesOrderID,
		UserID:        o.UserID,
		Priority:      string(o.Priority),
		Status:        string(o.Status),
		StartDate:     o.StartDate,
		EndDate:       o.EndDate,
		CompletedDate: o.CompletedDate,
		Notes:         o.Notes,
		TotalCost:     o.TotalCost,
		Items:         items,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}
