package sales

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

func validateItems(items []dto.SalesItemRequest) error {
	if len(items) == 0 {
		return domain.Invalid("la orden debe tener al menos un ítem")
	}
	for i, it := range items {
		if it.ProductID == "" {
			return domain.Invalid("ítem %d: product_id requerido", i+1)
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

// checkStock falla con el primer producto cuyo stock no alcanza.
func checkStock(ctx context.Context, r repository.Repos, items []dto.SalesItemRequest) error {
	for _, it := range items {
		p, err := r.Products.GetByID(ctx, it.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}
		if p.CurrentStock.LessThan(it.Quantity) {
			return domain.NewInsufficientStock(p.Name, it.Quantity, p.CurrentStock)
		}
	}
	return nil
}

func buildItems(orderID string, in []dto.SalesItemRequest) ([]entity.SalesItem, decimal.Decimal) {
	items := make([]entity.SalesItem, 0, len(in))
	lines := make([]order.Line, 0, len(in))
	for _, it := range in {
		items = append(items, entity.SalesItem{
			ID:         uuid.New().String(),
			OrderID:    orderID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: order.LineTotal(it.Quantity, it.UnitPrice),
		})
		lines = append(lines, order.Line{Quantity: it.Quantity, Price: it.UnitPrice})
	}
	return items, order.Total(lines)
}

// ToResponse convierte la entidad a DTO.
func ToResponse(o *entity.SalesOrder) *dto.SalesOrderResponse {
	items := make([]dto.SalesItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.SalesItemResponse{
			ID:         it.ID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
		})
	}
	return &dto.SalesOrderResponse{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		CustomerID:   o.CustomerID,
		UserID:       o.UserID,
		Status:       string(o.Status),
		OrderDate:    o.OrderDate,
		DeliveryDate: o.DeliveryDate,
		Notes:        o.Notes,
		TotalAmount:  o.TotalAmount,
		Items:        items,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}
