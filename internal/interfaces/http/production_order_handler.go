package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/textil-erp/internal/application/dto"
	"github.com/jhoicas/textil-erp/internal/application/production"
	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

// ProductionOrderHandler órdenes de producción (consumo de materiales y salida de productos).
type ProductionOrderHandler struct {
	uc *production.UseCase
	errorResponder
}

func NewProductionOrderHandler(uc *production.UseCase, log zerolog.Logger) *ProductionOrderHandler {
	return &ProductionOrderHandler{uc: uc, errorResponder: errorResponder{log: log}}
}

// Create godoc
// @Summary      Crear orden de producción
// @Tags         production-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductionOrderRequest  true  "Insumos y productos"
// @Success      201   {object}  dto.ProductionOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/production-orders [post]
func (h *ProductionOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductionOrderRequest
	if err := bindJSON(c, &in); err != nil {
		return h.respond(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *ProductionOrderHandler) List(c *fiber.Ctx) error {
	var q dto.ProductionOrderListQuery
	if err := bindQuery(c, &q); err != nil {
		return h.respond(c, err)
	}
	out, err := h.uc.List(c.UserContext(), repository.ProductionOrderFilter{
		SalesOrderID: q.SalesOrderID,
		Status:       entity.ProductionStatus(q.Status),
		Priority:     entity.Priority(q.Priority),
		Page:         toPage(q.PageRequest),
	})
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

func (h *ProductionOrderHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, domain.ErrOrderNotFound)
	if err != nil {
		return h.respond(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

func (h *ProductionOrderHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, domain.ErrOrderNotFound)
	if err != nil {
		return h.respond(c, err)
	}
	var in dto.UpdateProductionOrderRequest
	if err := bindJSON(c, &in); err != nil {
		return h.respond(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

func (h *ProductionOrderHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, domain.ErrOrderNotFound)
	if err != nil {
		return h.respond(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return h.respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la orden de producción
// @Description  COMPLETED consume insumos (OUT) y suma productos terminados en una sola transacción.
// @Tags         production-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.UpdateProductionStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.ProductionOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/production-orders/{id}/status [patch]
func (h *ProductionOrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := pathID(c, domain.ErrOrderNotFound)
	if err != nil {
		return h.respond(c, err)
	}
	var in dto.UpdateProductionStatusRequest
	if err := bindJSON(c, &in); err != nil {
		return h.respond(c, err)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}
