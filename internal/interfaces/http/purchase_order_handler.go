package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/textil-erp/internal/application/dto"
	"github.com/jhoicas/textil-erp/internal/application/purchasing"
	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

// PurchaseOrderHandler órdenes de compra a proveedores.
type PurchaseOrderHandler struct {
	uc *purchasing.UseCase
	errorResponder
}

// NewPurchaseOrderHandler construye el handler.
func NewPurchaseOrderHandler(uc *purchasing.UseCase, log zerolog.Logger) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{uc: uc, errorResponder: errorResponder{log: log}}
}

// Create godoc
// @Summary      Crear orden de compra
// @Description  Asigna número OC-NNNNNN y calcula el total. No mueve inventario.
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "Proveedor e ítems"
// @Success      201   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [post]
func (h *PurchaseOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if err := bindJSON(c, &in); err != nil {
		return h.respond(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar órdenes de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        supplier_id  query  string  false  "Proveedor"
// @Param        status       query  string  false  "Estado"
// @Param        from         query  string  false  "Desde"
// @Param        to           query  string  false  "Hasta"
// @Success      200  {object}  dto.PurchaseOrderListResponse
// @Router       /api/purchase-orders [get]
func (h *PurchaseOrderHandler) List(c *fiber.Ctx) error {
	var q dto.PurchaseOrderListQuery
	if err := bindQuery(c, &q); err != nil {
		return h.respond(c, err)
	}
	from, to, err := dateRange(c)
	if err != nil {
		return h.respond(c, err)
	}
	out, err := h.uc.List(c.UserContext(), repository.PurchaseOrderFilter{
		SupplierID: q.SupplierID,
		Status:     entity.PurchaseStatus(q.Status),
		From:       from,
		To:         to,
		Page:       toPage(q.PageRequest),
	})
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

func (h *PurchaseOrderHandler) Get(c *fiber.Ctx) error {
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

// Update reemplaza ítems; rechazado con ORDER_LOCKED si ya fue recibida.
func (h *PurchaseOrderHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, domain.ErrOrderNotFound)
	if err != nil {
		return h.respond(c, err)
	}
	var in dto.UpdatePurchaseOrderRequest
	if err := bindJSON(c, &in); err != nil {
		return h.respond(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

func (h *PurchaseOrderHandler) Delete(c *fiber.Ctx) error {
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
// @Summary      Cambiar estado de la orden de compra
// @Description  RECEIVED registra una entrada IN por cada ítem en la misma transacción.
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.UpdatePurchaseStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/status [patch]
func (h *PurchaseOrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := pathID(c, domain.ErrOrderNotFound)
	if err != nil {
		return h.respond(c, err)
	}
	var in dto.UpdatePurchaseStatusRequest
	if err := bindJSON(c, &in); err != nil {
		return h.respond(c, err)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}
