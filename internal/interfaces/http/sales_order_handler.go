package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/textil-erp/internal/application/dto"
	"github.com/jhoicas/textil-erp/internal/application/sales"
	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

// SalesOrderHandler órdenes de venta a clientes.
type SalesOrderHandler struct {
	uc *sales.UseCase
	errorResponder
}

func NewSalesOrderHandler(uc *sales.UseCase, log zerolog.Logger) *SalesOrderHandler {
	return &SalesOrderHandler{uc: uc, errorResponder: errorResponder{log: log}}
}

// Create godoc
// @Summary      Crear orden de venta
// @Description  Verifica stock disponible de cada producto sin reservarlo.
// @Tags         sales-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSalesOrderRequest  true  "Cliente e ítems"
// @Success      201   {object}  dto.SalesOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sales-orders [post]
func (h *SalesOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSalesOrderRequest
	if err := bindJSON(c, &in); err != nil {
		return h.respond(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *SalesOrderHandler) List(c *fiber.Ctx) error {
	var q dto.SalesOrderListQuery
	if err := bindQuery(c, &q); err != nil {
		return h.respond(c, err)
	}
	from, to, err := dateRange(c)
	if err != nil {
		return h.respond(c, err)
	}
	out, err := h.uc.List(c.UserContext(), repository.SalesOrderFilter{
		CustomerID: q.CustomerID,
		Status:     entity.SalesStatus(q.Status),
		From:       from,
		To:         to,
		Page:       toPage(q.PageRequest),
	})
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

func (h *SalesOrderHandler) Get(c *fiber.Ctx) error {
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

func (h *SalesOrderHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, domain.ErrOrderNotFound)
	if err != nil {
		return h.respond(c, err)
	}
	var in dto.UpdateSalesOrderRequest
	if err := bindJSON(c, &in); err != nil {
		return h.respond(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

func (h *SalesOrderHandler) Delete(c *fiber.Ctx) error {
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
// @Summary      Cambiar estado de la orden de venta
// @Description  DELIVERED descuenta el stock de cada producto; si alguno no alcanza no se aplica nada.
// @Tags         sales-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.UpdateSalesStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.SalesOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sales-orders/{id}/status [patch]
func (h *SalesOrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := pathID(c, domain.ErrOrderNotFound)
	if err != nil {
		return h.respond(c, err)
	}
	var in dto.UpdateSalesStatusRequest
	if err := bindJSON(c, &in); err != nil {
		return h.respond(c, err)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}
