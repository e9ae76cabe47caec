package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/textil-erp/internal/application/dto"
	"github.com/jhoicas/textil-erp/internal/application/inventory"
	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

// InventoryHandler expone el libro de movimientos de materiales.
type InventoryHandler struct {
	ledger *inventory.Ledger
	errorResponder
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.Ledger, log zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, errorResponder: errorResponder{log: log}}
}

// CreateMovement godoc
// @Summary      Registrar movimiento manual
// @Description  Ajustes y traslados fuera de órdenes. Las salidas sin stock devuelven INSUFFICIENT_STOCK.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) CreateMovement(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := bindJSON(c, &in); err != nil {
		return h.respond(c, err)
	}
	mv, err := h.ledger.ApplyMovement(c.UserContext(), inventory.MovementInput{
		MaterialID: in.MaterialID,
		Type:       entity.MovementType(in.Type),
		Quantity:   in.Quantity,
		UnitCost:   in.UnitCost,
		Reference:  in.Reference,
	})
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inventory.ToMovementResponse(mv))
}

// ListMovements godoc
// @Summary      Listar movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        material_id  query  string  false  "Material"
// @Param        type         query  string  false  "IN, OUT, ADJUSTMENT, TRANSFER"
// @Param        from         query  string  false  "Desde (YYYY-MM-DD o RFC3339)"
// @Param        to           query  string  false  "Hasta"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var q dto.MovementListQuery
	if err := bindQuery(c, &q); err != nil {
		return h.respond(c, err)
	}
	from, to, err := dateRange(c)
	if err != nil {
		return h.respond(c, err)
	}
	out, err := h.ledger.ListMovements(c.UserContext(), repository.MovementFilter{
		MaterialID: q.MaterialID,
		Type:       entity.MovementType(q.Type),
		Reference:  q.Reference,
		From:       from,
		To:         to,
		Page:       toPage(q.PageRequest),
	})
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// LedgerCheck compara current_stock con la suma firmada del libro.
func (h *InventoryHandler) LedgerCheck(c *fiber.Ctx) error {
	id, err := pathID(c, domain.ErrMaterialNotFound)
	if err != nil {
		return h.respond(c, err)
	}
	out, err := h.ledger.Check(c.UserContext(), id)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}
