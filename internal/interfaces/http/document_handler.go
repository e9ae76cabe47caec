package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/textil-erp/internal/application/documents"
	"github.com/jhoicas/textil-erp/internal/domain"
)

// DocumentHandler descarga de órdenes en PDF.
type DocumentHandler struct {
	uc *documents.UseCase
	errorResponder
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *documents.UseCase, log zerolog.Logger) *DocumentHandler {
	return &DocumentHandler{uc: uc, errorResponder: errorResponder{log: log}}
}

// PurchaseOrderPDF godoc
// @Summary      Descargar orden de compra en PDF
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/pdf [get]
func (h *DocumentHandler) PurchaseOrderPDF(c *fiber.Ctx) error {
	id, err := pathID(c, domain.ErrOrderNotFound)
	if err != nil {
		return h.respond(c, err)
	}
	body, filename, err := h.uc.PurchaseOrderPDF(c.UserContext(), id)
	if err != nil {
		return h.respond(c, err)
	}
	return sendPDF(c, body, filename)
}

// SalesOrderPDF godoc
// @Summary      Descargar orden de venta en PDF
// @Tags         sales-orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales-orders/{id}/pdf [get]
func (h *DocumentHandler) SalesOrderPDF(c *fiber.Ctx) error {
	id, err := pathID(c, domain.ErrOrderNotFound)
	if err != nil {
		return h.respond(c, err)
	}
	body, filename, err := h.uc.SalesOrderPDF(c.UserContext(), id)
	if err != nil {
		return h.respond(c, err)
	}
	return sendPDF(c, body, filename)
}

func sendPDF(c *fiber.Ctx, body []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(body)
}
