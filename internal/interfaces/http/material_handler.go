package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/textil-erp/internal/application/catalog"
	"github.com/jhoicas/textil-erp/internal/application/dto"
	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

// MaterialHandler maneja las peticiones HTTP para materias primas (protegido).
type MaterialHandler struct {
	uc *catalog.MaterialUseCase
	errorResponder
}

// NewMaterialHandler construye el handler.
func NewMaterialHandler(uc *catalog.MaterialUseCase, log zerolog.Logger) *MaterialHandler {
	return &MaterialHandler{uc: uc, errorResponder: errorResponder{log: log}}
}

// Create godoc
// @Summary      Crear material
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMaterialRequest  true  "Datos del material"
// @Success      201   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/materials [post]
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMaterialRequest
	if err := bindJSON(c, &in); err != nil {
		return h.respond(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener material por ID
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del material"
// @Success      200  {object}  dto.MaterialResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [get]
func (h *MaterialHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, domain.ErrMaterialNotFound)
	if err != nil {
		return h.respond(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar materiales
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        search       query  string  false  "SKU o nombre"
// @Param        low_stock    query  bool    false  "Solo stock <= mínimo"
// @Success      200  {object}  dto.MaterialListResponse
// @Router       /api/materials [get]
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	var q dto.MaterialListQuery
	if err := bindQuery(c, &q); err != nil {
		return h.respond(c, err)
	}
	out, err := h.uc.List(c.UserContext(), repository.MaterialFilter{
		Search:     q.Search,
		CategoryID: q.CategoryID,
		SupplierID: q.SupplierID,
		ActiveOnly: q.ActiveOnly,
		LowStock:   q.LowStock,
		Page:       toPage(q.PageRequest),
	})
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar material (sin stock)
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del material"
// @Param        body  body  dto.UpdateMaterialRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.MaterialResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [put]
func (h *MaterialHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, domain.ErrMaterialNotFound)
	if err != nil {
		return h.respond(c, err)
	}
	var in dto.UpdateMaterialRequest
	if err := bindJSON(c, &in); err != nil {
		return h.respond(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// Delete desactiva el material (borrado lógico).
func (h *MaterialHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, domain.ErrMaterialNotFound)
	if err != nil {
		return h.respond(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return h.respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
