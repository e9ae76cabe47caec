package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/textil-erp/internal/application/catalog"
	"github.com/jhoicas/textil-erp/internal/application/dto"
	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

// PartyHandler expone proveedores y clientes; ambos comparten contrato.
type PartyHandler struct {
	suppliers *catalog.SupplierUseCase
	customers *catalog.CustomerUseCase
	errorResponder
}

// NewPartyHandler construye el handler.
func NewPartyHandler(suppliers *catalog.SupplierUseCase, customers *catalog.CustomerUseCase, log zerolog.Logger) *PartyHandler {
	return &PartyHandler{suppliers: suppliers, customers: customers, errorResponder: errorResponder{log: log}}
}

func partyFilter(c *fiber.Ctx) (repository.PartyFilter, error) {
	var q dto.PartyListQuery
	if err := bindQuery(c, &q); err != nil {
		return repository.PartyFilter{}, err
	}
	return repository.PartyFilter{Search: q.Search, ActiveOnly: q.ActiveOnly, Page: toPage(q.PageRequest)}, nil
}

// CreateSupplier godoc
// @Summary      Crear proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePartyRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.PartyResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/suppliers [post]
func (h *PartyHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.CreatePartyRequest
	if err := bindJSON(c, &in); err != nil {
		return h.respond(c, err)
	}
	out, err := h.suppliers.Create(c.UserContext(), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *PartyHandler) GetSupplier(c *fiber.Ctx) error {
	id, err := pathID(c, domain.ErrSupplierNotFound)
	if err != nil {
		return h.respond(c, err)
	}
	out, err := h.suppliers.GetByID(c.UserContext(), id)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

func (h *PartyHandler) ListSuppliers(c *fiber.Ctx) error {
	f, err := partyFilter(c)
	if err != nil {
		return h.respond(c, err)
	}
	out, err := h.suppliers.List(c.UserContext(), f)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// CreateCustomer godoc
// @Summary      Crear cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePartyRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.PartyResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *PartyHandler) CreateCustomer(c *fiber.Ctx) error {
	var in dto.CreatePartyRequest
	if err := bindJSON(c, &in); err != nil {
		return h.respond(c, err)
	}
	out, err := h.customers.Create(c.UserContext(), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *PartyHandler) GetCustomer(c *fiber.Ctx) error {
	id, err := pathID(c, domain.ErrCustomerNotFound)
	if err != nil {
		return h.respond(c, err)
	}
	out, err := h.customers.GetByID(c.UserContext(), id)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

func (h *PartyHandler) ListCustomers(c *fiber.Ctx) error {
	f, err := partyFilter(c)
	if err != nil {
		return h.respond(c, err)
	}
	out, err := h.customers.List(c.UserContext(), f)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}
