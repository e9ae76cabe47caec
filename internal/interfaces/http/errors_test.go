package http

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/textil-erp/internal/application/dto"
	"github.com/jhoicas/textil-erp/internal/domain"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"material no encontrado", domain.ErrMaterialNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{"orden envuelta", fmt.Errorf("cargar: %w", domain.ErrOrderNotFound), fiber.StatusNotFound, "NOT_FOUND"},
		{"orden cerrada", domain.ErrOrderLocked, fiber.StatusBadRequest, "ORDER_LOCKED"},
		{"transición", fmt.Errorf("%w: RECEIVED -> PENDING", domain.ErrInvalidTransition), fiber.StatusBadRequest, "INVALID_TRANSITION"},
		{"entrada inválida", domain.Invalid("cantidad"), fiber.StatusBadRequest, "VALIDATION"},
		{"duplicado", domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
		{"email", domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
		{"tx", fmt.Errorf("%w: commit", domain.ErrTransactionFailed), fiber.StatusInternalServerError, "TRANSACTION_FAILED"},
		{"fiber", fiber.ErrMethodNotAllowed, fiber.StatusMethodNotAllowed, "HTTP_ERROR"},
		{"desconocido", errors.New("boom"), fiber.StatusInternalServerError, "INTERNAL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := mapError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

func TestMapError_StockIncluyeDisponible(t *testing.T) {
	err := fmt.Errorf("entregar: %w", domain.NewInsufficientStock("Camisa", decimal.NewFromInt(5), decimal.RequireFromString("2.5")))

	status, body := mapError(err)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error(), Available: "2.5"}, body)
}

func TestMapError_InternoNoFiltraDetalle(t *testing.T) {
	_, body := mapError(errors.New("pq: password authentication failed"))
	assert.NotContains(t, body.Message, "password")
}

func TestBinding_ValidacionUsaNombreJSON(t *testing.T) {
	err := validate.Struct(dto.CreatePurchaseOrderRequest{SupplierID: "no-uuid"})

	status, body := mapError(err)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body.Message, "supplier_id")
	assert.Contains(t, body.Message, "items")
}
