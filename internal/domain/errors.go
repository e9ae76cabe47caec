package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrOrderLocked        = errors.New("la orden está cerrada y no admite cambios")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrTransactionFailed  = errors.New("fallo en la transacción")
)

// Variantes de ErrNotFound por entidad; errors.Is(err, ErrNotFound) sigue siendo true.
var (
	ErrOrderNotFound    = fmt.Errorf("orden: %w", ErrNotFound)
	ErrMaterialNotFound = fmt.Errorf("material: %w", ErrNotFound)
	ErrProductNotFound  = fmt.Errorf("producto: %w", ErrNotFound)
	ErrSupplierNotFound = fmt.Errorf("proveedor: %w", ErrNotFound)
	ErrCustomerNotFound = fmt.Errorf("cliente: %w", ErrNotFound)
)

// InsufficientStockError detalla qué ítem no alcanzó y cuánto había disponible.
type InsufficientStockError struct {
	Item      string // nombre o SKU del material/producto
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	if e.Item == "" {
		return fmt.Sprintf("%s: disponible %s", ErrInsufficientStock, e.Available.String())
	}
	return fmt.Sprintf("%s para %s: disponible %s, solicitado %s",
		ErrInsufficientStock, e.Item, e.Available.String(), e.Requested.String())
}

// Is permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// NewInsufficientStock construye el error tipado.
func NewInsufficientStock(item string, requested, available decimal.Decimal) error {
	return &InsufficientStockError{Item: item, Requested: requested, Available: available}
}

// Invalid envuelve ErrInvalidInput con un detalle legible.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
