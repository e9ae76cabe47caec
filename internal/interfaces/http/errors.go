package http

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/textil-erp/internal/application/dto"
	"github.com/jhoicas/textil-erp/internal/domain"
)

// errorResponder traduce errores de dominio a respuestas HTTP.
type errorResponder struct {
	log zerolog.Logger
}

// respond escribe el status y el cuerpo dto.ErrorResponse que corresponden a err.
func (e errorResponder) respond(c *fiber.Ctx, err error) error {
	status, body := mapError(err)
	if status >= fiber.StatusInternalServerError {
		e.log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("error interno atendiendo petición")
	}
	return c.Status(status).JSON(body)
}

// mapError decide status y código. El orden importa: los NotFound por entidad envuelven ErrNotFound.
func mapError(err error) (int, dto.ErrorResponse) {
	var stockErr *domain.InsufficientStockError
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: describeValidation(verrs)}
	case errors.As(err, &stockErr):
		return fiber.StatusBadRequest, dto.ErrorResponse{
			Code:      "INSUFFICIENT_STOCK",
			Message:   stockErr.Error(),
			Available: stockErr.Available.String(),
		}
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrOrderLocked):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "ORDER_LOCKED", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidTransition):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: err.Error()}
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()}
	case errors.Is(err, domain.ErrTransactionFailed):
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "TRANSACTION_FAILED", Message: "no se pudo completar la transacción"}
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
}

func describeValidation(verrs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fe.Namespace()+": "+fe.Tag()+"="+fe.Param())
			continue
		}
		msgs = append(msgs, fe.Namespace()+": "+fe.Tag())
	}
	return strings.Join(msgs, "; ")
}

// ErrorHandler para fiber.Config: cualquier error que escape de un handler pasa por mapError.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	e := errorResponder{log: log}
	return func(c *fiber.Ctx, err error) error {
		return e.respond(c, err)
	}
}
