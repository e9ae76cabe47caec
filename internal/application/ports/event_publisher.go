package ports

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Tipos de orden usados en eventos y métricas.
const (
	OrderTypePurchase   = "purchase"
	OrderTypeSales      = "sales"
	OrderTypeProduction = "production"
)

// OrderStatusChanged cambio efectivo de estado de una orden (nunca se emite para no-ops).
type OrderStatusChanged struct {
	OrderType   string
	OrderID     string
	OrderNumber string
	From        string
	To          string
	UserID      string
	At          time.Time
}

// EventPublisher puerto de salida para notificar cambios de estado.
// Se invoca después del commit; un error no revierte la orden.
type EventPublisher interface {
	PublishOrderStatusChanged(ctx context.Context, ev OrderStatusChanged) error
}

// NoopPublisher descarta los eventos (sin broker configurado).
type NoopPublisher struct{}

// PublishOrderStatusChanged no hace nada.
func (NoopPublisher) PublishOrderStatusChanged(context.Context, OrderStatusChanged) error {
	return nil
}

// PublishBestEffort publica y solo registra el error: la orden ya está confirmada.
func PublishBestEffort(ctx context.Context, p EventPublisher, log zerolog.Logger, ev OrderStatusChanged) {
	if p == nil {
		return
	}
	if err := p.PublishOrderStatusChanged(ctx, ev); err != nil {
		log.Error().Err(err).
			Str("order_type", ev.OrderType).
			Str("order_number", ev.OrderNumber).
			Msg("no se pudo publicar el cambio de estado")
	}
}
