package ports

// LifecycleMetrics puerto de métricas del motor de órdenes e inventario.
type LifecycleMetrics interface {
	StatusTransition(orderType, from, to string)
	StockRejected(orderType string)
	MovementApplied(movementType string)
}

// NoopMetrics implementación vacía para tests y herramientas.
type NoopMetrics struct{}

func (NoopMetrics) StatusTransition(string, string, string) {}
func (NoopMetrics) StockRejected(string)                    {}
func (NoopMetrics) MovementApplied(string)                  {}
