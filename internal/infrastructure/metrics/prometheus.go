package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/textil-erp/internal/application/ports"
)

const namespace = "textil_erp"

var _ ports.LifecycleMetrics = (*Metrics)(nil)

// Metrics colectores Prometheus del motor de órdenes y del servidor HTTP.
// Usa un registry propio para que los tests no choquen con el global.
type Metrics struct {
	registry *prometheus.Registry

	transitions    *prometheus.CounterVec
	stockRejected  *prometheus.CounterVec
	movements      *prometheus.CounterVec
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// New registra todos los colectores, incluidos los de proceso y runtime de Go.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "order_status_transitions_total",
				Help:      "Cambios de estado efectivos por tipo de orden",
			},
			[]string{"order_type", "from", "to"},
		),
		stockRejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stock_rejections_total",
				Help:      "Operaciones rechazadas por stock insuficiente",
			},
			[]string{"order_type"},
		),
		movements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "inventory_movements_total",
				Help:      "Movimientos aplicados al libro de inventario",
			},
			[]string{"type"},
		),
		requestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Peticiones HTTP atendidas",
			},
			[]string{"method", "route", "status"},
		),
		requestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duración de las peticiones HTTP en segundos",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
	m.registry.MustRegister(
		m.transitions, m.stockRejected, m.movements, m.requestCounter, m.requestLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) StatusTransition(orderType, from, to string) {
	m.transitions.WithLabelValues(orderType, from, to).Inc()
}

func (m *Metrics) StockRejected(orderType string) {
	m.stockRejected.WithLabelValues(orderType).Inc()
}

func (m *Metrics) MovementApplied(movementType string) {
	m.movements.WithLabelValues(movementType).Inc()
}

// ObserveRequest registra una petición HTTP; route es el patrón, no la URL concreta.
func (m *Metrics) ObserveRequest(method, route, status string, d time.Duration) {
	m.requestLatency.WithLabelValues(method, route).Observe(d.Seconds())
	m.requestCounter.WithLabelValues(method, route, status).Inc()
}

// Handler expone el registry en formato de texto de Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry para tests y colectores extra.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
