// Package metrics expone los contadores de negocio y de HTTP en Prometheus.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics agrupa los colectores de la aplicación. Un *Metrics nil es válido y no registra nada.
type Metrics struct {
	salesCreated    *prometheus.CounterVec
	salesRejected   *prometheus.CounterVec
	stockMovements  *prometheus.CounterVec
	receivablesPaid prometheus.Counter
	httpDuration    *prometheus.HistogramVec
}

// New registra los colectores en reg.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return nil
	}
	m := &Metrics{
		salesCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "backoffice_sales_created_total",
			Help: "Ventas confirmadas por forma de pago.",
		}, []string{"payment_type"}),
		salesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "backoffice_sales_rejected_total",
			Help: "Ventas rechazadas por motivo.",
		}, []string{"reason"}),
		stockMovements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "backoffice_stock_movements_total",
			Help: "Movimientos de stock registrados por tipo.",
		}, []string{"type"}),
		receivablesPaid: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_receivables_paid_total",
			Help: "Cuentas por cobrar marcadas como pagadas.",
		}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "backoffice_http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(m.salesCreated, m.salesRejected, m.stockMovements, m.receivablesPaid, m.httpDuration)
	return m
}

// SaleCreated cuenta una venta confirmada.
func (m *Metrics) SaleCreated(paymentType string) {
	if m == nil {
		return
	}
	m.salesCreated.WithLabelValues(paymentType).Inc()
}

// SaleRejected cuenta una venta rechazada (INSUFFICIENT_STOCK, PRODUCT_NOT_FOUND, ...).
func (m *Metrics) SaleRejected(reason string) {
	if m == nil {
		return
	}
	m.salesRejected.WithLabelValues(reason).Inc()
}

// StockMovement cuenta un movimiento de stock por tipo.
func (m *Metrics) StockMovement(movementType string) {
	if m == nil {
		return
	}
	m.stockMovements.WithLabelValues(movementType).Inc()
}

// ReceivablePaid cuenta una transición PENDING -> PAID.
func (m *Metrics) ReceivablePaid() {
	if m == nil {
		return
	}
	m.receivablesPaid.Inc()
}

// ObserveHTTP registra la duración de una petición.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}
