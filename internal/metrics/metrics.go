package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors exposed on /metrics.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	SalesCreated    prometheus.Counter
	OverdueSwept    prometheus.Counter
}

// New registers and returns the application collectors.
func New() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ventapos_http_requests_total",
			Help: "Total HTTP requests processed, by method, path and status.",
		}, []string{"method", "path", "status"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ventapos_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		SalesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ventapos_sales_created_total",
			Help: "Sales successfully created.",
		}),
		OverdueSwept: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ventapos_payments_overdue_swept_total",
			Help: "Payments flipped to overdue by the periodic sweep.",
		}),
	}
}
