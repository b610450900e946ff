package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every collector the service exports. Collectors are
// registered on the Registerer passed to New.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	DBOperationDuration *prometheus.HistogramVec
	SignedURLsTotal     *prometheus.CounterVec
	UploadsTotal        *prometheus.CounterVec
}

func New(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		DBOperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "db_operation_duration_seconds",
				Help:      "Duration of database operations in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation", "outcome"},
		),
		SignedURLsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "signed_urls_total",
				Help:      "Signed URL lookups by result",
			},
			[]string{"result"},
		),
		UploadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "uploads_total",
				Help:      "Asset uploads by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
	}
}

// ObserveQuery records the duration of one database operation.
func (m *Metrics) ObserveQuery(operation string, elapsed time.Duration, err error) {
	m.DBOperationDuration.WithLabelValues(operation, outcome(err)).Observe(elapsed.Seconds())
}

// ObserveSign counts one signed URL lookup.
func (m *Metrics) ObserveSign(result string) {
	m.SignedURLsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveUpload(kind string, err error) {
	m.UploadsTotal.WithLabelValues(kind, outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
