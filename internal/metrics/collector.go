package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds the Prometheus metrics of the service.
type Collector struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	recordsCreated  *prometheus.CounterVec
	recordsUpdated  *prometheus.CounterVec
	formErrors      *prometheus.CounterVec
	logins          *prometheus.CounterVec
}

// NewCollector creates and registers all metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "timetracker_http_requests_total",
				Help: "Total number of HTTP requests by route, method and status",
			},
			[]string{"route", "method", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "timetracker_http_request_duration_ms",
				Help:    "Latency of HTTP requests in milliseconds",
				Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
			},
			[]string{"route", "method"},
		),
		recordsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "timetracker_records_created_total",
				Help: "Total number of records created by kind",
			},
			[]string{"kind"},
		),
		recordsUpdated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "timetracker_records_updated_total",
				Help: "Total number of records updated by kind",
			},
			[]string{"kind"},
		),
		formErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "timetracker_form_errors_total",
				Help: "Total number of rejected form submissions by form",
			},
			[]string{"form"},
		),
		logins: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "timetracker_logins_total",
				Help: "Total number of login attempts by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// ObserveRequest records a finished HTTP request.
func (m *Collector) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(float64(elapsed.Microseconds()) / 1000.0)
}

// RecordCreated increments the created counter for kind (client, project, entry).
func (m *Collector) RecordCreated(kind string) {
	m.recordsCreated.WithLabelValues(kind).Inc()
}

func (m *Collector) RecordUpdated(kind string) {
	m.recordsUpdated.WithLabelValues(kind).Inc()
}

func (m *Collector) FormRejected(form string) {
	m.formErrors.WithLabelValues(form).Inc()
}

// LoginAttempt records a login with outcome "success" or "failure".
func (m *Collector) LoginAttempt(success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.logins.WithLabelValues(outcome).Inc()
}
