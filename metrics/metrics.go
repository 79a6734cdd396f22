package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "luacene"

// Operation outcomes used for the status label.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Metrics holds the luacene collectors.
type Metrics struct {
	operations     *prometheus.CounterVec
	documentsAdded prometheus.Counter
	searchDuration prometheus.Histogram
	liveHandles    *prometheus.GaugeVec

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// New creates unregistered collectors.
func New() *Metrics {
	return &Metrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Total number of facade operations",
			},
			[]string{"op", "status"},
		),
		documentsAdded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "documents_added_total",
				Help:      "Total documents added to writers",
			},
		),
		searchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_duration_seconds",
				Help:      "Query execution time in seconds",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
		),
		liveHandles: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "live_handles",
				Help:      "Handles opened and not yet released",
			},
			[]string{"kind"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path", "status"},
		),
	}
}

// Register registers every collector with r. Registering the same Metrics
// twice is not an error; a different Metrics with the same names is.
func (m *Metrics) Register(r prometheus.Registerer) error {
	if m == nil {
		return nil
	}
	for _, c := range m.collectors() {
		if err := r.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) && already.ExistingCollector == c {
				continue
			}
			return err
		}
	}
	return nil
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.operations,
		m.documentsAdded,
		m.searchDuration,
		m.liveHandles,
		m.httpRequests,
		m.httpRequestDuration,
	}
}

// ObserveOperation counts one operation, labelled by err's outcome.
func (m *Metrics) ObserveOperation(op string, err error) {
	if m == nil {
		return
	}
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	m.operations.WithLabelValues(op, status).Inc()
}

// DocumentAdded counts one accepted document.
func (m *Metrics) DocumentAdded() {
	if m == nil {
		return
	}
	m.documentsAdded.Inc()
}

// ObserveSearch records one query's duration.
func (m *Metrics) ObserveSearch(d time.Duration) {
	if m == nil {
		return
	}
	m.searchDuration.Observe(d.Seconds())
}

// HandleOpened increments the live handle gauge for kind.
func (m *Metrics) HandleOpened(kind string) {
	if m == nil {
		return
	}
	m.liveHandles.WithLabelValues(kind).Inc()
}

// HandleReleased decrements the live handle gauge for kind.
func (m *Metrics) HandleReleased(kind string) {
	if m == nil {
		return
	}
	m.liveHandles.WithLabelValues(kind).Dec()
}
