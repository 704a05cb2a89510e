package prometheusmetrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/openmediation/mediation-console/config"
	"github.com/openmediation/mediation-console/metrics"
	"github.com/openmediation/mediation-console/networks"
)

// Metrics is the prometheus backend.
type Metrics struct {
	Registry *prometheus.Registry

	creations          *prometheus.CounterVec
	creationTime       *prometheus.HistogramVec
	catalogLookups     *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
}

// NewMetrics registers the console metrics on a fresh prometheus registry.
func NewMetrics(cfg config.PrometheusMetrics) *Metrics {
	timeBuckets := []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

	m := &Metrics{Registry: prometheus.NewRegistry()}
	m.creations = newCounter(cfg, m.Registry, "creations_total",
		"Count of app/unit create calls per network, operation and outcome.",
		[]string{"network", "operation", "success"})
	m.creationTime = newHistogram(cfg, m.Registry, "creation_time_seconds",
		"Seconds to complete a create call against a network.",
		[]string{"network"}, timeBuckets)
	m.catalogLookups = newCounter(cfg, m.Registry, "catalog_lookups_total",
		"Count of reference-catalog lookups split by cache outcome.",
		[]string{"network", "cached"})
	m.validationFailures = newCounter(cfg, m.Registry, "validation_failures_total",
		"Count of records rejected client-side before any network call.",
		[]string{"network"})
	return m
}

func newCounter(cfg config.PrometheusMetrics, registry *prometheus.Registry, name, help string, labels []string) *prometheus.CounterVec {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      name,
		Help:      help,
	}, labels)
	registry.MustRegister(counter)
	return counter
}

func newHistogram(cfg config.PrometheusMetrics, registry *prometheus.Registry, name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	histogram := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	}, labels)
	registry.MustRegister(histogram)
	return histogram
}

func (m *Metrics) RecordCreation(labels metrics.CreationLabels, length time.Duration) {
	m.creations.With(prometheus.Labels{
		"network":   string(labels.Network),
		"operation": string(labels.Operation),
		"success":   strconv.FormatBool(labels.Success),
	}).Inc()
	m.creationTime.With(prometheus.Labels{
		"network": string(labels.Network),
	}).Observe(length.Seconds())
}

func (m *Metrics) RecordCatalogLookup(network networks.NetworkName, cached bool) {
	m.catalogLookups.With(prometheus.Labels{
		"network": string(network),
		"cached":  strconv.FormatBool(cached),
	}).Inc()
}

func (m *Metrics) RecordValidationFailure(network networks.NetworkName) {
	m.validationFailures.With(prometheus.Labels{
		"network": string(network),
	}).Inc()
}
