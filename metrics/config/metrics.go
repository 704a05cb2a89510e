package config

import (
	gometrics "github.com/rcrowley/go-metrics"

	mainconfig "github.com/openmediation/mediation-console/config"
	"github.com/openmediation/mediation-console/metrics"
	"github.com/openmediation/mediation-console/metrics/prometheusmetrics"
	"github.com/openmediation/mediation-console/networks"
)

// DetailedMetricsEngine wraps the selected backend and keeps a handle on the
// backend-specific registries for the admin and prometheus servers.
type DetailedMetricsEngine struct {
	metrics.Engine

	GoMetrics         *metrics.Metrics
	PrometheusMetrics *prometheusmetrics.Metrics
}

// NewMetricsEngine selects the backend named by cfg.Metrics.Type.
func NewMetricsEngine(cfg *mainconfig.Configuration, networkNames []networks.NetworkName) *DetailedMetricsEngine {
	engine := &DetailedMetricsEngine{}

	switch cfg.Metrics.Type {
	case "go_metrics":
		engine.GoMetrics = metrics.NewMetrics(gometrics.NewPrefixedRegistry("mediation_console."), networkNames)
		engine.Engine = engine.GoMetrics
	case "prometheus":
		engine.PrometheusMetrics = prometheusmetrics.NewMetrics(cfg.Metrics.Prometheus)
		engine.Engine = engine.PrometheusMetrics
	default:
		engine.Engine = metrics.NilEngine{}
	}
	return engine
}
