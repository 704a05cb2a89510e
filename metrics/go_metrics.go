package metrics

import (
	"time"

	gometrics "github.com/rcrowley/go-metrics"

	"github.com/openmediation/mediation-console/networks"
)

// Metrics is the go-metrics backend.
type Metrics struct {
	MetricsRegistry gometrics.Registry

	ValidationFailureMeter gometrics.Meter
	CatalogFetchMeter      gometrics.Meter
	CatalogCachedMeter     gometrics.Meter

	NetworkMetrics map[networks.NetworkName]*NetworkMetrics
}

// NetworkMetrics houses the metrics for a particular network.
type NetworkMetrics struct {
	CreateAppMeter       gometrics.Meter
	CreateAppErrorMeter  gometrics.Meter
	CreateUnitMeter      gometrics.Meter
	CreateUnitErrorMeter gometrics.Meter
	CreationTimer        gometrics.Timer
}

// NewMetrics registers one meter set per known network on the given registry.
func NewMetrics(registry gometrics.Registry, networkNames []networks.NetworkName) *Metrics {
	m := &Metrics{
		MetricsRegistry:        registry,
		ValidationFailureMeter: gometrics.GetOrRegisterMeter("validation_failures", registry),
		CatalogFetchMeter:      gometrics.GetOrRegisterMeter("catalog.fetches", registry),
		CatalogCachedMeter:     gometrics.GetOrRegisterMeter("catalog.cache_hits", registry),
		NetworkMetrics:         make(map[networks.NetworkName]*NetworkMetrics, len(networkNames)),
	}
	for _, name := range networkNames {
		m.NetworkMetrics[name] = &NetworkMetrics{
			CreateAppMeter:       gometrics.GetOrRegisterMeter("network."+string(name)+".create_app", registry),
			CreateAppErrorMeter:  gometrics.GetOrRegisterMeter("network."+string(name)+".create_app_errors", registry),
			CreateUnitMeter:      gometrics.GetOrRegisterMeter("network."+string(name)+".create_unit", registry),
			CreateUnitErrorMeter: gometrics.GetOrRegisterMeter("network."+string(name)+".create_unit_errors", registry),
			CreationTimer:        gometrics.GetOrRegisterTimer("network."+string(name)+".creation_time", registry),
		}
	}
	return m
}

func (m *Metrics) RecordCreation(labels CreationLabels, length time.Duration) {
	nm, ok := m.NetworkMetrics[labels.Network]
	if !ok {
		return
	}
	switch labels.Operation {
	case OpCreateApp:
		nm.CreateAppMeter.Mark(1)
		if !labels.Success {
			nm.CreateAppErrorMeter.Mark(1)
		}
	case OpCreateUnit:
		nm.CreateUnitMeter.Mark(1)
		if !labels.Success {
			nm.CreateUnitErrorMeter.Mark(1)
		}
	}
	nm.CreationTimer.Update(length)
}

func (m *Metrics) RecordCatalogLookup(network networks.NetworkName, cached bool) {
	if cached {
		m.CatalogCachedMeter.Mark(1)
		return
	}
	m.CatalogFetchMeter.Mark(1)
}

func (m *Metrics) RecordValidationFailure(network networks.NetworkName) {
	m.ValidationFailureMeter.Mark(1)
}
