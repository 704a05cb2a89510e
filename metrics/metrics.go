package metrics

import (
	"time"

	"github.com/openmediation/mediation-console/networks"
)

// Operation labels the creation metrics.
type Operation string

const (
	OpCreateApp  Operation = "create_app"
	OpCreateUnit Operation = "create_unit"
)

// CreationLabels defines the labels that can be attached to creation metrics.
type CreationLabels struct {
	Network   networks.NetworkName
	Operation Operation
	Success   bool
}

// Engine is the interface for the metrics backends. A single implementation
// is selected by config at startup.
type Engine interface {
	// RecordCreation tracks one outbound create call and its latency.
	RecordCreation(labels CreationLabels, length time.Duration)

	// RecordCatalogLookup tracks identifier-recovery catalog fetches.
	RecordCatalogLookup(network networks.NetworkName, cached bool)

	// RecordValidationFailure tracks client-side rejections, which never
	// reach the network.
	RecordValidationFailure(network networks.NetworkName)
}

// NilEngine is a no-op backend, used when metrics are disabled and in tests.
type NilEngine struct{}

func (NilEngine) RecordCreation(labels CreationLabels, length time.Duration)    {}
func (NilEngine) RecordCatalogLookup(network networks.NetworkName, cached bool) {}
func (NilEngine) RecordValidationFailure(network networks.NetworkName)          {}
