package session

import (
	"context"

	"github.com/openmediation/mediation-console/metrics"
	"github.com/openmediation/mediation-console/netclient"
	"github.com/openmediation/mediation-console/networks"
)

// Catalog fronts the network client with the session's app-list cache, so
// repeated identifier-recovery lookups within one session hit the network at
// most once per catalog. Metrics is optional.
type Catalog struct {
	Client  netclient.Client
	Session *Session
	Metrics metrics.Engine
}

// GetApps returns the session-cached app list for a network, fetching it on
// first use. An empty fetched list is cached too: "not found" is an answer,
// not an error.
func (c Catalog) GetApps(ctx context.Context, network networks.NetworkName) ([]netclient.AppRecord, error) {
	if apps, ok := c.Session.Apps(network); ok {
		c.recordLookup(network, true)
		return apps, nil
	}

	apps, err := c.Client.GetApps(ctx, network)
	if err != nil {
		return nil, err
	}
	c.Session.SetApps(network, apps)
	c.recordLookup(network, false)
	return apps, nil
}

func (c Catalog) recordLookup(network networks.NetworkName, cached bool) {
	if c.Metrics != nil {
		c.Metrics.RecordCatalogLookup(network, cached)
	}
}
