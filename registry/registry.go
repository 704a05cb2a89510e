package registry

import (
	"fmt"

	"github.com/openmediation/mediation-console/adapters"
	"github.com/openmediation/mediation-console/adapters/applovin"
	"github.com/openmediation/mediation-console/adapters/bigoads"
	"github.com/openmediation/mediation-console/adapters/fyber"
	"github.com/openmediation/mediation-console/adapters/inmobi"
	"github.com/openmediation/mediation-console/adapters/ironsource"
	"github.com/openmediation/mediation-console/adapters/mintegral"
	"github.com/openmediation/mediation-console/adapters/pangle"
	"github.com/openmediation/mediation-console/adapters/unity"
	"github.com/openmediation/mediation-console/adapters/vungle"
	"github.com/openmediation/mediation-console/config"
	"github.com/openmediation/mediation-console/networks"
)

// The newAdapterBuilders function is segregated to its own spot to make it a
// simple and clean location for each network adapter to register itself.
// Adding a network means adding one adapter package and one entry here;
// every consumer dispatches through the registry, never on network name.
func newAdapterBuilders() map[networks.NetworkName]adapters.Builder {
	return map[networks.NetworkName]adapters.Builder{
		networks.NetworkIronSource: ironsource.Builder,
		networks.NetworkBigoAds:    bigoads.Builder,
		networks.NetworkMintegral:  mintegral.Builder,
		networks.NetworkInMobi:     inmobi.Builder,
		networks.NetworkFyber:      fyber.Builder,
		networks.NetworkPangle:     pangle.Builder,
		networks.NetworkUnity:      unity.Builder,
		networks.NetworkVungle:     vungle.Builder,
		networks.NetworkAppLovin:   applovin.Builder,
	}
}

// Registry owns exactly one adapter instance per network. Immutable after New.
type Registry struct {
	adapters map[networks.NetworkName]adapters.Adapter
	infos    config.NetworkInfos
	order    []networks.NetworkName
}

// New builds every registered adapter with its config. Construction fails if
// a core network is missing a builder or an info file, so drift between the
// name table, the builders and the static metadata is caught at startup.
func New(cfg *config.Configuration, infos config.NetworkInfos) (*Registry, error) {
	builders := newAdapterBuilders()

	r := &Registry{
		adapters: make(map[networks.NetworkName]adapters.Adapter, len(builders)),
		infos:    infos,
	}
	for _, name := range networks.CoreNetworkNames() {
		builder, ok := builders[name]
		if !ok {
			return nil, fmt.Errorf("no adapter builder registered for network %s", name)
		}
		if _, ok := infos[string(name)]; !ok {
			return nil, fmt.Errorf("no network info loaded for network %s", name)
		}

		networkCfg := cfg.Networks[string(name)]
		if networkCfg.Disabled {
			continue
		}

		adapter, err := builder(networkCfg)
		if err != nil {
			return nil, fmt.Errorf("building adapter for network %s: %v", name, err)
		}
		r.adapters[name] = adapter
		r.order = append(r.order, name)
	}
	return r, nil
}

// Get returns the adapter for the given network.
func (r *Registry) Get(name networks.NetworkName) (adapters.Adapter, error) {
	adapter, ok := r.adapters[name]
	if !ok {
		return nil, fmt.Errorf("network %q is not registered", name)
	}
	return adapter, nil
}

// ListAvailable returns the enabled networks in registration order.
func (r *Registry) ListAvailable() []networks.NetworkName {
	out := make([]networks.NetworkName, len(r.order))
	copy(out, r.order)
	return out
}

// DisplayNames maps each enabled network to its human-readable name.
func (r *Registry) DisplayNames() map[networks.NetworkName]string {
	out := make(map[networks.NetworkName]string, len(r.order))
	for _, name := range r.order {
		out[name] = r.infos[string(name)].DisplayName
	}
	return out
}

// Info returns the static metadata for the given network.
func (r *Registry) Info(name networks.NetworkName) config.NetworkInfo {
	return r.infos[string(name)]
}
